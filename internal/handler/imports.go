package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/youssef7511/AVCNA/internal/apierror"
	"github.com/youssef7511/AVCNA/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImportHandler exposes the strict spreadsheet pipeline of one lookup
// table: validate, import, template download and full export. One
// instance per table.
type ImportHandler[T any, PT service.Importable[T]] struct {
	svc     *service.StrictSyncService[T, PT]
	entity  string
	tmpPath string
}

func NewImportHandler[T any, PT service.Importable[T]](svc *service.StrictSyncService[T, PT], entity, tmpPath string) *ImportHandler[T, PT] {
	return &ImportHandler[T, PT]{svc: svc, entity: entity, tmpPath: tmpPath}
}

// saveUpload writes the multipart "file" part to the temp directory and
// returns its path. The caller removes the file when done.
func (h *ImportHandler[T, PT]) saveUpload(c *gin.Context) (string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fichier manquant (champ \"file\")"))
		return "", false
	}
	if err := os.MkdirAll(h.tmpPath, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur de stockage temporaire"))
		return "", false
	}
	path := filepath.Join(h.tmpPath, uuid.NewString()+".xlsx")
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de l'enregistrement du fichier"))
		return "", false
	}
	return path, true
}

// Validate checks the file's structure without writing anything.
func (h *ImportHandler[T, PT]) Validate(c *gin.Context) {
	path, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(path)

	c.JSON(http.StatusOK, h.svc.ValidateStrict(path))
}

// Import runs the validated upsert. A structurally invalid file comes
// back 422 with the accumulated errors; nothing was written.
func (h *ImportHandler[T, PT]) Import(c *gin.Context) {
	path, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(path)

	result, err := h.svc.ImportAndSync(c.Request.Context(), path, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de l'import : "+err.Error()))
		return
	}
	if !result.IsValid {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Template serves an empty workbook carrying exactly the strict header
// set of the table.
func (h *ImportHandler[T, PT]) Template(c *gin.Context) {
	if err := os.MkdirAll(h.tmpPath, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur de stockage temporaire"))
		return
	}
	path := filepath.Join(h.tmpPath, uuid.NewString()+".xlsx")
	defer os.Remove(path)

	if err := h.svc.CreateTemplate(path, h.entity); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la création du template"))
		return
	}
	c.FileAttachment(path, fmt.Sprintf("template_%s.xlsx", h.entity))
}

// Export serves the full table as a workbook. The output is itself a
// valid strict-import file.
func (h *ImportHandler[T, PT]) Export(c *gin.Context) {
	if err := os.MkdirAll(h.tmpPath, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur de stockage temporaire"))
		return
	}
	path := filepath.Join(h.tmpPath, uuid.NewString()+".xlsx")
	defer os.Remove(path)

	n, err := h.svc.Export(c.Request.Context(), path, h.entity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de l'export"))
		return
	}
	c.Header("X-Row-Count", fmt.Sprintf("%d", n))
	c.FileAttachment(path, fmt.Sprintf("export_%s.xlsx", h.entity))
}
