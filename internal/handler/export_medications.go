package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/youssef7511/AVCNA/internal/apierror"
	"github.com/youssef7511/AVCNA/internal/excel"
	"github.com/youssef7511/AVCNA/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MedicationExportHandler serves the full medic table as a workbook.
// Medications are export-only: the table is too wide and too entangled
// with the sync logic for the strict import pipeline.
type MedicationExportHandler struct {
	repo    repository.MedicationRepository
	tmpPath string
}

func NewMedicationExportHandler(repo repository.MedicationRepository, tmpPath string) *MedicationExportHandler {
	return &MedicationExportHandler{repo: repo, tmpPath: tmpPath}
}

func (h *MedicationExportHandler) Export(c *gin.Context) {
	medications, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de l'export"))
		return
	}

	if err := os.MkdirAll(h.tmpPath, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur de stockage temporaire"))
		return
	}
	path := filepath.Join(h.tmpPath, uuid.NewString()+".xlsx")
	defer os.Remove(path)

	if err := excel.ExportFile(medications, path, "medicaments", excel.MedicationCodec()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de l'export"))
		return
	}
	c.FileAttachment(path, "export_medicaments.xlsx")
}
