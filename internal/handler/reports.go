package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/youssef7511/AVCNA/internal/apierror"
	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/repository"
	"github.com/youssef7511/AVCNA/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) MedicationFiche(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	path, err := h.svc.MedicationFiche(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Médicament non trouvé"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la génération du PDF"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *ReportsHandler) Stock(c *gin.Context) {
	path, err := h.svc.StockReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la génération du PDF"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *ReportsHandler) Interactions(c *gin.Context) {
	var req dto.CheckInteractionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	path, err := h.svc.InteractionsReport(c.Request.Context(), req.Substances)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la génération du PDF"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
