package handler

import (
	"errors"
	"net/http"

	"github.com/youssef7511/AVCNA/internal/apierror"
	"github.com/youssef7511/AVCNA/internal/dto"
	"github.com/youssef7511/AVCNA/internal/repository"
	"github.com/youssef7511/AVCNA/internal/service"

	"github.com/gin-gonic/gin"
)

type MedicationsHandler struct {
	svc          service.MedicationService
	interactions service.InteractionService
}

func NewMedicationsHandler(svc service.MedicationService, interactions service.InteractionService) *MedicationsHandler {
	return &MedicationsHandler{svc: svc, interactions: interactions}
}

func (h *MedicationsHandler) List(c *gin.Context) {
	var filter dto.MedicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des médicaments"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicationsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Médicament non trouvé"))
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MedicationsHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	m, err := h.svc.GetByBarcode(c.Request.Context(), barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Aucun médicament actif pour ce code-barres"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la recherche"))
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MedicationsHandler) Create(c *gin.Context) {
	var req dto.MedicationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MedicationsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MedicationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Médicament non trouvé"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MedicationsHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Médicament non trouvé"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Interactions reports the known interactions involving the
// medication's own substances.
func (h *MedicationsHandler) Interactions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Médicament non trouvé"))
		return
	}
	found, err := h.interactions.CheckMedication(c.Request.Context(), m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la vérification des interactions"))
		return
	}
	c.JSON(http.StatusOK, found)
}
