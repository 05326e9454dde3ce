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

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

func (h *StockHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage du stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ForMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lines, err := h.svc.ForMedication(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage du stock"))
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *StockHandler) Add(c *gin.Context) {
	var req dto.AddStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	line, err := h.svc.AddStock(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Médicament non trouvé"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *StockHandler) Remove(c *gin.Context) {
	var req dto.RemoveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RemoveStock(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StockHandler) SetThresholds(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ThresholdsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.SetThresholds(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.FanOutResponse{Affected: n})
}

func (h *StockHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du calcul des alertes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) Valuation(c *gin.Context) {
	resp, err := h.svc.Valuation(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la valorisation"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
