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

type InteractionsHandler struct{ svc service.InteractionService }

func NewInteractionsHandler(svc service.InteractionService) *InteractionsHandler {
	return &InteractionsHandler{svc: svc}
}

func (h *InteractionsHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage des interactions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InteractionsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	entity, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Interaction non trouvée"))
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *InteractionsHandler) Create(c *gin.Context) {
	var req dto.InteractionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entity, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *InteractionsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.InteractionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entity, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Interaction non trouvée"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *InteractionsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Check answers "do these substances interact with anything we know".
func (h *InteractionsHandler) Check(c *gin.Context) {
	var req dto.CheckInteractionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	found, err := h.svc.Check(c.Request.Context(), req.Substances)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la vérification"))
		return
	}
	c.JSON(http.StatusOK, found)
}
