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

// LookupHandler is the shared HTTP surface of the five reference
// tables. One instance per table, all routed identically.
type LookupHandler[T any, PT service.LookupEntity[T]] struct {
	svc *service.LookupService[T, PT]
}

func NewLookupHandler[T any, PT service.LookupEntity[T]](svc *service.LookupService[T, PT]) *LookupHandler[T, PT] {
	return &LookupHandler[T, PT]{svc: svc}
}

func (h *LookupHandler[T, PT]) List(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du listage"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LookupHandler[T, PT]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	entity, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Entrée non trouvée"))
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *LookupHandler[T, PT]) Create(c *gin.Context) {
	var req dto.LookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entity, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *LookupHandler[T, PT]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.LookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entity, _, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, apierror.New("Entrée non trouvée"))
		case errors.Is(err, service.ErrDuplicateName):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *LookupHandler[T, PT]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cleared, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Entrée non trouvée"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.FanOutResponse{Affected: cleared})
}

func (h *LookupHandler[T, PT]) Usage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	usage, err := h.svc.Usage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Entrée non trouvée"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du comptage"))
		return
	}
	c.JSON(http.StatusOK, usage)
}
