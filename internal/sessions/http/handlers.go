package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/measured-tracker/measured-backend/internal/pagination"
	projdomain "github.com/measured-tracker/measured-backend/internal/projects/domain"
	"github.com/measured-tracker/measured-backend/internal/sessions/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	s, err := h.repo.Create(c.Request.Context(), req.ProjectID, req.StartTime, req.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *Handler) list(c *gin.Context) {
	q := defaultListQuery()
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "page and page_size must be integers"})
		return
	}
	if err := pagination.Validate(q.Page, q.PageSize); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	items, total, err := h.repo.List(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listSessionsResponse{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	s, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
		return
	}

	s, err := h.repo.Update(c.Request.Context(), id, req.StartTime, req.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "session id must be an integer"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, projdomain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
