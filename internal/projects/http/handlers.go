package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}
