package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRequests 最近请求审计记录
// GET /api/requests?limit=50
func (h *Handler) ListRequests(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	records, err := h.store.ListRequests(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": records})
}
