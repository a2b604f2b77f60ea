package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jamesbas/supplemental-pay-agent/internal/store"
)

// ChatRequest 问答请求
type ChatRequest struct {
	Query      string `json:"query"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id"`
}

// ChatResponse 问答响应
type ChatResponse struct {
	Content   string `json:"content"`
	RequestID string `json:"request_id"`
}

// Chat 处理一次角色问答
// POST /api/chat
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	requestID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	content := h.router.Route(ctx, req.Query, req.Role, req.EmployeeID)
	elapsed := time.Since(start)

	// 审计写失败不影响响应
	if err := h.store.LogRequest(store.RequestRecord{
		ID:         requestID,
		Role:       req.Role,
		Query:      req.Query,
		EmployeeID: req.EmployeeID,
		Response:   content,
		DurationMs: elapsed.Milliseconds(),
	}); err != nil {
		log.Printf("[api] log request %s failed: %v", requestID, err)
	}

	c.JSON(http.StatusOK, ChatResponse{
		Content:   content,
		RequestID: requestID,
	})
}
