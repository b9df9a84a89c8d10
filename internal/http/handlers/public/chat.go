package public

import (
	"errors"

	"github.com/yuvasaathi/yuvasaathi-api/internal/http/response"
	"github.com/yuvasaathi/yuvasaathi-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatRequest carries a single user message.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat proxies the message to the chatbot backend.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Message is required", nil)
		return
	}

	content, err := h.ChatService.Chat(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			respondError(c, response.CodeBadRequest, "Message is required", nil)
		case errors.Is(err, service.ErrChatUnavailable):
			respondError(c, response.CodeInternal, "Chat service unavailable", err)
		default:
			respondError(c, response.CodeInternal, "Chat service unavailable", err)
		}
		return
	}

	response.Success(c, gin.H{"content": content})
}
