package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
	"github.com/yuvasaathi/yuvasaathi-api/internal/logger"
)

// ChatService proxies user messages to an Ollama-compatible chat
// endpoint.
type ChatService struct {
	cfg    *config.ChatbotConfig
	client *http.Client
}

// NewChatService creates the chat proxy.
func NewChatService(cfg *config.ChatbotConfig) *ChatService {
	timeout := 30 * time.Second
	if cfg != nil && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &ChatService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Chat sends a single user message and returns the model's reply.
func (s *ChatService) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrMissingField
	}
	if s.cfg == nil || strings.TrimSpace(s.cfg.BaseURL) == "" {
		return "", ErrChatUnavailable
	}

	payload := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: message},
		},
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/api/chat", strings.TrimRight(s.cfg.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Errorw("chat_upstream_request_failed", "error", err)
		return "", ErrChatUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Errorw("chat_upstream_status", "status", resp.StatusCode)
		return "", ErrChatUnavailable
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		logger.Errorw("chat_upstream_decode_failed", "error", err)
		return "", ErrChatUnavailable
	}
	return decoded.Message.Content, nil
}
