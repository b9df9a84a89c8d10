package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yuvasaathi/yuvasaathi-api/internal/config"
)

func TestChatProxiesMessage(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path want /api/chat got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "Namaste! How can I help?"},
		})
	}))
	defer server.Close()

	svc := NewChatService(&config.ChatbotConfig{BaseURL: server.URL, Model: "llama3.2:1b"})
	reply, err := svc.Chat(context.Background(), "How do I apply for IT jobs?")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply != "Namaste! How can I help?" {
		t.Fatalf("reply mismatch: %s", reply)
	}

	if captured.Model != "llama3.2:1b" {
		t.Fatalf("model want llama3.2:1b got %s", captured.Model)
	}
	if captured.Stream {
		t.Fatalf("stream must be disabled")
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" || captured.Messages[0].Content != "How do I apply for IT jobs?" {
		t.Fatalf("unexpected messages payload: %+v", captured.Messages)
	}
}

func TestChatBlankMessage(t *testing.T) {
	svc := NewChatService(&config.ChatbotConfig{BaseURL: "http://localhost:11434"})
	if _, err := svc.Chat(context.Background(), "   "); !errors.Is(err, ErrMissingField) {
		t.Fatalf("blank message want ErrMissingField got %v", err)
	}
}

func TestChatUpstreamFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewChatService(&config.ChatbotConfig{BaseURL: server.URL, Model: "llama3.2:1b"})
	if _, err := svc.Chat(context.Background(), "hello"); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("upstream 500 want ErrChatUnavailable got %v", err)
	}

	unreachable := NewChatService(&config.ChatbotConfig{BaseURL: "http://127.0.0.1:1", Model: "llama3.2:1b"})
	if _, err := unreachable.Chat(context.Background(), "hello"); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("unreachable upstream want ErrChatUnavailable got %v", err)
	}

	empty := NewChatService(&config.ChatbotConfig{})
	if _, err := empty.Chat(context.Background(), "hello"); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("missing base url want ErrChatUnavailable got %v", err)
	}
}
