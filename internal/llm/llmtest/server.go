// Package llmtest fakes the OpenAI chat completions endpoint for tests.
package llmtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Reply is what the fake endpoint answers with. A non-zero Status sends an
// OpenAI-style error body carrying ErrorMessage instead of a completion.
type Reply struct {
	Content      string
	NoChoices    bool
	Status       int
	ErrorMessage string
	ErrorCode    string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	reply    Reply
	requests []map[string]any
}

func NewServer(t *testing.T, reply Reply) *Server {
	t.Helper()

	s := &Server{reply: reply}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

// BaseURL is suitable for option.WithBaseURL and OPENAI_BASE_URL.
func (s *Server) BaseURL() string {
	return s.URL + "/v1/"
}

func (s *Server) SetReply(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reply = reply
}

func (s *Server) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

// LastRequest returns the decoded JSON body of the most recent call.
func (s *Server) LastRequest() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return nil
	}

	return s.requests[len(s.requests)-1]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)

	s.mu.Lock()
	s.requests = append(s.requests, decoded)
	reply := s.reply
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if reply.Status != 0 && reply.Status != http.StatusOK {
		w.WriteHeader(reply.Status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": reply.ErrorMessage,
				"type":    "invalid_request_error",
				"code":    reply.ErrorCode,
			},
		})

		return
	}

	choices := []map[string]any{}
	if !reply.NoChoices {
		choices = append(choices, map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]any{
				"role":    "assistant",
				"content": reply.Content,
			},
		})
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4.1",
		"choices": choices,
		"usage": map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 5,
			"total_tokens":      15,
		},
	})
}
