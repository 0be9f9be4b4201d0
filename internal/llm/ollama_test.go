package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_RequestShape(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Message:         ollamaMessage{Role: "assistant", Content: `{"carrier":"telus"}`},
			Model:           "llama3.2",
			Done:            true,
			PromptEvalCount: 1200,
			EvalCount:       80,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(ProviderConfig{BaseURL: server.URL, Model: "llama3.2"})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "extract plans"},
			{Role: RoleUser, Content: "<div class=\"plan\">...</div>"},
		},
		MaxTokens:  2048,
		JSONSchema: map[string]any{"type": "object"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got.Model != "llama3.2" {
		t.Errorf("model = %q, want llama3.2", got.Model)
	}
	if got.Stream {
		t.Error("stream = true, want false")
	}
	// Reduction prompts overrun Ollama's default 2048-token context.
	if got.Options.NumCtx != ollamaNumCtx {
		t.Errorf("num_ctx = %d, want %d", got.Options.NumCtx, ollamaNumCtx)
	}
	if got.Options.NumPredict != 2048 {
		t.Errorf("num_predict = %d, want 2048", got.Options.NumPredict)
	}
	if len(got.Format) == 0 {
		t.Error("format missing, want the JSON schema")
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Errorf("messages = %+v, want [system, user]", got.Messages)
	}

	if resp.Content != `{"carrier":"telus"}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage.InputTokens != 1200 || resp.Usage.OutputTokens != 80 {
		t.Errorf("Usage = %+v, want 1200/80", resp.Usage)
	}
	if resp.Model != "llama3.2" {
		t.Errorf("Model = %q, want llama3.2", resp.Model)
	}
}
