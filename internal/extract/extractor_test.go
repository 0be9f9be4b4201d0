package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/planwatch/planwatch/internal/llm"
)

// stubProvider replays canned responses, recording each request.
type stubProvider struct {
	responses []string
	err       error
	requests  []llm.CompletionRequest
}

func (s *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return llm.CompletionResponse{}, s.err
	}
	i := len(s.requests) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return llm.CompletionResponse{
		Content: s.responses[i],
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 50},
	}, nil
}

func (s *stubProvider) Name() string             { return "stub" }
func (s *stubProvider) SupportsJSONSchema() bool { return true }

func TestExtract_FirstAttemptSucceeds(t *testing.T) {
	stub := &stubProvider{responses: []string{validResponse}}
	e := New(stub)

	result, err := e.Extract(context.Background(), "telus", "<div class=\"plan\"></div>", 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.RetryCount != 0 {
		t.Errorf("RetryCount = %d, want 0", result.RetryCount)
	}
	if len(result.Extraction.Plans) != 1 {
		t.Fatalf("plans = %d, want 1", len(result.Extraction.Plans))
	}
	if result.Extraction.Plans[0].PlanName != "Essentials" {
		t.Errorf("plan name = %q", result.Extraction.Plans[0].PlanName)
	}
	if result.Usage.InputTokens != 100 || result.Usage.OutputTokens != 50 {
		t.Errorf("usage = %+v", result.Usage)
	}
	if len(stub.requests) != 1 {
		t.Errorf("provider called %d times, want 1", len(stub.requests))
	}
}

func TestExtract_RetriesWithErrorFeedback(t *testing.T) {
	// First response fails validation (no currentPrice), second is good.
	bad := `{"carrier": "telus", "plans": [{"index": 1, "planName": "Essentials", "currentPrice": "", "dataAmount": "60 GB"}]}`
	stub := &stubProvider{responses: []string{bad, validResponse}}
	e := New(stub)

	result, err := e.Extract(context.Background(), "telus", "<div></div>", 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.RetryCount != 1 {
		t.Errorf("RetryCount = %d, want 1", result.RetryCount)
	}
	if len(stub.requests) != 2 {
		t.Fatalf("provider called %d times, want 2", len(stub.requests))
	}

	// The second prompt must carry the previous validation failure.
	second := stub.requests[1].Messages[len(stub.requests[1].Messages)-1].Content
	if !strings.Contains(second, "YOUR PREVIOUS ATTEMPT FAILED VALIDATION") {
		t.Error("retry prompt missing correction block")
	}

	// Usage accumulates across attempts.
	if result.Usage.InputTokens != 200 {
		t.Errorf("InputTokens = %d, want 200", result.Usage.InputTokens)
	}
}

func TestExtract_GivesUpAfterMaxRetries(t *testing.T) {
	stub := &stubProvider{responses: []string{"not json at all"}}
	e := New(stub, WithMaxRetries(2))

	_, err := e.Extract(context.Background(), "bell", "<div></div>", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(stub.requests) != 3 {
		t.Errorf("provider called %d times, want 3", len(stub.requests))
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error = %v", err)
	}
}

func TestExtract_ProviderErrorNotRetried(t *testing.T) {
	stub := &stubProvider{err: errors.New("rate limited")}
	e := New(stub)

	_, err := e.Extract(context.Background(), "rogers", "<div></div>", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(stub.requests) != 1 {
		t.Errorf("provider called %d times, want 1", len(stub.requests))
	}
}

func TestExtract_FillsMissingCarrier(t *testing.T) {
	response := `{"carrier": "", "plans": [{"index": 1, "planName": "4GB", "currentPrice": "$45", "dataAmount": "4GB"}]}`
	stub := &stubProvider{responses: []string{response}}
	e := New(stub)

	result, err := e.Extract(context.Background(), "virgin", "<div></div>", 1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Extraction.Carrier != "virgin" {
		t.Errorf("carrier = %q, want virgin", result.Extraction.Carrier)
	}
}

func TestExtract_SystemMessageFirst(t *testing.T) {
	stub := &stubProvider{responses: []string{validResponse}}
	e := New(stub)

	if _, err := e.Extract(context.Background(), "fido", "<div></div>", 1); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	msgs := stub.requests[0].Messages
	if len(msgs) != 2 || msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser {
		t.Errorf("unexpected message shape: %+v", describeRoles(msgs))
	}
	if stub.requests[0].JSONSchema == nil {
		t.Error("request missing JSON schema")
	}
}

func describeRoles(msgs []llm.Message) string {
	roles := make([]string, len(msgs))
	for i, m := range msgs {
		roles[i] = string(m.Role)
	}
	return fmt.Sprintf("%v", roles)
}
