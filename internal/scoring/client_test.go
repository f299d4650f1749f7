package scoring_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prepmate/mockview/internal/config"
	"github.com/prepmate/mockview/internal/scoring"
)

func newTestClient(t *testing.T, handler http.Handler) (*scoring.Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	cfg := config.ScorerConfig{
		BaseURL: srv.URL,
		Model:   "sonar-pro",
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}
	c := scoring.NewClient(cfg, srv.Client())
	return c, func() {
		srv.Client().CloseIdleConnections()
		srv.Close()
	}
}

func envelope(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestScore_StructuredResponse(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var gotAuth string

	c, closeFn := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(envelope(`Sure! {"mistakes":"none","areas_for_improvement":"x","extra_points":"y","score":7}`)))
	}))
	defer closeFn()

	fb, outcome := c.Score(context.Background(), "What is a goroutine?", "A lightweight thread.")
	if outcome != scoring.OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", outcome)
	}
	if fb["mistakes"] != "none" {
		t.Fatalf("unexpected feedback: %v", fb)
	}
	if got, ok := fb["score"].(float64); !ok || got != 7 {
		t.Fatalf("unexpected score: %v", fb["score"])
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotReq.Model != "sonar-pro" {
		t.Fatalf("unexpected model: %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	user := gotReq.Messages[1].Content
	for _, want := range []string{"What is a goroutine?", "A lightweight thread.", `"mistakes"`, `"areas_for_improvement"`, `"extra_points"`, `"score"`} {
		if !strings.Contains(user, want) {
			t.Fatalf("user prompt missing %q:\n%s", want, user)
		}
	}
}

func TestScore_NonJSONCompletion(t *testing.T) {
	c, closeFn := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(envelope("I cannot comply.")))
	}))
	defer closeFn()

	fb, outcome := c.Score(context.Background(), "q", "a")
	if outcome != scoring.OutcomeRaw {
		t.Fatalf("expected raw outcome, got %s", outcome)
	}
	if fb["raw"] != "I cannot comply." {
		t.Fatalf("unexpected raw: %v", fb["raw"])
	}
}

func TestScore_EmptyCompletion(t *testing.T) {
	c, closeFn := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(envelope("   ")))
	}))
	defer closeFn()

	fb, outcome := c.Score(context.Background(), "q", "a")
	if outcome != scoring.OutcomeDegraded {
		t.Fatalf("expected degraded outcome, got %s", outcome)
	}
	if fb["mistakes"] != "No data returned" || fb["score"] != 0 {
		t.Fatalf("unexpected degraded feedback: %v", fb)
	}
}

func TestScore_UpstreamError(t *testing.T) {
	c, closeFn := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer closeFn()

	fb, outcome := c.Score(context.Background(), "q", "a")
	if outcome != scoring.OutcomeDegraded {
		t.Fatalf("expected degraded outcome, got %s", outcome)
	}
	if fb["mistakes"] != "No data returned" {
		t.Fatalf("unexpected feedback: %v", fb)
	}
}

func TestScore_MalformedEnvelope(t *testing.T) {
	c, closeFn := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer closeFn()

	_, outcome := c.Score(context.Background(), "q", "a")
	if outcome != scoring.OutcomeDegraded {
		t.Fatalf("expected degraded outcome, got %s", outcome)
	}
}

func TestScore_NoChoices(t *testing.T) {
	c, closeFn := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer closeFn()

	_, outcome := c.Score(context.Background(), "q", "a")
	if outcome != scoring.OutcomeDegraded {
		t.Fatalf("expected degraded outcome, got %s", outcome)
	}
}

func TestScore_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := config.ScorerConfig{BaseURL: url, Model: "sonar-pro", APIKey: "k", Timeout: 2 * time.Second}
	c := scoring.NewClient(cfg, nil)

	fb, outcome := c.Score(context.Background(), "q", "a")
	if outcome != scoring.OutcomeDegraded {
		t.Fatalf("expected degraded outcome, got %s", outcome)
	}
	if fb["mistakes"] != "No data returned" || fb["score"] != 0 {
		t.Fatalf("unexpected degraded feedback: %v", fb)
	}
}
