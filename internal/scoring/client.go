package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"log/slog"

	"github.com/prepmate/mockview/internal/config"
)

const systemPrompt = "You are a strict AI interviewer giving objective feedback only in JSON."

const userPromptFormat = `
You are an AI interviewer. Evaluate the candidate's answer and respond only in JSON.
Return JSON with these exact keys: "mistakes", "areas_for_improvement", "extra_points", "score".
Question: %s
Answer: %s
`

// package-level logger for the scoring package; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by the scoring package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Client grades answers through an OpenAI-style chat-completion endpoint.
// Every failure mode is absorbed into a degraded Feedback value: a scoring
// outage must never abort the submission that triggered it.
type Client struct {
	cfg    config.ScorerConfig
	client *http.Client
}

// NewClient creates a scoring client. A nil httpClient gets a default with
// the configured timeout.
func NewClient(cfg config.ScorerConfig, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: httpClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Score sends the fixed evaluation prompt and extracts Feedback from whatever
// comes back. It never returns an error; transport failures, non-2xx
// statuses, malformed envelopes, and empty completions all yield the degraded
// Feedback, while unparseable completion text is preserved under "raw".
func (c *Client) Score(ctx context.Context, questionText, answerText string) (Feedback, Outcome) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptFormat, questionText, answerText)},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		logger.Error("scoring: marshal request", slog.Any("err", err))
		return Degraded(), OutcomeDegraded
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(b))
	if err != nil {
		logger.Error("scoring: build request", slog.Any("err", err))
		return Degraded(), OutcomeDegraded
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("scoring: request failed", slog.Any("err", err), slog.Duration("after", time.Since(start)))
		return Degraded(), OutcomeDegraded
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("scoring: read response", slog.Any("err", err))
		return Degraded(), OutcomeDegraded
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("scoring: upstream status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncate(string(body), 300)),
		)
		return Degraded(), OutcomeDegraded
	}

	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Error("scoring: decode envelope", slog.Any("err", err))
		return Degraded(), OutcomeDegraded
	}
	if len(envelope.Choices) == 0 {
		logger.Error("scoring: no choices in response")
		return Degraded(), OutcomeDegraded
	}

	content := strings.TrimSpace(envelope.Choices[0].Message.Content)
	fb, outcome := Extract(content)

	logger.Info("scoring: completed",
		slog.String("outcome", outcome.String()),
		slog.Duration("latency", time.Since(start)),
	)
	return fb, outcome
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
