package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Config holds the settings for the DeepSeek-compatible chat completions
// endpoint.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
}

// DeepSeekClient asks a chat-completions API for commentary on a risk report.
type DeepSeekClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewDeepSeekClient creates a commentator backed by a chat-completions API.
func NewDeepSeekClient(cfg Config) (*DeepSeekClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("narrative API key is not set")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("narrative base URL is not set")
	}
	return &DeepSeekClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Comment requests prose commentary for the report. Errors are returned to
// the caller, which falls back to the numeric report alone.
func (c *DeepSeekClient) Comment(ctx context.Context, report types.RiskReport) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a market risk analyst. Comment briefly on the volatility assessment you are given."},
			{Role: "user", Content: buildPrompt(report)},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode narrative request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build narrative request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narrative API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode narrative response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("narrative response contained no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// buildPrompt renders the report fields the model should comment on.
func buildPrompt(report types.RiskReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Token: %s\n", report.Symbol)
	fmt.Fprintf(&b, "Current daily volatility: %.4f\n", report.CurrentVolatility)
	fmt.Fprintf(&b, "VaR(%.0f%%): %.4f\n", report.Confidence*100, report.ValueAtRisk)
	fmt.Fprintf(&b, "Expected shortfall: %.4f\n", report.ExpectedShortfall)
	fmt.Fprintf(&b, "Trend: %s\n", report.Trend)
	fmt.Fprintf(&b, "Risk level: %s\n", report.Level)
	return b.String()
}
