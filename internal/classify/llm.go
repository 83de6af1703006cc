package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zenledger/internal/core"
)

// LLMConfig configures the remote classifier.
type LLMConfig struct {
	Endpoint  string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// LLMClassifier calls a messages-style LLM API and parses the strict-JSON
// classification it is instructed to return.
type LLMClassifier struct {
	cfg        LLMConfig
	httpClient *http.Client
}

type llmRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []llmMessage `json:"messages"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func NewLLMClassifier(cfg LLMConfig) (*LLMClassifier, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("classifier endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("classifier model is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &LLMClassifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

const systemInstruction = `You are a professional financial auditor.
Classify user financial transactions into a STRICT set of high-level categories.

RULES:
1. Determine the TYPE:
   - 'income': money received (salary, interest, gift received).
   - 'savings': money set aside for future/investment (savings transfers, stock buys).
   - 'expense': money spent on goods or services.
2. Assign a CATEGORY:
   - If TYPE is 'income', the category MUST be exactly 'Income'.
   - If TYPE is 'savings', the category MUST be exactly 'Savings'.
   - If TYPE is 'expense', choose the most appropriate category from this list only: %s.
3. Respond with a single JSON object of the form {"category": "...", "type": "..."} and nothing else.`

// Classify sends a single transaction to the LLM and parses its JSON verdict.
func (c *LLMClassifier) Classify(ctx context.Context, description string, amount core.Money) (Result, error) {
	system := fmt.Sprintf(systemInstruction, strings.Join(core.ExpenseCategories, ", "))
	prompt := fmt.Sprintf("Classify this transaction:\nDescription: %q\nAmount: %.2f", description, amount.Units())

	body, err := json.Marshal(llmRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		System:    system,
		Messages:  []llmMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call classifier: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed llmResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return Result{}, fmt.Errorf("empty classifier response")
	}

	result, err := parseVerdict(parsed.Content[0].Text)
	if err != nil {
		return Result{}, fmt.Errorf("parse verdict: %w", err)
	}
	return result, nil
}

// parseVerdict extracts the JSON object from the model's text, tolerating
// markdown code fences around it.
func parseVerdict(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var r Result
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return Result{}, err
	}
	if !r.Type.Valid() {
		return Result{}, fmt.Errorf("unknown transaction type %q", r.Type)
	}
	return r, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
