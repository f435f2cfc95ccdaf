package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
}

type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
	Attempts  int
	// ReplyTokens is Ollama's eval_count. Zero when the server omits it.
	ReplyTokens int
}

// LLMClient turns a prompt into raw model text. The parser in
// internal/intelligence owns prompts and decoding.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient talks to Ollama's /api/generate endpoint, non-streaming.
// A nil observer is replaced by NoopObserver.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &ollamaClient{
		cfg:      cfg,
		http:     &http.Client{Transport: &http.Transport{DialContext: dialer.DialContext}},
		observer: observer,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	EvalCount int    `json:"eval_count,omitempty"`
}

func (c *ollamaClient) newRequest(req GenerateRequest) ollamaRequest {
	task := c.cfg.Tasks[req.Task]
	body := ollamaRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Options: ollamaOptions{
			Temperature: task.Temperature,
			NumPredict:  task.MaxTokens,
		},
	}
	if task.JSONMode {
		body.Format = "json"
	}
	return body
}

// Generate retries up to MaxRetries times on transport errors and 5xx
// replies, all within the task's timeout. The observer sees one event per
// call, not per attempt.
func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	body := c.newRequest(req)
	event := CallEvent{
		Task:        req.Task,
		Model:       c.cfg.Model,
		PromptBytes: len(req.SystemPrompt) + len(req.UserPrompt),
	}

	var (
		resp    *ollamaResponse
		lastErr error
	)
	for event.Attempts < 1+c.cfg.MaxRetries {
		event.Attempts++
		resp, lastErr = c.post(ctx, body)
		if lastErr == nil || ctx.Err() != nil || !retryable(lastErr) {
			break
		}
	}
	event.LatencyMs = time.Since(start).Milliseconds()

	if lastErr != nil {
		err := classify(ctx, lastErr)
		event.ErrorCode = errorCode(err)
		c.observer.CallDone(ctx, event)
		return nil, err
	}

	event.ReplyBytes = len(resp.Response)
	c.observer.CallDone(ctx, event)
	return &GenerateResponse{
		Text:        resp.Response,
		Model:       resp.Model,
		LatencyMs:   event.LatencyMs,
		Attempts:    event.Attempts,
		ReplyTokens: resp.EvalCount,
	}, nil
}

func (c *ollamaClient) post(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: string(raw)}
	}

	var out ollamaResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrMalformedReply, err)
	}
	return &out, nil
}
