package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: text})
	}
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "어제 Acme 2시간", req.Prompt)

		replyWith(`{"entries":[]}`)(w, r)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskParse,
		SystemPrompt: "system prompt",
		UserPrompt:   "어제 Acme 2시간",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"entries":[]}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.Equal(t, 1, resp.Attempts)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskParse: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestOllamaClient_Generate_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("model loading"))
			return
		}
		replyWith("ok")(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, resp.Attempts)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrGaveUp)
	assert.Contains(t, err.Error(), "model not found")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestOllamaClient_TaskOptionsAndTokenCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.1, req.Options.Temperature)
		assert.Equal(t, 1024, req.Options.NumPredict)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "{}", EvalCount: 37})
	}))
	defer srv.Close()

	resp, err := NewOllamaClient(testConfig(srv.URL), nil).Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, 37, resp.ReplyTokens)
}

func TestOllamaClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskParse: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	var captured CallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e CallEvent) { captured = e }})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskParse, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, captured.Failed())
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
	assert.Equal(t, 1, captured.Attempts)
	assert.Equal(t, 4, captured.PromptBytes)
}

func TestLogObserver_FailedCallLogsWarn(t *testing.T) {
	var buf bytes.Buffer
	NewLogObserver(&buf).CallDone(context.Background(), CallEvent{
		Task: TaskParse, Model: "llama3.2", LatencyMs: 42, Attempts: 2, PromptBytes: 120, ErrorCode: "UNREACHABLE",
	})

	out := buf.String()
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "task=parse")
	assert.Contains(t, out, "latency_ms=42")
	assert.Contains(t, out, "prompt_bytes=120")
	assert.Contains(t, out, "error_code=UNREACHABLE")
	assert.Contains(t, out, "level=WARN")
}

func TestLogObserver_SuccessLogsReplySize(t *testing.T) {
	var buf bytes.Buffer
	NewLogObserver(&buf).CallDone(context.Background(), CallEvent{Task: TaskParse, ReplyBytes: 512})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "reply_bytes=512")
	assert.NotContains(t, out, "error_code")
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) CallDone(_ context.Context, e CallEvent) { o.fn(e) }
