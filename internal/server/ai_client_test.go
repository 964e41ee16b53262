package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOpenAIChatClientSendsPromptAndTemperature(t *testing.T) {
	t.Parallel()

	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model":"gpt-4o",
			"choices":[{"message":{"role":"assistant","content":"生成的回應"}}]
		}`))
	}))
	defer server.Close()

	client := &OpenAIChatClient{
		apiKey:  "test",
		baseURL: server.URL,
		model:   "gpt-4o",
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}

	answer, err := client.Complete(context.Background(), "測試提示", 0.85)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if answer != "生成的回應" {
		t.Fatalf("unexpected answer: %q", answer)
	}

	if received["model"] != "gpt-4o" {
		t.Fatalf("unexpected model: %v", received["model"])
	}
	if received["temperature"] != 0.85 {
		t.Fatalf("unexpected temperature: %v", received["temperature"])
	}
	messages, ok := received["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected a single message, got %v", received["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "user" || first["content"] != "測試提示" {
		t.Fatalf("unexpected message: %v", first)
	}
}

func TestOpenAIChatClientErrorOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := &OpenAIChatClient{
		apiKey:  "test",
		baseURL: server.URL,
		model:   "gpt-4o",
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}

	_, err := client.Complete(context.Background(), "prompt", 0.7)
	if err == nil {
		t.Fatalf("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "openai chat error (429)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenAIChatClientErrorOnEmptyAnswer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o","choices":[]}`))
	}))
	defer server.Close()

	client := &OpenAIChatClient{
		apiKey:  "test",
		baseURL: server.URL,
		model:   "gpt-4o",
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}

	_, err := client.Complete(context.Background(), "prompt", 0.7)
	if err == nil {
		t.Fatalf("expected error for empty choices")
	}
	if !strings.Contains(err.Error(), "answer is empty") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOpenAIChatClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	client := &OpenAIChatClient{
		baseURL:    "https://api.openai.invalid/v1",
		model:      "gpt-4o",
		httpClient: &http.Client{Timeout: time.Second},
	}
	if _, err := client.Complete(context.Background(), "prompt", 0.7); err == nil ||
		!strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}

func TestExtractChatAnswerSkipsBlankChoices(t *testing.T) {
	parsed := parseJSONStringMap([]byte(`{
		"choices":[
			{"message":{"role":"assistant","content":"   "}},
			{"message":{"role":"assistant","content":"第二個選項"}}
		]
	}`))
	if got := extractChatAnswer(parsed); got != "第二個選項" {
		t.Fatalf("expected first non-empty choice, got %q", got)
	}

	if got := extractChatAnswer(map[string]any{}); got != "" {
		t.Fatalf("expected empty answer for missing choices, got %q", got)
	}
}

func TestTruncateForLog(t *testing.T) {
	if got := truncateForLog("  short  ", 600); got != "short" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
	long := strings.Repeat("x", 700)
	got := truncateForLog(long, 600)
	if len(got) != 600+len("...(truncated)") {
		t.Fatalf("unexpected truncated length: %d", len(got))
	}
	if !strings.HasSuffix(got, "...(truncated)") {
		t.Fatalf("expected truncation marker, got %q", got[len(got)-20:])
	}
}

func TestScriptedAIClientReplaysAndRecords(t *testing.T) {
	client := &ScriptedAIClient{Replies: []string{"第一", "第二"}}

	for i, want := range []string{"第一", "第二", "第二"} {
		got, err := client.Complete(context.Background(), "prompt", 0.7)
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if got != want {
			t.Fatalf("call %d: expected %q, got %q", i, want, got)
		}
	}

	calls := client.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 recorded calls, got %d", len(calls))
	}
	if calls[0].Prompt != "prompt" || calls[0].Temperature != 0.7 {
		t.Fatalf("unexpected recorded call: %+v", calls[0])
	}
}
