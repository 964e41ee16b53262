package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"katachat/health-insight-api/internal/config"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIClient interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

type OpenAIChatClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIChatClient(cfg config.Config) *OpenAIChatClient {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &OpenAIChatClient{
		apiKey:  strings.TrimSpace(cfg.OpenAIAPIKey),
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.OpenAIBaseURL), "/"),
		model:   strings.TrimSpace(cfg.OpenAIModel),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (c *OpenAIChatClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", errors.New("OPENAI_API_KEY is not configured")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return "", errors.New("OPENAI_BASE_URL is not configured")
	}
	if strings.TrimSpace(c.model) == "" {
		return "", errors.New("OPENAI_MODEL is not configured")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("AI prompt is empty")
	}

	payload := map[string]any{
		"model":       c.model,
		"messages":    []ChatTurn{{Role: "user", Content: prompt}},
		"temperature": temperature,
	}
	bodyRaw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(bodyRaw),
	)
	if err != nil {
		return "", err
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", fmt.Errorf("openai chat error (%d): %s", response.StatusCode, truncateForLog(string(responseBody), 600))
	}

	parsed := parseJSONStringMap(responseBody)
	answer := extractChatAnswer(parsed)
	if answer == "" {
		return "", fmt.Errorf("openai chat answer is empty: %s", truncateForLog(string(responseBody), 600))
	}
	return answer, nil
}

func extractChatAnswer(data map[string]any) string {
	choices, ok := data["choices"].([]any)
	if !ok {
		return ""
	}
	for _, item := range choices {
		choice, ok := item.(map[string]any)
		if !ok {
			continue
		}
		message, ok := choice["message"].(map[string]any)
		if !ok {
			continue
		}
		if content := strings.TrimSpace(toString(message["content"])); content != "" {
			return content
		}
	}
	return ""
}

func truncateForLog(value string, limit int) string {
	trimmed := strings.TrimSpace(value)
	if limit <= 0 || len(trimmed) <= limit {
		return trimmed
	}
	return trimmed[:limit] + "...(truncated)"
}

type ScriptedAIClient struct {
	Replies []string
	Err     error

	mu    sync.Mutex
	calls []ScriptedCall
}

type ScriptedCall struct {
	Prompt      string
	Temperature float64
}

func (s *ScriptedAIClient) Complete(_ context.Context, prompt string, temperature float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, ScriptedCall{Prompt: prompt, Temperature: temperature})
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Replies) == 0 {
		return "scripted reply", nil
	}
	// The last reply repeats once the script runs out.
	reply := s.Replies[0]
	if len(s.Replies) > 1 {
		s.Replies = s.Replies[1:]
	}
	return reply, nil
}

func (s *ScriptedAIClient) Calls() []ScriptedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScriptedCall, len(s.calls))
	copy(out, s.calls)
	return out
}
