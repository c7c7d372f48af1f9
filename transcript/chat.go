// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AshBuk/justwhisper/config/models"
	"github.com/AshBuk/justwhisper/internal/errs"
)

// ChatProvider sends a chat-completion request and returns the assistant's
// reply. Grounded on hammamikhairi-otto's internal/gpt.Client wire shapes,
// split into Azure and OpenAI implementations since the two differ in
// endpoint construction and auth header the same way speech.Client's
// Azure/OpenAI Whisper endpoints do.
type ChatProvider interface {
	Chat(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int) (string, error)
}

// chatMessage is a single chat-completion message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body sent to the chat-completions endpoint.
type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Model       string        `json:"model,omitempty"`
}

// chatResponse is the top-level response envelope.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// httpChatProvider implements ChatProvider over net/http, configured for
// either an Azure or an OpenAI-compatible chat-completions endpoint.
type httpChatProvider struct {
	endpoint   string
	authHeader string
	authValue  string
	model      string
	http       *http.Client
}

// NewChatProvider builds a ChatProvider from config.ChatProvider (spec.md
// §3 ProviderConfig, chat variant). Returns errs.ErrConfigIncomplete if the
// API key is empty.
func NewChatProvider(cfg models.Config) (ChatProvider, error) {
	p := cfg.ChatProvider
	if p.APIKey == "" {
		return nil, fmt.Errorf("chat provider: %w", errs.ErrConfigIncomplete)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	switch p.Kind {
	case models.ProviderKindAzure:
		if p.Endpoint == "" || p.Deployment == "" {
			return nil, fmt.Errorf("chat provider: %w", errs.ErrConfigIncomplete)
		}
		endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", p.Endpoint, p.Deployment, p.APIVersion)
		return &httpChatProvider{endpoint: endpoint, authHeader: "api-key", authValue: p.APIKey, http: client}, nil
	case models.ProviderKindOpenAI:
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		return &httpChatProvider{
			endpoint:   baseURL + "/chat/completions",
			authHeader: "Authorization",
			authValue:  "Bearer " + p.APIKey,
			model:      p.Model,
			http:       client,
		}, nil
	default:
		return nil, fmt.Errorf("chat provider: unknown kind %q: %w", p.Kind, errs.ErrConfigIncomplete)
	}
}

func (p *httpChatProvider) Chat(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int) (string, error) {
	body := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Model:       p.model,
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(p.authHeader, p.authValue)

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat: %w: %v", errs.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("chat: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &errs.HTTPStatusError{Status: resp.StatusCode, Body: excerpt(respBody, 200)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("chat: %w", errs.ErrResponseParse)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat: %w: no choices in response", errs.ErrResponseParse)
	}
	return parsed.Choices[0].Message.Content, nil
}

func excerpt(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
