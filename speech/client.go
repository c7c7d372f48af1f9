// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package speech sends a captured audio buffer to a remote Whisper-family
// transcription endpoint (Azure OpenAI or OpenAI proper) and reconciles
// whatever shape of response comes back into plain text.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/AshBuk/justwhisper/audio/pcm"
	"github.com/AshBuk/justwhisper/config/models"
	"github.com/AshBuk/justwhisper/internal/errs"
	"github.com/AshBuk/justwhisper/internal/logger"
)

// Client transcribes native float32 audio through a configured provider.
// Grounded on MrWong99-glyphoxa's whisper.cpp multipart/form-data upload
// shape (CreateFormFile + WriteField + Content-Type from the multipart
// writer), generalized to the Azure-vs-OpenAI endpoint/auth split spec.md
// §4.7 requires.
type Client struct {
	endpoint   string
	authHeader string
	authValue  string
	model      string // non-empty only for OpenAI-family providers
	sampleRate int
	channels   int
	http       *http.Client
	log        logger.Logger
}

// New builds a Client from config.SpeechProvider (spec.md §3
// ProviderConfig). Returns errs.ErrMissingCredential if the API key is
// empty, or errs.ErrInvalidEndpoint if a required endpoint field is
// missing for the configured kind.
func New(cfg models.Config, log logger.Logger) (*Client, error) {
	p := cfg.SpeechProvider
	if p.APIKey == "" {
		return nil, fmt.Errorf("speech client: %w", errs.ErrMissingCredential)
	}

	c := &Client{
		sampleRate: cfg.Audio.SampleRate,
		channels:   cfg.Audio.Channels,
		http:       &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}

	switch p.Kind {
	case models.ProviderKindAzure:
		if p.Endpoint == "" || p.Deployment == "" {
			return nil, fmt.Errorf("speech client: %w", errs.ErrInvalidEndpoint)
		}
		c.endpoint = fmt.Sprintf("%s/openai/deployments/%s/audio/transcriptions?api-version=%s", p.Endpoint, p.Deployment, p.APIVersion)
		c.authHeader = "api-key"
		c.authValue = p.APIKey
	case models.ProviderKindOpenAI:
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		c.endpoint = baseURL + "/audio/transcriptions"
		c.authHeader = "Authorization"
		c.authValue = "Bearer " + p.APIKey
		c.model = p.Model
	default:
		return nil, fmt.Errorf("speech client: unknown provider kind %q: %w", p.Kind, errs.ErrInvalidEndpoint)
	}
	return c, nil
}

// Transcribe converts the native float32 capture buffer to canonical WAV,
// uploads it, and returns the reconciled transcript text (spec.md §4.7).
func (c *Client) Transcribe(ctx context.Context, samples []float32) (string, error) {
	c.log.Debug("speech: converting %d samples to WAV", len(samples))
	wav, err := c.encodeAudio(samples)
	if err != nil {
		return "", err
	}

	body, contentType, err := c.buildMultipart(wav)
	if err != nil {
		return "", err
	}

	c.log.Debug("speech: POST %s (%d bytes)", redactEndpoint(c.endpoint), body.Len())
	resp, err := c.send(ctx, body, contentType)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("speech: read response: %w: %w", errs.ErrIoFailure, err)
	}
	c.log.Debug("speech: received HTTP %d (%d bytes)", resp.StatusCode, len(respBody))

	if resp.StatusCode != http.StatusOK {
		return "", &errs.HTTPStatusError{Status: resp.StatusCode, Body: excerptBody(respBody, 200)}
	}

	text, err := parseTranscriptionResponse(respBody)
	if err != nil {
		return "", err
	}

	c.logLowSignalArtifact(text)
	return text, nil
}

func (c *Client) encodeAudio(samples []float32) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("speech: %w: empty capture buffer", errs.ErrAudioConversion)
	}
	return pcm.EncodeFloat32WAV(samples, c.sampleRate, c.channels), nil
}

// buildMultipart writes the upload exactly as spec.md §4.7 names: field
// "file" (audio.wav, audio/wav), response_format=verbose_json,
// language=en, temperature=0.0, and — for OpenAI-family providers only —
// model=<modelName>.
func (c *Client) buildMultipart(wav []byte) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="audio.wav"`}
	header["Content-Type"] = []string{"audio/wav"}
	fw, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("speech: create form file: %w", errs.ErrIoFailure)
	}
	if _, err := fw.Write(wav); err != nil {
		return nil, "", fmt.Errorf("speech: write wav data: %w", errs.ErrIoFailure)
	}

	fields := map[string]string{
		"response_format": "verbose_json",
		"language":        "en",
		"temperature":     "0.0",
	}
	if c.model != "" {
		fields["model"] = c.model
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("speech: write field %q: %w", name, errs.ErrIoFailure)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("speech: close multipart writer: %w", errs.ErrIoFailure)
	}
	return &body, mw.FormDataContentType(), nil
}

func (c *Client) send(ctx context.Context, body *bytes.Buffer, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("speech: build request: %w", errs.ErrInvalidEndpoint)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(c.authHeader, c.authValue)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: %w: %v", errs.ErrNetwork, err)
	}
	return resp, nil
}

// lowSignalTranscript is the known artifact spec.md §4.7 calls out: a
// Whisper-family model transcribing near-silence often returns exactly
// "you".
const lowSignalTranscript = "you"

func (c *Client) logLowSignalArtifact(text string) {
	if strings.EqualFold(strings.TrimSpace(text), lowSignalTranscript) {
		c.log.Warning("speech: transcript is exactly %q — likely near-silent input, consider raising input gain", lowSignalTranscript)
	}
}

func excerptBody(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

var firstTextFieldPattern = regexp.MustCompile(`"text"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// parseTranscriptionResponse reconciles the three response shapes spec.md
// §4.7 allows: a verbose_json object (preferring the top-level "text",
// falling back to concatenated non-empty segment text), plain non-JSON
// text returned as-is, or — as a last resort before failing — a regex
// extraction of the first "text":"…" field from an otherwise unparsable
// body.
func parseTranscriptionResponse(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("speech: %w: empty response body", errs.ErrResponseParse)
	}

	var parsed verboseJSONResponse
	if err := json.Unmarshal(trimmed, &parsed); err == nil {
		if text := parsed.reconcile(); text != "" {
			return text, nil
		}
		return "", fmt.Errorf("speech: %w: transcript fields all empty", errs.ErrEmptyTranscript)
	}

	if trimmed[0] != '{' && trimmed[0] != '[' {
		return string(trimmed), nil
	}

	if m := firstTextFieldPattern.FindSubmatch(trimmed); m != nil {
		var unescaped string
		if err := json.Unmarshal([]byte(`"`+string(m[1])+`"`), &unescaped); err == nil {
			return unescaped, nil
		}
	}
	return "", fmt.Errorf("speech: %w", errs.ErrResponseParse)
}

// verboseJSONResponse models the response_format=verbose_json body.
type verboseJSONResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Text         string  `json:"text"`
		NoSpeechProb float64 `json:"no_speech_prob"`
		AvgLogprob   float64 `json:"avg_logprob"`
	} `json:"segments"`
}

func (r verboseJSONResponse) reconcile() string {
	if strings.TrimSpace(r.Text) != "" {
		return r.Text
	}
	var parts []string
	for _, seg := range r.Segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func redactEndpoint(endpoint string) string {
	if i := strings.Index(endpoint, "?"); i >= 0 {
		return endpoint[:i] + "?..."
	}
	return endpoint
}
