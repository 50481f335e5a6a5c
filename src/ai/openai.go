// backend/src/ai/openai.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/username/saathi/backend/src/models"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	openAIWhisperModel   = "whisper-1"
)

// OpenAIProvider talks to the OpenAI chat-completions and transcription
// endpoints over plain HTTP. Availability is fixed at construction: a
// non-empty credential and no forced-mock flag.
type OpenAIProvider struct {
	apiKey      string
	model       string
	baseURL     string
	requireLive bool
	available   bool
	http        *http.Client
	log         *slog.Logger
}

func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	p := &OpenAIProvider{
		apiKey:      strings.TrimSpace(cfg.OpenAIAPIKey),
		model:       cfg.OpenAIModel,
		baseURL:     strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		requireLive: cfg.RequireLive,
		http:        &http.Client{Timeout: cfg.timeout()},
		log:         cfg.logger(),
	}
	if p.model == "" {
		p.model = DefaultOpenAIModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultOpenAIBaseURL
	}
	p.available = p.apiKey != "" && !cfg.ForceMock
	return p
}

func (p *OpenAIProvider) Name() string    { return ProviderOpenAI }
func (p *OpenAIProvider) Available() bool { return p.available }

func (p *OpenAIProvider) AvailabilityStatus() Status {
	return Status{
		Provider:           ProviderOpenAI,
		HasCredential:      p.apiKey != "",
		IntegrationPresent: true,
		UsingMock:          !p.available,
	}
}

func (p *OpenAIProvider) GenerateBusinessInsights(ctx context.Context, prompt string, temperature float32) (models.Insights, error) {
	if !p.available {
		return p.fallback(fmt.Errorf("%w: openai operating in mock mode", ErrUnavailable))
	}

	body := map[string]any{
		"model":           p.model,
		"temperature":     temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": "You are a retail analytics assistant. Always reply with compact valid JSON."},
			{"role": "user", "content": prompt},
		},
	}

	raw, err := p.postJSONWithRetry(ctx, p.baseURL+"/chat/completions", body)
	if err != nil {
		return p.fallback(fmt.Errorf("%w: %v", ErrGenerateFailed, err))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return p.fallback(fmt.Errorf("%w: decode response: %v", ErrGenerateFailed, err))
	}
	if len(cc.Choices) == 0 {
		return p.fallback(fmt.Errorf("%w: no choices in response", ErrGenerateFailed))
	}

	insights, err := ParseInsights(cc.Choices[0].Message.Content)
	if err != nil {
		return p.fallback(fmt.Errorf("%w: %v", ErrGenerateFailed, err))
	}
	return insights, nil
}

func (p *OpenAIProvider) TranscribeAudio(ctx context.Context, audio []byte, filename string) (string, bool) {
	if !p.available || len(audio) == 0 {
		return MockTranscript(), false
	}
	if filename == "" {
		filename = "audio.wav"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("model", openAIWhisperModel); err != nil {
		return MockTranscript(), false
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return MockTranscript(), false
	}
	if _, err := part.Write(audio); err != nil {
		return MockTranscript(), false
	}
	if err := mw.Close(); err != nil {
		return MockTranscript(), false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return MockTranscript(), false
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := p.do(req)
	if err != nil {
		p.log.Warn("openai transcription failed, returning mock transcript", "error", err)
		return MockTranscript(), false
	}

	var tr struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &tr); err != nil || tr.Text == "" {
		return MockTranscript(), false
	}
	return tr.Text, true
}

func (p *OpenAIProvider) postJSONWithRetry(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		req.Header.Set("Content-Type", "application/json")

		start := time.Now()
		raw, err := p.do(req)
		if err != nil {
			lastErr = err
			p.log.Warn("openai request failed",
				"attempt", attempt+1,
				"error", err,
				"elapsed_ms", time.Since(start).Milliseconds())
			continue
		}
		return raw, nil
	}
	return nil, lastErr
}

func (p *OpenAIProvider) do(req *http.Request) ([]byte, error) {
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			p.log.Warn("openai response body close error", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func (p *OpenAIProvider) fallback(err error) (models.Insights, error) {
	if p.requireLive {
		return models.Insights{}, err
	}
	p.log.Warn("openai insights degraded to mock", "error", err)
	return MockInsights(), nil
}
