// backend/src/ai/gemini.go
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/username/saathi/backend/src/models"
)

// GeminiProvider generates insights through the Google GenAI SDK. A missing
// credential, a forced-mock flag, or a client construction failure all land
// the instance in mock mode at construction time; the state is never
// re-evaluated afterwards.
type GeminiProvider struct {
	apiKey      string
	model       string
	requireLive bool
	timeout     time.Duration
	client      *genai.Client // nil in mock mode
	log         *slog.Logger
}

func NewGeminiProvider(cfg Config) *GeminiProvider {
	p := &GeminiProvider{
		apiKey:      strings.TrimSpace(cfg.GeminiAPIKey),
		model:       cfg.GeminiModel,
		requireLive: cfg.RequireLive,
		timeout:     cfg.timeout(),
		log:         cfg.logger(),
	}
	if p.model == "" {
		p.model = DefaultGeminiModel
	}
	if p.apiKey == "" || cfg.ForceMock {
		return p
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      p.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		p.log.Warn("gemini client construction failed, operating in mock mode", "error", err)
		return p
	}
	p.client = client
	return p
}

func (p *GeminiProvider) Name() string    { return ProviderGemini }
func (p *GeminiProvider) Available() bool { return p.client != nil }

func (p *GeminiProvider) AvailabilityStatus() Status {
	return Status{
		Provider:           ProviderGemini,
		HasCredential:      p.apiKey != "",
		IntegrationPresent: true,
		UsingMock:          !p.Available(),
	}
}

func (p *GeminiProvider) GenerateBusinessInsights(ctx context.Context, prompt string, temperature float32) (models.Insights, error) {
	if !p.Available() {
		return p.fallback(fmt.Errorf("%w: gemini operating in mock mode", ErrUnavailable))
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		TopP:             genai.Ptr[float32](0.8),
		TopK:             genai.Ptr[float32](40),
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	raw, err := p.generateWithRetry(ctx, contents, genCfg)
	if err != nil {
		return p.fallback(fmt.Errorf("%w: %v", ErrGenerateFailed, err))
	}

	insights, err := ParseInsights(raw)
	if err != nil {
		return p.fallback(fmt.Errorf("%w: %v", ErrGenerateFailed, err))
	}
	return insights, nil
}

func (p *GeminiProvider) TranscribeAudio(ctx context.Context, audio []byte, filename string) (string, bool) {
	if !p.Available() || len(audio) == 0 {
		return MockTranscript(), false
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: "Transcribe the attached shop-floor audio note and summarize it as concise business text. " +
				"Focus on sales, customer feedback, and operational observations."},
			{InlineData: &genai.Blob{MIMEType: audioMIMEType(filename), Data: audio}},
		},
	}}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil || resp.Text() == "" {
		p.log.Warn("gemini transcription failed, returning mock transcript", "error", err)
		return MockTranscript(), false
	}
	return resp.Text(), true
}

// generateWithRetry attempts the call at most twice: the one bounded retry
// allowed for transient transport failures.
func (p *GeminiProvider) generateWithRetry(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
		if err != nil {
			lastErr = err
			continue
		}
		if text := resp.Text(); text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("empty response from model")
	}
	return "", lastErr
}

func (p *GeminiProvider) fallback(err error) (models.Insights, error) {
	if p.requireLive {
		return models.Insights{}, err
	}
	p.log.Warn("gemini insights degraded to mock", "error", err)
	return MockInsights(), nil
}

func audioMIMEType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a", ".mp4":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	default:
		return "audio/wav"
	}
}
