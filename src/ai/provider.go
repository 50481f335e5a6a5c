// backend/src/ai/provider.go
package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/username/saathi/backend/src/models"
)

// Provider names accepted by NewProvider.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Default model names, overridable via GEMINI_MODEL / OPENAI_MODEL.
const (
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

const defaultTimeout = 45 * time.Second

var (
	// ErrNoCredentials is the configuration error raised when auto
	// selection finds no usable provider.
	ErrNoCredentials = errors.New("ai: no provider credentials found; set GEMINI_API_KEY or OPENAI_API_KEY")

	// ErrUnavailable marks a call against a provider operating in mock
	// mode while a live backend was required.
	ErrUnavailable = errors.New("ai: provider unavailable")

	// ErrGenerateFailed wraps any network or parse failure of a live
	// insight generation call. Backend-specific error types never escape
	// this package.
	ErrGenerateFailed = errors.New("ai: insight generation failed")
)

// Status describes what a provider instance can do. It is computed from
// construction-time state only and never triggers a network call.
type Status struct {
	Provider           string `json:"provider"`
	HasCredential      bool   `json:"has_credential"`
	IntegrationPresent bool   `json:"integration_present"`
	UsingMock          bool   `json:"using_mock"`
}

// Provider is the uniform capability interface over interchangeable
// text-generation backends. Implementations degrade to canned mock output
// on any failure unless constructed with RequireLive.
type Provider interface {
	Name() string

	// Available reports whether a live backend call can be attempted.
	// Decided once at construction; never re-evaluated.
	Available() bool

	// GenerateBusinessInsights issues one structured-output generation
	// request at the given sampling temperature and parses the response.
	GenerateBusinessInsights(ctx context.Context, prompt string, temperature float32) (models.Insights, error)

	// TranscribeAudio returns the transcript and whether a live backend
	// produced it. Failure or unavailability yields the mock transcript
	// and false, never an error.
	TranscribeAudio(ctx context.Context, audio []byte, filename string) (string, bool)

	AvailabilityStatus() Status
}

// Config carries the credential/model pairs and policy flags for all
// providers. Values come from the process environment via the config
// package; this package never reads env itself.
type Config struct {
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// ForceMock pins every provider to mock mode regardless of credentials.
	ForceMock bool

	// RequireLive surfaces provider failures as errors instead of
	// substituting mock insights.
	RequireLive bool

	Timeout time.Duration
	Logger  *slog.Logger
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
