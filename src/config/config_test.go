// backend/src/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	if Cfg.Port == "" {
		t.Error("port default missing")
	}
	if Cfg.AIProvider != "auto" {
		t.Errorf("AI provider default = %q, want auto", Cfg.AIProvider)
	}
	if Cfg.InsightSampleRows != 50 {
		t.Errorf("insight sample rows default = %d, want 50", Cfg.InsightSampleRows)
	}
	if Cfg.AITimeout != 45*time.Second {
		t.Errorf("AI timeout default = %v, want 45s", Cfg.AITimeout)
	}
	if Cfg.MaxUploadSizeBytes != 10*1024*1024 {
		t.Errorf("upload size default = %d, want 10MB", Cfg.MaxUploadSizeBytes)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("AI_REQUEST_TIMEOUT", "10s")
	t.Setenv("AI_FORCE_MOCK", "true")
	t.Setenv("INSIGHT_SAMPLE_ROWS", "25")
	t.Setenv("STRICT_NORMALIZATION", "true")

	LoadConfig()

	if Cfg.AIProvider != "openai" {
		t.Errorf("AI provider = %q, want openai (lowercased)", Cfg.AIProvider)
	}
	if Cfg.AITimeout != 10*time.Second {
		t.Errorf("AI timeout = %v, want 10s", Cfg.AITimeout)
	}
	if !Cfg.AIForceMock {
		t.Error("force mock not applied")
	}
	if Cfg.InsightSampleRows != 25 {
		t.Errorf("insight sample rows = %d, want 25", Cfg.InsightSampleRows)
	}
	if !Cfg.StrictNormalization {
		t.Error("strict normalization not applied")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("bad int must fall back, got %d", got)
	}

	t.Setenv("TEST_BOOL", "yes")
	if got := getEnvAsBool("TEST_BOOL", false); got {
		t.Error("invalid bool must fall back to default")
	}

	t.Setenv("TEST_DUR", "90")
	if got := getEnvAsDuration("TEST_DUR", time.Second); got != time.Second {
		t.Errorf("unitless duration must fall back, got %v", got)
	}
}
