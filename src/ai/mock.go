// backend/src/ai/mock.go
package ai

import (
	"context"

	"github.com/username/saathi/backend/src/models"
)

// MockInsights returns the canned, deterministic insights object used
// whenever no live backend is reachable.
func MockInsights() models.Insights {
	return models.Insights{
		ExecutiveSummaryEN: "Sales are steady with strong contribution from top SKUs. Focus on upselling " +
			"high-margin items and running weekday promos to boost footfall.",
		ExecutiveSummaryHI: "बिक्री स्थिर है और शीर्ष उत्पाद अच्छा योगदान दे रहे हैं। उच्च मार्जिन आइटम्स की " +
			"अपसेलिंग और सप्ताह के दिनों में प्रमोशन चलाकर फुटफॉल बढ़ाएँ।",
		Recommendations: []string{
			"Introduce a mid-week combo offer on top 3 products to lift basket size",
			"Push low-moving inventory with 10% discount to free up cash flow",
			"Set reorder alerts for fast-moving SKUs to avoid stockouts",
		},
		KPICommentary: map[string]string{
			"total_revenue":   "Healthy weekly trend with mild weekend spike",
			"avg_order_value": "Scope to increase via bundles and cross-sell",
		},
	}
}

// MockTranscript returns the canned transcript substituted when audio
// transcription has no live backend.
func MockTranscript() string {
	return "Today footfall was moderate. Snacks and beverages performed well. Consider a 5% weekday " +
		"discount and bundle chips with soft drinks to increase average order value."
}

// MockProvider returns canned output without any network call. It is also
// the terminal fallback the dashboard shell adopts when auto selection
// fails but a hard startup failure is not wanted.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Name() string    { return ProviderMock }
func (p *MockProvider) Available() bool { return false }

func (p *MockProvider) GenerateBusinessInsights(_ context.Context, _ string, _ float32) (models.Insights, error) {
	return MockInsights(), nil
}

func (p *MockProvider) TranscribeAudio(_ context.Context, _ []byte, _ string) (string, bool) {
	return MockTranscript(), false
}

func (p *MockProvider) AvailabilityStatus() Status {
	return Status{Provider: ProviderMock, UsingMock: true}
}
