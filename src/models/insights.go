// backend/src/models/insights.go
package models

// Insights is the structured commentary returned by an AI provider.
// Every field is optional; consumers treat absence as "no content",
// never as an error.
type Insights struct {
	ExecutiveSummaryEN string            `json:"executive_summary_en,omitempty"`
	ExecutiveSummaryHI string            `json:"executive_summary_hi,omitempty"`
	Recommendations    []string          `json:"recommendations,omitempty"`
	RecommendationsHI  []string          `json:"recommendations_hi,omitempty"`
	KPICommentary      map[string]string `json:"kpi_commentary,omitempty"`
	KPICommentaryHI    map[string]string `json:"kpi_commentary_hi,omitempty"`
	Risks              []string          `json:"risks,omitempty"`
	Opportunities      []string          `json:"opportunities,omitempty"`
}

// IsEmpty reports whether the provider returned no usable content at all.
func (i Insights) IsEmpty() bool {
	return i.ExecutiveSummaryEN == "" && i.ExecutiveSummaryHI == "" &&
		len(i.Recommendations) == 0 && len(i.RecommendationsHI) == 0 &&
		len(i.KPICommentary) == 0 && len(i.KPICommentaryHI) == 0 &&
		len(i.Risks) == 0 && len(i.Opportunities) == 0
}

// SampleRow is the reduced, human-relevant view of a transaction included
// in the payload sent to the AI provider.
type SampleRow struct {
	Day       string  `json:"day"`
	Product   string  `json:"product"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	Revenue   float64 `json:"revenue"`
}

// InsightPayload is the bounded-size exchange object serialized into the
// provider prompt: the KPI summary plus a capped sample of rows.
type InsightPayload struct {
	KPIs       KPISummary  `json:"kpis"`
	SampleRows []SampleRow `json:"sample_rows"`
}
