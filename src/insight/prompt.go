// backend/src/insight/prompt.go
package insight

const schemaNote = "Return STRICT JSON with keys: executive_summary_en, executive_summary_hi, " +
	"recommendations (array of strings), recommendations_hi (array of strings), " +
	"kpi_commentary (object), kpi_commentary_hi (object), risks (array), opportunities (array)."

// BuildInsightsPrompt wraps the serialized data payload in a compact
// instruction asking the provider for strict JSON insights.
func BuildInsightsPrompt(dataJSON string) string {
	return "You are an expert retail analyst. Analyze the following JSON data and provide actionable, concise insights. " +
		"Use an upbeat but professional tone. " + schemaNote + "\n\nDATA:\n" + dataJSON
}
