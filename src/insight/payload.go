// backend/src/insight/payload.go
package insight

import (
	"encoding/json"
	"fmt"

	"github.com/username/saathi/backend/src/models"
)

// DefaultSampleRows caps how many rows are included in the provider payload
// regardless of total transaction volume.
const DefaultSampleRows = 50

// BuildPayload reduces the normalized table and its KPI summary into the
// bounded exchange object sent to the AI provider. maxRows <= 0 falls back
// to DefaultSampleRows.
func BuildPayload(txs []models.Transaction, kpis models.KPISummary, maxRows int) models.InsightPayload {
	if maxRows <= 0 {
		maxRows = DefaultSampleRows
	}
	if len(txs) < maxRows {
		maxRows = len(txs)
	}

	sample := make([]models.SampleRow, 0, maxRows)
	for _, tx := range txs[:maxRows] {
		sample = append(sample, models.SampleRow{
			Day:       tx.Day,
			Product:   tx.Product,
			Category:  tx.Category,
			Quantity:  tx.Quantity,
			UnitPrice: tx.UnitPrice,
			Discount:  tx.Discount,
			Revenue:   tx.Revenue,
		})
	}
	return models.InsightPayload{KPIs: kpis, SampleRows: sample}
}

// BuildPayloadJSON serializes the payload compactly for prompt embedding.
func BuildPayloadJSON(txs []models.Transaction, kpis models.KPISummary, maxRows int) (string, error) {
	b, err := json.Marshal(BuildPayload(txs, kpis, maxRows))
	if err != nil {
		return "", fmt.Errorf("insight: marshal payload: %w", err)
	}
	return string(b), nil
}
