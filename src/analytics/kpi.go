// backend/src/analytics/kpi.go
package analytics

import (
	"math"
	"sort"

	"github.com/username/saathi/backend/src/models"
)

// ComputeKPIs reduces normalized transactions into the KPI summary. It is a
// pure function: deterministic for a given input multiset and invariant
// under row reordering. An empty input yields an all-zero summary with nil
// top product/category, never an error.
func ComputeKPIs(txs []models.Transaction) models.KPISummary {
	if len(txs) == 0 {
		return models.KPISummary{}
	}

	var totalRevenue float64
	for _, tx := range txs {
		totalRevenue += tx.Revenue
	}
	totalOrders := len(txs)
	avgOrderValue := totalRevenue / float64(totalOrders)

	summary := models.KPISummary{
		TotalRevenue:  round2(totalRevenue),
		TotalOrders:   totalOrders,
		AvgOrderValue: round2(avgOrderValue),
	}

	if products := RevenueByProduct(txs); len(products) > 0 {
		top := products[0].Product
		summary.TopProduct = &top
	}
	if categories := revenueByCategory(txs); len(categories) > 0 {
		top := categories[0].Product
		summary.TopCategory = &top
	}
	return summary
}

// RevenueByProduct groups revenue per product, sorted by revenue descending.
// Equal revenues rank the lexicographically smaller product name first, the
// documented stable tie-break.
func RevenueByProduct(txs []models.Transaction) []models.ProductRevenue {
	return groupRevenue(txs, func(tx models.Transaction) string { return tx.Product }, false)
}

// revenueByCategory is RevenueByProduct over the category key, excluding the
// missing-category bucket.
func revenueByCategory(txs []models.Transaction) []models.ProductRevenue {
	return groupRevenue(txs, func(tx models.Transaction) string { return tx.Category }, true)
}

// RevenueByDay groups revenue per derived day key, sorted ascending by day.
func RevenueByDay(txs []models.Transaction) []models.DailyRevenue {
	byDay := make(map[string]float64)
	for _, tx := range txs {
		byDay[tx.Day] += tx.Revenue
	}

	out := make([]models.DailyRevenue, 0, len(byDay))
	for day, rev := range byDay {
		out = append(out, models.DailyRevenue{Day: day, Revenue: round2(rev)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func groupRevenue(txs []models.Transaction, key func(models.Transaction) string, skipEmpty bool) []models.ProductRevenue {
	revenue := make(map[string]float64)
	for _, tx := range txs {
		k := key(tx)
		if skipEmpty && k == "" {
			continue
		}
		revenue[k] += tx.Revenue
	}

	out := make([]models.ProductRevenue, 0, len(revenue))
	for k, rev := range revenue {
		out = append(out, models.ProductRevenue{Product: k, Revenue: round2(rev)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Product < out[j].Product
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
