// backend/src/models/kpi.go
package models

// KPISummary holds the summary statistics computed over a set of normalized
// transactions. Monetary values are rounded to 2 decimal places.
// TopProduct/TopCategory are nil when there is no data to rank.
type KPISummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	TopProduct    *string `json:"top_product"`
	TopCategory   *string `json:"top_category"`
}

// ProductRevenue is one bucket of the revenue-by-product grouping.
type ProductRevenue struct {
	Product string  `json:"product"`
	Revenue float64 `json:"revenue"`
}

// DailyRevenue is one bucket of the revenue-by-day grouping.
type DailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}
