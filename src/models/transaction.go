// backend/src/models/transaction.go
package models

import "time"

// DayFormat is the date-only rendering used for the derived `day` key and
// for sample rows sent to the AI provider.
const DayFormat = "2006-01-02"

// Transaction is the canonical, fully-populated representation of a single
// point-of-sale record. The normalizer guarantees every field is set:
// missing or unparseable source data is resolved via defaults, never
// rejected.
type Transaction struct {
	Date          time.Time `json:"date"`
	Day           string    `json:"day"` // date-only key derived from Date
	Product       string    `json:"product"`
	Category      string    `json:"category,omitempty"` // empty string marks a missing category
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	Discount      float64   `json:"discount"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Revenue       float64   `json:"revenue"` // quantity*unit_price - discount
}
