// backend/src/normalizer/normalizer_test.go
package normalizer

import (
	"testing"
	"time"

	"github.com/username/saathi/backend/src/models"
)

func TestNormalizeAliasBinding(t *testing.T) {
	header := []string{"Order_Date", "Item", "Qty", "Price", "Disc", "Cat", "Payment"}
	rows := [][]string{
		{"2024-05-01", "Milk 1L", "4", "30", "20", "Dairy", "UPI"},
	}

	txs := Normalize(header, rows)
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}

	tx := txs[0]
	if tx.Product != "Milk 1L" {
		t.Errorf("product = %q, want %q", tx.Product, "Milk 1L")
	}
	if tx.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", tx.Quantity)
	}
	if tx.UnitPrice != 30 {
		t.Errorf("unit_price = %v, want 30", tx.UnitPrice)
	}
	if tx.Revenue != 100.0 {
		t.Errorf("revenue = %v, want 100.0 (4*30-20)", tx.Revenue)
	}
	if tx.Category != "Dairy" {
		t.Errorf("category = %q, want Dairy", tx.Category)
	}
	if tx.PaymentMethod != "UPI" {
		t.Errorf("payment_method = %q, want UPI", tx.PaymentMethod)
	}
	if tx.Day != "2024-05-01" {
		t.Errorf("day = %q, want 2024-05-01", tx.Day)
	}
}

func TestNormalizeFirstAliasWins(t *testing.T) {
	// Both "product" and "sku" are present; "product" is earlier in the
	// alias list and must win regardless of column order.
	header := []string{"sku", "product", "qty", "price"}
	rows := [][]string{{"SKU-1", "Bread Loaf", "1", "25"}}

	txs := Normalize(header, rows)
	if txs[0].Product != "Bread Loaf" {
		t.Errorf("product = %q, want Bread Loaf (first alias must win)", txs[0].Product)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	today := todayMidnight()

	tests := []struct {
		name   string
		header []string
		row    []string
		check  func(t *testing.T, tx models.Transaction)
	}{
		{
			name:   "missing date column defaults to today",
			header: []string{"product", "qty", "price"},
			row:    []string{"Tea", "2", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if !tx.Date.Equal(today) {
					t.Errorf("date = %v, want %v", tx.Date, today)
				}
			},
		},
		{
			name:   "unparseable date defaults to today",
			header: []string{"date", "product", "qty", "price"},
			row:    []string{"not-a-date", "Tea", "2", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if !tx.Date.Equal(today) {
					t.Errorf("date = %v, want %v", tx.Date, today)
				}
			},
		},
		{
			name:   "empty product defaults to Unknown",
			header: []string{"product", "qty", "price"},
			row:    []string{"", "2", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if tx.Product != "Unknown" {
					t.Errorf("product = %q, want Unknown", tx.Product)
				}
			},
		},
		{
			name:   "missing quantity column defaults to 1",
			header: []string{"product", "price"},
			row:    []string{"Tea", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if tx.Quantity != 1 {
					t.Errorf("quantity = %d, want 1", tx.Quantity)
				}
				if tx.Revenue != 10 {
					t.Errorf("revenue = %v, want 10", tx.Revenue)
				}
			},
		},
		{
			name:   "unparseable quantity coerces to 0",
			header: []string{"product", "qty", "price"},
			row:    []string{"Tea", "abc", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if tx.Quantity != 0 {
					t.Errorf("quantity = %d, want 0", tx.Quantity)
				}
				if tx.Revenue != 0 {
					t.Errorf("revenue = %v, want 0", tx.Revenue)
				}
			},
		},
		{
			name:   "float-shaped quantity truncates",
			header: []string{"product", "qty", "price"},
			row:    []string{"Tea", "2.9", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if tx.Quantity != 2 {
					t.Errorf("quantity = %d, want 2", tx.Quantity)
				}
			},
		},
		{
			name:   "missing price and discount default to 0",
			header: []string{"product", "qty"},
			row:    []string{"Tea", "3"},
			check: func(t *testing.T, tx models.Transaction) {
				if tx.UnitPrice != 0 || tx.Discount != 0 || tx.Revenue != 0 {
					t.Errorf("price/discount/revenue = %v/%v/%v, want zeros", tx.UnitPrice, tx.Discount, tx.Revenue)
				}
			},
		},
		{
			name:   "missing category stays empty marker",
			header: []string{"product", "qty", "price"},
			row:    []string{"Tea", "1", "10"},
			check: func(t *testing.T, tx models.Transaction) {
				if tx.Category != "" {
					t.Errorf("category = %q, want empty", tx.Category)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := Normalize(tt.header, [][]string{tt.row})
			if len(txs) != 1 {
				t.Fatalf("expected 1 transaction, got %d", len(txs))
			}
			tt.check(t, txs[0])
		})
	}
}

func TestNormalizeStrictMode(t *testing.T) {
	header := []string{"date", "product", "qty", "price"}

	tests := []struct {
		name    string
		row     []string
		wantErr bool
	}{
		{"clean row passes", []string{"2024-05-01", "Tea", "2", "10"}, false},
		{"bad date rejected", []string{"yesterday", "Tea", "2", "10"}, true},
		{"bad quantity rejected", []string{"2024-05-01", "Tea", "two", "10"}, true},
		{"bad price rejected", []string{"2024-05-01", "Tea", "2", "cheap"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeWithOptions(header, [][]string{tt.row}, Options{Strict: true})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeDateLayouts(t *testing.T) {
	header := []string{"date", "product", "qty", "price"}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2024-03-15", "15-03-2024", "15/03/2024", "2024/03/15", "Mar 15, 2024"} {
		t.Run(raw, func(t *testing.T) {
			txs := Normalize(header, [][]string{{raw, "Tea", "1", "10"}})
			if !txs[0].Date.Equal(want) {
				t.Errorf("date = %v, want %v", txs[0].Date, want)
			}
			if txs[0].Day != "2024-03-15" {
				t.Errorf("day = %q, want 2024-03-15", txs[0].Day)
			}
		})
	}
}

func TestNormalizeDateKeepsWallClockInUTC(t *testing.T) {
	header := []string{"date", "product", "qty", "price"}

	// An offset timestamp keeps its written digits; only the zone moves to UTC.
	txs := Normalize(header, [][]string{{"2024-01-01T10:00:00+05:30", "Tea", "1", "10"}})
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !txs[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", txs[0].Date, want)
	}
	if txs[0].Day != "2024-01-01" {
		t.Errorf("day = %q, want 2024-01-01", txs[0].Day)
	}
}

func TestNormalizeHeaderCanonicalization(t *testing.T) {
	// BOM, case, and embedded spaces must not break binding.
	header := []string{"\ufeffDate", "Product Name", "Unit Price", "qty"}
	rows := [][]string{{"2024-05-01", "Tea", "12.5", "2"}}

	txs := Normalize(header, rows)
	tx := txs[0]
	if tx.Product != "Tea" {
		t.Errorf("product = %q, want Tea", tx.Product)
	}
	if tx.UnitPrice != 12.5 {
		t.Errorf("unit_price = %v, want 12.5", tx.UnitPrice)
	}
	if tx.Day != "2024-05-01" {
		t.Errorf("day = %q, want 2024-05-01", tx.Day)
	}
}

func TestNormalizeEmptyTable(t *testing.T) {
	txs := Normalize([]string{"product", "qty", "price"}, nil)
	if len(txs) != 0 {
		t.Errorf("expected empty result, got %d rows", len(txs))
	}
}
