// backend/src/normalizer/normalizer.go
package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/saathi/backend/src/models"
)

// RequiredColumns are the canonical fields every normalized table must carry.
var RequiredColumns = []string{"date", "product", "quantity", "unit_price"}

// OptionalColumns are canonical fields that may be absent in source data and
// are filled with an empty/zero marker.
var OptionalColumns = []string{"category", "payment_method", "discount"}

// aliasMap binds each canonical field to its ordered list of accepted source
// column names. The first alias present in the input wins; later matches are
// silently discarded.
var aliasMap = map[string][]string{
	"date":           {"date", "order_date", "txn_date", "timestamp"},
	"product":        {"product", "sku", "item", "product_name"},
	"quantity":       {"quantity", "qty", "units", "count"},
	"unit_price":     {"unit_price", "price", "selling_price", "unitprice"},
	"discount":       {"discount", "discount_amount", "disc"},
	"category":       {"category", "cat"},
	"payment_method": {"payment_method", "payment", "pay_method", "paymenttype"},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

// Options control how malformed cells are treated.
type Options struct {
	// Strict reports coercion failures instead of silently applying
	// defaults. Default behavior (false) favors availability: bad cells
	// degrade to the canonical default and never block the pipeline.
	Strict bool
}

// Normalize maps an arbitrary header/row table onto the canonical
// transaction schema, applying defaults for absent columns and coercing
// cell values. It never fails: malformed data degrades to defaults.
func Normalize(header []string, rows [][]string) []models.Transaction {
	txs, _ := NormalizeWithOptions(header, rows, Options{})
	return txs
}

// NormalizeWithOptions is Normalize with strict-mode support. In strict
// mode the first unparseable cell aborts normalization with a descriptive
// error; otherwise the returned error is always nil.
func NormalizeWithOptions(header []string, rows [][]string, opts Options) ([]models.Transaction, error) {
	bindings := bindColumns(header)
	today := todayMidnight()

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := normalizeRow(row, bindings, today, opts.Strict)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// bindColumns canonicalizes header names and resolves each canonical field
// to the index of its first matching alias, or -1 when absent.
func bindColumns(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[canonicalizeHeader(name)] = i
	}

	bindings := make(map[string]int, len(aliasMap))
	for target, aliases := range aliasMap {
		bindings[target] = -1
		for _, alias := range aliases {
			if pos, ok := index[alias]; ok {
				bindings[target] = pos
				break
			}
		}
	}
	return bindings
}

func canonicalizeHeader(name string) string {
	s := strings.TrimPrefix(name, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

func normalizeRow(row []string, bindings map[string]int, today time.Time, strict bool) (models.Transaction, error) {
	cell := func(field string) (string, bool) {
		pos := bindings[field]
		if pos < 0 || pos >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[pos]), true
	}

	var tx models.Transaction

	if raw, ok := cell("date"); ok {
		d, err := parseDate(raw)
		if err != nil {
			if strict {
				return tx, fmt.Errorf("unparseable date %q", raw)
			}
			d = today
		}
		tx.Date = d
	} else {
		tx.Date = today
	}

	if raw, ok := cell("product"); ok && raw != "" {
		tx.Product = raw
	} else {
		tx.Product = "Unknown"
	}

	if raw, ok := cell("quantity"); ok {
		q, err := parseQuantity(raw)
		if err != nil {
			if strict {
				return tx, fmt.Errorf("unparseable quantity %q", raw)
			}
			q = 0
		}
		tx.Quantity = q
	} else {
		tx.Quantity = 1
	}

	for field, dst := range map[string]*float64{"unit_price": &tx.UnitPrice, "discount": &tx.Discount} {
		raw, ok := cell(field)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if strict {
				return tx, fmt.Errorf("unparseable %s %q", field, raw)
			}
			v = 0
		}
		*dst = v
	}

	tx.Category, _ = cell("category")
	tx.PaymentMethod, _ = cell("payment_method")

	tx.Revenue = float64(tx.Quantity)*tx.UnitPrice - tx.Discount
	tx.Day = tx.Date.Format(models.DayFormat)
	return tx, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return toWallUTC(d), nil
		}
	}
	return time.Time{}, fmt.Errorf("no matching date layout for %q", raw)
}

// toWallUTC keeps the wall-clock digits of d but re-homes them in UTC and
// drops sub-second precision. The calendar day stays the one the source
// wrote, and a normalized date survives an export/reload cycle unchanged.
func toWallUTC(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), 0, time.UTC)
}

// parseQuantity accepts plain integers as well as float-shaped values like
// "2.0", which truncate the way the source system coerced them.
func parseQuantity(raw string) (int, error) {
	if q, err := strconv.Atoi(raw); err == nil {
		return q, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func todayMidnight() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
