// backend/src/normalizer/csv.go
package normalizer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/username/saathi/backend/src/models"
)

// ErrEmptyInput is returned when the uploaded bytes contain no header row.
var ErrEmptyInput = errors.New("normalizer: empty CSV input")

const exportDateLayout = "2006-01-02 15:04:05"

// exportColumns is the fixed column order of the normalized table when
// re-serialized to CSV or XLSX.
var exportColumns = []string{
	"date", "day", "product", "category", "quantity",
	"unit_price", "discount", "revenue", "payment_method",
}

// LoadTransactionsFromCSV parses raw CSV bytes and normalizes them onto the
// canonical schema. Input is decoded as UTF-8 with one Latin-1 re-attempt;
// bytes unreadable as CSV under both are a load failure and leave caller
// state untouched.
func LoadTransactionsFromCSV(data []byte, opts Options) ([]models.Transaction, error) {
	if !utf8.Valid(data) {
		data = decodeLatin1(data)
	}

	header, rows, err := readCSV(data)
	if err != nil {
		return nil, fmt.Errorf("normalizer: unable to read CSV: %w", err)
	}
	return NormalizeWithOptions(header, rows, opts)
}

// ExportCSV re-serializes a normalized table: comma-separated, header row,
// no index column. Normalizing the output yields the same table back.
func ExportCSV(txs []models.Transaction) []byte {
	header, rows := ExportRows(txs)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	return buf.Bytes()
}

// ExportRows returns the header plus stringified rows in export order,
// shared by the CSV and XLSX exporters.
func ExportRows(txs []models.Transaction) ([]string, [][]string) {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.Format(exportDateLayout),
			tx.Day,
			tx.Product,
			tx.Category,
			strconv.Itoa(tx.Quantity),
			formatFloat(tx.UnitPrice),
			formatFloat(tx.Discount),
			formatFloat(tx.Revenue),
			tx.PaymentMethod,
		})
	}
	header := make([]string, len(exportColumns))
	copy(header, exportColumns)
	return header, rows
}

func readCSV(data []byte) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	if delim := sniffDelimiter(data); delim != 0 {
		reader.Comma = delim
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyInput
	}
	return records[0], records[1:], nil
}

// sniffDelimiter checks the header line for semicolon-delimited exports
// (common in spreadsheet locales that reserve the comma for decimals).
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx != -1 {
		line = data[:idx]
	}
	if !bytes.ContainsRune(line, ',') && bytes.ContainsRune(line, ';') {
		return ';'
	}
	return 0
}

// decodeLatin1 maps each byte to its equivalent code point, the platform
// re-attempt for uploads that are not valid UTF-8.
func decodeLatin1(data []byte) []byte {
	out := make([]rune, len(data))
	for i, b := range data {
		out[i] = rune(b)
	}
	return []byte(string(out))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
