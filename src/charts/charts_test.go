// backend/src/charts/charts_test.go
package charts

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/username/saathi/backend/src/models"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	if len(data) == 0 {
		t.Fatal("empty image")
	}
	if !bytes.HasPrefix(data, pngSignature) {
		t.Fatalf("output is not a PNG, first bytes: %v", data[:min(8, len(data))])
	}
}

func chartTxs() []models.Transaction {
	return []models.Transaction{
		{Day: "2024-05-01", Product: "Milk 1L", Revenue: 120},
		{Day: "2024-05-02", Product: "Bread Loaf", Revenue: 80},
		{Day: "2024-05-03", Product: "Rice 1kg", Revenue: 200},
		{Day: "2024-05-03", Product: "Milk 1L", Revenue: 60},
	}
}

func TestTopProductsBar(t *testing.T) {
	assertPNG(t, TopProductsBar(chartTxs(), DefaultTopN))
}

func TestTopProductsBarTruncatesToTopN(t *testing.T) {
	assertPNG(t, TopProductsBar(chartTxs(), 2))
}

func TestDailyRevenueLine(t *testing.T) {
	assertPNG(t, DailyRevenueLine(chartTxs()))
}

func TestChartsDegradeToPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		txs  []models.Transaction
	}{
		{"no data", nil},
		{"all zero revenue", []models.Transaction{{Day: "2024-05-01", Product: "A", Revenue: 0}}},
		{"single day line", []models.Transaction{{Day: "2024-05-01", Product: "A", Revenue: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPNG(t, TopProductsBar(tt.txs, DefaultTopN))
			assertPNG(t, DailyRevenueLine(tt.txs))
		})
	}
}

func TestPlaceholderCarriesLabel(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(TopProductsBar(nil, DefaultTopN)))
	if err != nil {
		t.Fatalf("placeholder did not decode: %v", err)
	}

	// The centered label must leave at least one non-white pixel.
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				return
			}
		}
	}
	t.Error("placeholder is entirely white, expected a drawn label")
}
