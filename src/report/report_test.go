// backend/src/report/report_test.go
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/username/saathi/backend/src/ai"
	"github.com/username/saathi/backend/src/charts"
	"github.com/username/saathi/backend/src/models"
)

func reportTxs() []models.Transaction {
	return []models.Transaction{
		{Day: "2024-05-01", Product: "Milk 1L", Category: "Dairy", Quantity: 4, UnitPrice: 30, Revenue: 120, PaymentMethod: "UPI"},
		{Day: "2024-05-02", Product: "Bread Loaf", Category: "Food", Quantity: 2, UnitPrice: 25, Revenue: 50, PaymentMethod: "Cash"},
	}
}

func TestBuildPDF(t *testing.T) {
	top := "Milk 1L"
	data := Data{
		KPIs: models.KPISummary{
			TotalRevenue:  170,
			TotalOrders:   2,
			AvgOrderValue: 85,
			TopProduct:    &top,
		},
		TopProductsPNG:  charts.TopProductsBar(reportTxs(), charts.DefaultTopN),
		DailyRevenuePNG: charts.DailyRevenueLine(reportTxs()),
		Insights:        ai.MockInsights(),
	}

	pdf, err := BuildPDF(data)
	if err != nil {
		t.Fatalf("BuildPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF, first bytes: %q", pdf[:min(8, len(pdf))])
	}
}

func TestBuildPDFWithoutInsightsOrCharts(t *testing.T) {
	// Exports must work before any insight generation and with no charts.
	pdf, err := BuildPDF(Data{KPIs: models.KPISummary{TotalOrders: 1}})
	if err != nil {
		t.Fatalf("BuildPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestBuildXLSX(t *testing.T) {
	out, err := BuildXLSX(reportTxs())
	if err != nil {
		t.Fatalf("BuildXLSX failed: %v", err)
	}
	// XLSX is a zip container.
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Errorf("output is not a zip, first bytes: %q", out[:min(4, len(out))])
	}
}

func TestBuildXLSXEmptyTable(t *testing.T) {
	out, err := BuildXLSX(nil)
	if err != nil {
		t.Fatalf("BuildXLSX failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Error("output is not a zip")
	}
}

func TestOrDash(t *testing.T) {
	if orDash(nil) != "-" {
		t.Error("nil must render as dash")
	}
	empty := ""
	if orDash(&empty) != "-" {
		t.Error("empty must render as dash")
	}
	v := "Milk"
	if got := orDash(&v); !strings.EqualFold(got, "Milk") {
		t.Errorf("orDash = %q", got)
	}
}
