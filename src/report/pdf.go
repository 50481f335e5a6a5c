// backend/src/report/pdf.go
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/username/saathi/backend/src/models"
)

// Data is everything the report assembler needs from the core pipeline:
// the KPI summary, pre-rendered chart image bytes, and the insights object.
type Data struct {
	KPIs            models.KPISummary
	TopProductsPNG  []byte
	DailyRevenuePNG []byte
	Insights        models.Insights
}

// BuildPDF lays out the fixed executive report: title, KPI table, the two
// charts, and the insight text sections. Assembly failure is surfaced as an
// error and touches no other state.
func BuildPDF(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "AI Business Saathi - Executive Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading(pdf, "Key Performance Indicators")
	pdf.SetFont("Helvetica", "", 10)
	kpiRows := [][2]string{
		{"Total Revenue", fmt.Sprintf("Rs %.2f", d.KPIs.TotalRevenue)},
		{"Total Orders", fmt.Sprintf("%d", d.KPIs.TotalOrders)},
		{"Avg Order Value", fmt.Sprintf("Rs %.2f", d.KPIs.AvgOrderValue)},
		{"Top Product", orDash(d.KPIs.TopProduct)},
		{"Top Category", orDash(d.KPIs.TopCategory)},
	}
	for _, row := range kpiRows {
		pdf.CellFormat(80, 8, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if err := embedPNG(pdf, "top_products", d.TopProductsPNG, "Top Products"); err != nil {
		return nil, err
	}
	if len(d.DailyRevenuePNG) > 0 {
		if err := embedPNG(pdf, "daily_revenue", d.DailyRevenuePNG, "Revenue Trend"); err != nil {
			return nil, err
		}
	}

	heading(pdf, "Executive Summary (EN)")
	paragraph(pdf, tr, d.Insights.ExecutiveSummaryEN)
	heading(pdf, "Executive Summary (HI)")
	paragraph(pdf, tr, d.Insights.ExecutiveSummaryHI)

	if len(d.Insights.Recommendations) > 0 {
		heading(pdf, "Top Recommendations")
		recos := d.Insights.Recommendations
		if len(recos) > 3 {
			recos = recos[:3]
		}
		for i, r := range recos {
			paragraph(pdf, tr, fmt.Sprintf("%d. %s", i+1, r))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: pdf assembly: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, text, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func paragraph(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	if text == "" {
		text = "-"
	}
	pdf.MultiCell(0, 5, tr(text), "", "L", false)
	pdf.Ln(2)
}

func embedPNG(pdf *fpdf.Fpdf, name string, data []byte, title string) error {
	if len(data) == 0 {
		return nil
	}
	heading(pdf, title)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	pdf.ImageOptions(name, 18, pdf.GetY(), 160, 0, true, opts, 0, "")
	pdf.Ln(4)
	if pdf.Err() {
		return fmt.Errorf("report: embed image %s: %v", name, pdf.Error())
	}
	return nil
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
