// backend/src/handlers/export_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/username/saathi/backend/src/charts"
	"github.com/username/saathi/backend/src/logger"
	"github.com/username/saathi/backend/src/normalizer"
	"github.com/username/saathi/backend/src/report"
	"github.com/username/saathi/backend/src/utils"
)

// HandleExportCSV streams the normalized table back as a CSV download.
// The output round-trips: re-uploading it reproduces the same table.
func (h *DashboardHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	st := sess.Snapshot()
	if !h.ensureData(w, st) {
		return
	}

	sendAttachment(w, "text/csv", exportName("csv"), normalizer.ExportCSV(st.Transactions))
}

// HandleExportXLSX streams the normalized table as an Excel workbook.
func (h *DashboardHandler) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)
	st := sess.Snapshot()
	if !h.ensureData(w, st) {
		return
	}

	data, err := report.BuildXLSX(st.Transactions)
	if err != nil {
		ctxLogger.Error("XLSX export failed", "error", err)
		utils.SendJSONError(w, "failed to build XLSX export", http.StatusInternalServerError)
		return
	}
	sendAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", exportName("xlsx"), data)
}

// HandleExportPDF builds the executive report: KPI table, charts, and the
// session's insights when present.
func (h *DashboardHandler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)
	st := sess.Snapshot()
	if !h.ensureData(w, st) {
		return
	}

	data, err := report.BuildPDF(report.Data{
		KPIs:            st.KPIs,
		TopProductsPNG:  charts.TopProductsBar(st.Transactions, charts.DefaultTopN),
		DailyRevenuePNG: charts.DailyRevenueLine(st.Transactions),
		Insights:        st.Insights,
	})
	if err != nil {
		ctxLogger.Error("PDF export failed", "error", err)
		utils.SendJSONError(w, "failed to build PDF report", http.StatusInternalServerError)
		return
	}
	sendAttachment(w, "application/pdf", exportName("pdf"), data)
}

// HandleTopProductsChart renders the top-products bar chart as PNG.
func (h *DashboardHandler) HandleTopProductsChart(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	sendPNG(w, charts.TopProductsBar(sess.Snapshot().Transactions, charts.DefaultTopN))
}

// HandleDailyRevenueChart renders the daily-revenue line chart as PNG.
func (h *DashboardHandler) HandleDailyRevenueChart(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	sendPNG(w, charts.DailyRevenueLine(sess.Snapshot().Transactions))
}

func exportName(ext string) string {
	return fmt.Sprintf("saathi_report_%s.%s", time.Now().Format("20060102_150405"), ext)
}

func sendAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func sendPNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
