// backend/src/handlers/transaction_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/username/saathi/backend/src/analytics"
	"github.com/username/saathi/backend/src/logger"
	"github.com/username/saathi/backend/src/models"
	"github.com/username/saathi/backend/src/normalizer"
	"github.com/username/saathi/backend/src/session"
	"github.com/username/saathi/backend/src/utils"
)

// HandleGetTransactions returns the session's normalized table, optionally
// truncated via ?limit=N.
func (h *DashboardHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	st := sess.Snapshot()

	txs := st.Transactions
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			utils.SendJSONError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		if limit < len(txs) {
			txs = txs[:limit]
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"session_id":   sess.ID,
		"rows":         len(st.Transactions),
		"transactions": txs,
	})
}

// HandleGetKPIs returns the session's KPI summary.
func (h *DashboardHandler) HandleGetKPIs(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	utils.WriteJSON(w, http.StatusOK, h.dataReply(sess))
}

// HandleGetBreakdowns returns revenue grouped by product and by day,
// the series behind the dashboard charts.
func (h *DashboardHandler) HandleGetBreakdowns(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	st := sess.Snapshot()
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"by_product": analytics.RevenueByProduct(st.Transactions),
		"by_day":     analytics.RevenueByDay(st.Transactions),
	})
}

// manualEntry is a single hand-keyed sale. It is routed through the same
// normalizer as CSV input so coercion and defaulting behave identically.
type manualEntry struct {
	Date          string `json:"date"`
	Product       string `json:"product"`
	Category      string `json:"category"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Discount      string `json:"discount"`
	PaymentMethod string `json:"payment_method"`
}

// HandleAddTransaction appends one manual entry to the session table.
func (h *DashboardHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)

	var entry manualEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.SendJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	header := []string{"date", "product", "category", "quantity", "unit_price", "discount", "payment_method"}
	row := []string{entry.Date, entry.Product, entry.Category, entry.Quantity, entry.UnitPrice, entry.Discount, entry.PaymentMethod}

	txs, err := normalizer.NormalizeWithOptions(header, [][]string{row}, normalizer.Options{Strict: h.cfg.StrictNormalization})
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(txs) != 1 {
		utils.SendJSONError(w, "entry produced no transaction", http.StatusBadRequest)
		return
	}

	// Build a fresh slice so concurrent readers of the old snapshot never
	// share a backing array with the appended row.
	st := sess.Snapshot()
	table := make([]models.Transaction, 0, len(st.Transactions)+1)
	table = append(table, st.Transactions...)
	table = append(table, txs[0])

	h.replaceData(sess, table)
	ctxLogger.Info("Manual entry added", "product", txs[0].Product, "rows", len(table), "sessionID", sess.ID)
	utils.WriteJSON(w, http.StatusOK, h.dataReply(sess))
}

// ensureData guards handlers that need a non-empty table. It writes a 409
// and returns false when the snapshot has no data.
func (h *DashboardHandler) ensureData(w http.ResponseWriter, st session.State) bool {
	if len(st.Transactions) == 0 {
		utils.SendJSONError(w, "no data loaded; upload a CSV or load a sample first", http.StatusConflict)
		return false
	}
	return true
}
