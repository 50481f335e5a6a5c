// backend/src/handlers/handler.go
package handlers

import (
	"net/http"

	"github.com/username/saathi/backend/src/ai"
	"github.com/username/saathi/backend/src/analytics"
	"github.com/username/saathi/backend/src/config"
	"github.com/username/saathi/backend/src/models"
	"github.com/username/saathi/backend/src/session"
	"github.com/username/saathi/backend/src/store"
)

// SessionHeader carries the dashboard session id. A new session is minted
// when the header is absent; the id is echoed back on every response.
const SessionHeader = "X-Session-ID"

// DashboardHandler owns the per-session state and wires the core pipeline
// (normalize -> aggregate -> payload -> provider) to the HTTP surface.
type DashboardHandler struct {
	sessions *session.Store
	datasets *store.DatasetStore
	provider ai.Provider
	cfg      *config.AppConfig
}

func NewDashboardHandler(sessions *session.Store, datasets *store.DatasetStore, provider ai.Provider, cfg *config.AppConfig) *DashboardHandler {
	return &DashboardHandler{
		sessions: sessions,
		datasets: datasets,
		provider: provider,
		cfg:      cfg,
	}
}

// resolveSession fetches (or mints) the caller's session and echoes its id.
func (h *DashboardHandler) resolveSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := h.sessions.GetOrCreate(r.Header.Get(SessionHeader))
	w.Header().Set(SessionHeader, sess.ID)
	return sess
}

// replaceData swaps the session table, recomputes KPIs, and invalidates any
// previously generated insights. KPIs are recomputed fresh on every data
// change, never patched incrementally.
func (h *DashboardHandler) replaceData(sess *session.Session, txs []models.Transaction) {
	sess.SetData(txs, analytics.ComputeKPIs(txs))
	h.sessions.Put(sess)
}

// dataResponse is the common reply after any data mutation.
type dataResponse struct {
	SessionID string            `json:"session_id"`
	Rows      int               `json:"rows"`
	KPIs      models.KPISummary `json:"kpis"`
}

func (h *DashboardHandler) dataReply(sess *session.Session) dataResponse {
	st := sess.Snapshot()
	return dataResponse{SessionID: sess.ID, Rows: len(st.Transactions), KPIs: st.KPIs}
}
