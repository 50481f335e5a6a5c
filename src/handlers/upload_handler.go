// backend/src/handlers/upload_handler.go
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/username/saathi/backend/src/logger"
	"github.com/username/saathi/backend/src/normalizer"
	"github.com/username/saathi/backend/src/sampledata"
	"github.com/username/saathi/backend/src/store"
	"github.com/username/saathi/backend/src/utils"

	"github.com/go-chi/chi/v5"
)

// HandleUpload ingests a transaction CSV. A load failure leaves the
// session's previous table untouched.
func (h *DashboardHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to parse upload or file too large (max %d MB)", h.cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", h.cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		ctxLogger.Error("Failed to read uploaded file", "error", err)
		utils.SendJSONError(w, "failed to read uploaded file", http.StatusBadRequest)
		return
	}

	txs, err := normalizer.LoadTransactionsFromCSV(data, normalizer.Options{Strict: h.cfg.StrictNormalization})
	if err != nil {
		ctxLogger.Warn("CSV load failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("unable to read CSV: %v", err), http.StatusBadRequest)
		return
	}

	h.replaceData(sess, txs)
	ctxLogger.Info("Upload normalized", "filename", fileHeader.Filename, "rows", len(txs), "sessionID", sess.ID)

	if _, err := h.datasets.Save(r.Context(), &store.Dataset{
		Name:     fileHeader.Filename,
		Origin:   "upload",
		RowCount: len(txs),
		CSV:      normalizer.ExportCSV(txs),
	}); err != nil {
		// Persistence is best-effort; the session already holds the table.
		ctxLogger.Warn("Failed to persist uploaded dataset", "error", err)
	}

	utils.WriteJSON(w, http.StatusOK, h.dataReply(sess))
}

// HandleLoadSample loads one of the bundled demo scenarios.
func (h *DashboardHandler) HandleLoadSample(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)

	scenario := chi.URLParam(r, "scenario")
	path, err := sampledata.ScenarioPath(h.cfg.SampleDataDir, scenario)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		ctxLogger.Error("Sample data file missing", "scenario", scenario, "path", path, "error", err)
		utils.SendJSONError(w, "sample data not found; restart the server to regenerate it", http.StatusNotFound)
		return
	}

	txs, err := normalizer.LoadTransactionsFromCSV(data, normalizer.Options{})
	if err != nil {
		ctxLogger.Error("Sample data failed to normalize", "scenario", scenario, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("unable to read sample CSV: %v", err), http.StatusInternalServerError)
		return
	}

	h.replaceData(sess, txs)
	ctxLogger.Info("Sample scenario loaded", "scenario", scenario, "rows", len(txs), "sessionID", sess.ID)
	utils.WriteJSON(w, http.StatusOK, h.dataReply(sess))
}

// HandleClearData discards the session table, KPIs, and insights.
func (h *DashboardHandler) HandleClearData(w http.ResponseWriter, r *http.Request) {
	sess := h.resolveSession(w, r)
	h.replaceData(sess, nil)
	utils.WriteJSON(w, http.StatusOK, h.dataReply(sess))
}
