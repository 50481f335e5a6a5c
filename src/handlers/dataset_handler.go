// backend/src/handlers/dataset_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/username/saathi/backend/src/logger"
	"github.com/username/saathi/backend/src/normalizer"
	"github.com/username/saathi/backend/src/store"
	"github.com/username/saathi/backend/src/utils"

	"github.com/go-chi/chi/v5"
)

// HandleListDatasets returns saved dataset metadata, newest first.
func (h *DashboardHandler) HandleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.datasets.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list datasets", "error", err)
		utils.SendJSONError(w, "failed to list datasets", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"datasets": datasets})
}

// HandleLoadDataset replaces the session table with a saved dataset.
func (h *DashboardHandler) HandleLoadDataset(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)

	id := chi.URLParam(r, "id")
	ds, err := h.datasets.Get(r.Context(), id)
	if errors.Is(err, store.ErrDatasetNotFound) {
		utils.SendJSONError(w, "dataset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ctxLogger.Error("Failed to load dataset", "datasetID", id, "error", err)
		utils.SendJSONError(w, "failed to load dataset", http.StatusInternalServerError)
		return
	}

	txs, err := normalizer.LoadTransactionsFromCSV(ds.CSV, normalizer.Options{})
	if err != nil {
		ctxLogger.Error("Stored dataset failed to normalize", "datasetID", id, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("stored dataset is unreadable: %v", err), http.StatusInternalServerError)
		return
	}

	h.replaceData(sess, txs)
	ctxLogger.Info("Dataset loaded into session", "datasetID", id, "rows", len(txs), "sessionID", sess.ID)
	utils.WriteJSON(w, http.StatusOK, h.dataReply(sess))
}

// HandleDeleteDataset removes a saved dataset. Sessions already holding its
// rows are unaffected.
func (h *DashboardHandler) HandleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.datasets.Delete(r.Context(), id)
	if errors.Is(err, store.ErrDatasetNotFound) {
		utils.SendJSONError(w, "dataset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to delete dataset", "datasetID", id, "error", err)
		utils.SendJSONError(w, "failed to delete dataset", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
