// backend/src/handlers/insight_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/username/saathi/backend/src/ai"
	"github.com/username/saathi/backend/src/insight"
	"github.com/username/saathi/backend/src/logger"
	"github.com/username/saathi/backend/src/utils"
)

// HandleGenerateInsights runs the full payload -> prompt -> provider chain
// and caches the result on the session until the data changes.
func (h *DashboardHandler) HandleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sess := h.resolveSession(w, r)
	st := sess.Snapshot()

	if !h.ensureData(w, st) {
		return
	}

	if st.InsightsReady {
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"session_id": sess.ID,
			"cached":     true,
			"live":       h.provider.Available(),
			"insights":   st.Insights,
		})
		return
	}

	payloadJSON, err := insight.BuildPayloadJSON(st.Transactions, st.KPIs, h.cfg.InsightSampleRows)
	if err != nil {
		ctxLogger.Error("Failed to build insight payload", "error", err)
		utils.SendJSONError(w, "failed to build insight payload", http.StatusInternalServerError)
		return
	}
	prompt := insight.BuildInsightsPrompt(payloadJSON)

	insights, err := h.provider.GenerateBusinessInsights(r.Context(), prompt, float32(h.cfg.AITemperature))
	if err != nil {
		// Only possible with AI_REQUIRE_LIVE; otherwise providers
		// substitute mock output instead of erroring.
		ctxLogger.Error("Insight generation failed", "provider", h.provider.Name(), "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, ai.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		utils.SendJSONError(w, err.Error(), status)
		return
	}

	sess.SetInsights(insights)
	h.sessions.Put(sess)

	ctxLogger.Info("Insights generated", "provider", h.provider.Name(), "live", h.provider.Available(), "sessionID", sess.ID)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"cached":     false,
		"live":       h.provider.Available(),
		"insights":   insights,
	})
}

// HandleTranscribe accepts an audio file and returns its transcript. The
// reply flags whether a live backend produced it.
func (h *DashboardHandler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	h.resolveSession(w, r)

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes); err != nil {
		utils.SendJSONError(w, "failed to parse upload or file too large", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		utils.SendJSONError(w, "failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		ctxLogger.Error("Failed to read audio file", "error", err)
		utils.SendJSONError(w, "failed to read audio file", http.StatusBadRequest)
		return
	}

	transcript, live := h.provider.TranscribeAudio(r.Context(), audio, fileHeader.Filename)
	ctxLogger.Info("Audio transcribed", "provider", h.provider.Name(), "live", live, "bytes", len(audio))

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"transcript": transcript,
		"live":       live,
	})
}

// HandleAIStatus reports which provider is active and whether it runs live
// or in mock mode. Construction-time state only; no backend call is made.
func (h *DashboardHandler) HandleAIStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.provider.AvailabilityStatus())
}
