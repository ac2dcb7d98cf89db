// Package dashboard exposes the orchestrator's operations over HTTP.
// The handlers hold no state of their own; every semantic lives in the
// core and the presentation layer only reads snapshots.
package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	core "finsight/pkg/core/dashboard"
	"finsight/pkg/core/logger"
	"finsight/pkg/core/profile"
	"finsight/pkg/core/render"
)

// Handler provides HTTP handlers for the dashboard API.
type Handler struct {
	orch *core.Orchestrator
}

func NewHandler(orch *core.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Register wires all routes onto the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", h.HandleState)
	mux.HandleFunc("/api/profile", h.HandleProfile)
	mux.HandleFunc("/api/analyze", h.HandleAnalyze)
	mux.HandleFunc("/api/chat", h.HandleChat)
	mux.HandleFunc("/api/history", h.HandleHistory)
	mux.HandleFunc("/api/history/select", h.HandleHistorySelect)
	mux.HandleFunc("/api/report/advice", h.HandleAdvice)
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().Error("response encode failed", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// HandleState returns the current read-only snapshot.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

// HandleProfile saves the profile wholesale.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var p profile.FinancialProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.orch.SaveProfile(r.Context(), &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

// HandleAnalyze runs one analysis round-trip and returns the resulting
// snapshot. Gating and error classification happen in the core.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	err := h.orch.Analyze(r.Context())
	switch {
	case errors.Is(err, core.ErrAnalysisInFlight):
		writeError(w, http.StatusConflict, err)
		return
	case errors.Is(err, core.ErrProfileIncomplete):
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// Gateway and normalization failures are reflected in the snapshot
	// state, not as HTTP errors: the client renders the retry affordance.
	writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat submits one chat message.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orch.SendChat(r.Context(), req.Message); errors.Is(err, core.ErrChatInFlight) {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

// HandleHistory lists recorded analyses, newest first.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.orch.History())
}

type historySelectRequest struct {
	ID string `json:"id"`
}

// HandleHistorySelect restores a past snapshot as the active state.
func (h *Handler) HandleHistorySelect(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req historySelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.orch.SelectHistory(req.ID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

type adviceResponse struct {
	HTML    string `json:"html"`
	Summary string `json:"summary"`
}

// HandleAdvice renders the active report's advice for display.
func (h *Handler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.orch.Snapshot()
	if snap.Report == nil {
		writeError(w, http.StatusNotFound, errors.New("no active report"))
		return
	}

	html, err := render.AdviceHTML(snap.Report.Advice)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{
		HTML:    html,
		Summary: render.PlainText(snap.Report.Advice),
	})
}
