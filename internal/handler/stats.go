package handler

import (
	"errors"
	"net/http"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/stats"
	"github.com/vitrinecms/vitrine/internal/store"
)

// StatsHandler serves the site stats document and the page-view counter.
type StatsHandler struct {
	store   *store.Store
	tracker *stats.Tracker
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(st *store.Store, tracker *stats.Tracker) *StatsHandler {
	return &StatsHandler{store: st, tracker: tracker}
}

// Get returns the stats document. A site that has never written stats gets
// an empty object, not a 404, so the frontend needs no special case.
// GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.GetSingleton(r.Context(), model.CollectionStats)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, doc.Resource())
}

// viewRequest names the page being viewed.
type viewRequest struct {
	Page string `json:"page"`
}

// RecordView counts a page view. The count is folded into the stats document
// by the background tracker, so this endpoint never writes to the store.
// POST /api/v1/stats/view
func (h *StatsHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := readJSON(r, &req); err != nil || req.Page == "" {
		writeError(w, http.StatusBadRequest, "Page is required")
		return
	}
	h.tracker.Record(req.Page)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"success": true})
}

// Put replaces the operator-maintained stats fields. The view counters are
// server-owned and survive the replace.
// PUT /api/v1/admin/stats
func (h *StatsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := readJSON(r, &payload); err != nil || payload == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if doc, err := h.store.GetSingleton(r.Context(), model.CollectionStats); err == nil {
		existing := doc.Payload()
		if v, ok := existing["views"]; ok {
			payload["views"] = v
		}
		if v, ok := existing["total_views"]; ok {
			payload["total_views"] = v
		}
	}

	doc, err := h.store.UpsertSingleton(r.Context(), model.CollectionStats, payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update stats")
		return
	}
	writeJSON(w, http.StatusOK, doc.Resource())
}
