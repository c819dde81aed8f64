package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vitrinecms/vitrine/internal/model"
	"github.com/vitrinecms/vitrine/internal/store"
)

// ContentHandler serves CRUD over the content collections: public reads for
// the site pages, gate-guarded mutations for the admin area.
type ContentHandler struct {
	store *store.Store
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(st *store.Store) *ContentHandler {
	return &ContentHandler{store: st}
}

// collection resolves and validates the {collection} route parameter.
// public restricts the lookup to publicly readable collections.
func collection(r *http.Request, public bool) (string, bool) {
	name := chi.URLParam(r, "collection")
	if public {
		return name, model.IsPublicCollection(name)
	}
	return name, model.IsCollection(name)
}

// List returns documents in a collection, newest first, paginated.
// GET /api/v1/{collection}
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ListAdmin is List for the admin area; it additionally covers operator-only
// collections such as messages.
// GET /api/v1/admin/{collection}
func (h *ContentHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *ContentHandler) list(w http.ResponseWriter, r *http.Request, public bool) {
	name, ok := collection(r, public)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	limit := clampInt(queryInt(r, "limit", 50), 1, 200)
	offset := clampInt(queryInt(r, "offset", 0), 0, 1<<30)

	docs, err := h.store.ListDocuments(r.Context(), name, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list content")
		return
	}
	total, err := h.store.CountDocuments(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list content")
		return
	}

	resources := make([]map[string]interface{}, 0, len(docs))
	for i := range docs {
		resources = append(resources, docs[i].Resource())
	}
	writeJSON(w, http.StatusOK, model.ListResponse{
		Resource: resources,
		Meta: &model.ResponseMeta{
			Count:  len(resources),
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	})
}

// Get returns a single document.
// GET /api/v1/{collection}/{id}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, ok := collection(r, true)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	doc, err := h.store.GetDocument(r.Context(), name, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	writeJSON(w, http.StatusOK, doc.Resource())
}

// Create inserts a new document.
// POST /api/v1/admin/{collection}
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, ok := collection(r, false)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	var payload map[string]interface{}
	if err := readJSON(r, &payload); err != nil || payload == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if name == model.CollectionChallenges {
		recomputeLatestUpdate(payload)
	}

	doc, err := h.store.CreateDocument(r.Context(), name, payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create content")
		return
	}
	writeJSON(w, http.StatusCreated, doc.Resource())
}

// Update replaces a document's payload.
// PUT /api/v1/admin/{collection}/{id}
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	name, ok := collection(r, false)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	var payload map[string]interface{}
	if err := readJSON(r, &payload); err != nil || payload == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if name == model.CollectionChallenges {
		recomputeLatestUpdate(payload)
	}

	doc, err := h.store.UpdateDocument(r.Context(), name, chi.URLParam(r, "id"), payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update content")
		return
	}
	writeJSON(w, http.StatusOK, doc.Resource())
}

// Delete removes a document.
// DELETE /api/v1/admin/{collection}/{id}
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name, ok := collection(r, false)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	if err := h.store.DeleteDocument(r.Context(), name, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// recomputeLatestUpdate denormalizes a challenge's newest progress update
// into the latest_update field so the site can render it without scanning
// the updates array. Updates carry a "date" string (RFC 3339 or YYYY-MM-DD);
// entries without a parseable date are ignored.
func recomputeLatestUpdate(payload map[string]interface{}) {
	raw, ok := payload["updates"].([]interface{})
	if !ok || len(raw) == 0 {
		delete(payload, "latest_update")
		return
	}

	var (
		latest     map[string]interface{}
		latestTime time.Time
	)
	for _, item := range raw {
		update, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		dateStr, _ := update["date"].(string)
		t, ok := parseUpdateDate(dateStr)
		if !ok {
			continue
		}
		if latest == nil || t.After(latestTime) {
			latest = update
			latestTime = t
		}
	}

	if latest == nil {
		delete(payload, "latest_update")
		return
	}
	payload["latest_update"] = latest
}

func parseUpdateDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
