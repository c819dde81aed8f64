package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPIHandler serves the generated API specification. The route surface
// is fixed at startup, so the spec is generated once and cached.
type OpenAPIHandler struct {
	generate func() *openapi3.T

	once sync.Once
	body []byte
	err  error
}

// NewOpenAPIHandler creates an OpenAPIHandler around a spec generator.
func NewOpenAPIHandler(generate func() *openapi3.T) *OpenAPIHandler {
	return &OpenAPIHandler{generate: generate}
}

// Serve returns the OpenAPI spec as JSON.
// GET /openapi.json
func (h *OpenAPIHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() {
		h.body, h.err = json.MarshalIndent(h.generate(), "", "  ")
	})
	if h.err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate spec")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.body)
}
