package messages

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler serves the legacy message endpoints.
type Handler struct {
	bundle *Bundle
}

func NewHandler(bundle *Bundle) *Handler {
	return &Handler{bundle: bundle}
}

// Register registers the legacy message routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/legacy/node", h.handleNode)
}

type messageResponse struct {
	Message string `json:"message"`
}

// handleNode returns the "node repeated" text the old frontend shows when a
// duplicate tree node is submitted. The locale comes from Accept-Language.
func (h *Handler) handleNode(w http.ResponseWriter, r *http.Request) {
	msg := h.bundle.Resolve(KeyNodeRepeated, requestLocale(r), DefaultNodeRepeated)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: msg})
}

// requestLocale takes the first language tag from Accept-Language, ignoring
// quality weights.
func requestLocale(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(strings.TrimSpace(first), ";")
	return tag
}
