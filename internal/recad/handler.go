package recad

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"recadastro/internal/institution"
	"recadastro/pkg/requestcontext"
)

// Handler exposes the legacy-compatible recadastramento endpoints. Login and
// user code come from the session token when present; query parameters cover
// clients that were migrated off the session before the token rollout.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the recadastramento routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/recadastramento/instituicoes", h.handleInstituicoes)
	r.Get("/api/recadastramento/anobase", h.handleAnoBase)
}

// resolutionResponse mirrors the two legacy session attributes
// ("listainstituicoes" and "anobase"). The year travels as a string because
// that is what the legacy frontend stored and compared.
type resolutionResponse struct {
	Instituicoes []institution.Institution `json:"instituicoes"`
	AnoBase      string                    `json:"anobase"`
}

func (h *Handler) handleInstituicoes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	login := loginFrom(r)
	userCode := userCodeFrom(r)

	h.logger.DebugContext(ctx, "resolving recadastramento",
		"login", deref(login, ""), "has_user_code", userCode != nil)

	res := h.service.Resolve(ctx, login, userCode)

	writeJSON(w, http.StatusOK, resolutionResponse{
		Instituicoes: res.Instituicoes,
		AnoBase:      strconv.Itoa(res.AnoBase),
	})
}

// handleAnoBase resolves just the year: for a school when ?escola= is given,
// for the session user otherwise.
func (h *Handler) handleAnoBase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var year int
	if escola := intParam(r, "escola"); escola != nil {
		year = h.service.SchoolYear(ctx, escola)
	} else {
		year = h.service.userYear(ctx, userCodeFrom(r))
	}

	writeJSON(w, http.StatusOK, map[string]string{"anobase": strconv.Itoa(year)})
}

// loginFrom prefers the session claim and falls back to the login query
// parameter. No login at all resolves to nil, which short-circuits the
// institution cascade.
func loginFrom(r *http.Request) *string {
	if login := requestcontext.Login(r.Context()); login != "" {
		return &login
	}
	if login := r.URL.Query().Get("login"); login != "" {
		return &login
	}
	return nil
}

// userCodeFrom probes the session payload first, then the usuario query
// parameter.
func userCodeFrom(r *http.Request) *int {
	if code := ExtractUserCode(requestcontext.UserInfo(r.Context())); code != nil {
		return code
	}
	return intParam(r, "usuario")
}

func intParam(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
