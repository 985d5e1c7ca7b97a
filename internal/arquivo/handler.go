package arquivo

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"recadastro/pkg/platform/sentinel"
)

const dateParamLayout = "2006-01-02"

// Handler exposes the upload batch endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the arquivo routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/arquivos", h.handleList)
	r.Post("/api/arquivos", h.handleRegister)
	r.Get("/api/arquivos/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	escola, err := strconv.ParseInt(r.URL.Query().Get("escola"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "escola must be a number")
		return
	}
	inicio, err := time.Parse(dateParamLayout, r.URL.Query().Get("inicio"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "inicio must be a yyyy-mm-dd date")
		return
	}
	fim, err := time.Parse(dateParamLayout, r.URL.Query().Get("fim"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "fim must be a yyyy-mm-dd date")
		return
	}

	arquivos, err := h.service.List(ctx, ListFilter{
		CodigoEscola: escola,
		InicialData:  inicio,
		FinalData:    fim,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "listing arquivos failed", "escola", escola, "error", err)
		writeError(w, http.StatusInternalServerError, "could not list arquivos")
		return
	}

	writeJSON(w, http.StatusOK, arquivos)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var a Arquivo
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Register(ctx, &a); err != nil {
		h.logger.ErrorContext(ctx, "registering arquivo failed",
			"codigo_escola", a.CodigoEscola, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a number")
		return
	}

	a, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "arquivo not found")
			return
		}
		h.logger.ErrorContext(ctx, "loading arquivo failed", "arquivo_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load arquivo")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
