package recad

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recadastro/internal/institution"
	"recadastro/pkg/requestcontext"
)

func newTestRouter(insts *fakeInstitutions, years *fakeYears) chi.Router {
	svc := NewService(insts, years, discard())
	r := chi.NewRouter()
	NewHandler(svc, discard()).Register(r)
	return r
}

func TestHandleInstituicoes_QueryParams(t *testing.T) {
	insts := &fakeInstitutions{result: []institution.Institution{{Nome: strPtr("Escola A")}}}
	router := newTestRouter(insts, &fakeYears{user: 2026})

	req := httptest.NewRequest(http.MethodGet, "/api/recadastramento/instituicoes?login=0001&usuario=42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Instituicoes []institution.Institution `json:"instituicoes"`
		AnoBase      string                    `json:"anobase"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// anobase travels as a string, as the legacy frontend expects.
	assert.Equal(t, "2026", body.AnoBase)
	require.Len(t, body.Instituicoes, 1)
	assert.Equal(t, "0001", *insts.login)
}

func TestHandleInstituicoes_SessionClaimsWin(t *testing.T) {
	insts := &fakeInstitutions{}
	router := newTestRouter(insts, &fakeYears{user: 2025})

	req := httptest.NewRequest(http.MethodGet, "/api/recadastramento/instituicoes?login=ignored", nil)
	ctx := requestcontext.WithLogin(req.Context(), "9999")
	ctx = requestcontext.WithUserInfo(ctx, map[string]any{"codigo": float64(7)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9999", *insts.login)
}

func TestHandleInstituicoes_AnonymousStillAnswers(t *testing.T) {
	insts := &fakeInstitutions{}
	router := newTestRouter(insts, &fakeYears{user: 2025})

	req := httptest.NewRequest(http.MethodGet, "/api/recadastramento/instituicoes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Instituicoes []institution.Institution `json:"instituicoes"`
		AnoBase      string                    `json:"anobase"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Instituicoes)
	assert.Empty(t, body.Instituicoes)
	assert.Equal(t, "2025", body.AnoBase)
	assert.Nil(t, insts.login)
}

func TestHandleAnoBase(t *testing.T) {
	router := newTestRouter(&fakeInstitutions{}, &fakeYears{user: 2025, school: 2026})

	t.Run("school year with escola param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recadastramento/anobase?escola=311", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"anobase":"2026"}`, rec.Body.String())
	})

	t.Run("user year otherwise", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recadastramento/anobase?usuario=42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"anobase":"2025"}`, rec.Body.String())
	})

	t.Run("malformed escola falls back to user path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/recadastramento/anobase?escola=abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"anobase":"2025"}`, rec.Body.String())
	})
}
