package arquivo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (chi.Router, *InMemoryStore) {
	t.Helper()
	store := NewInMemoryStore()
	logger := slog.New(slog.DiscardHandler)
	handler := NewHandler(NewService(store, logger), logger)
	r := chi.NewRouter()
	handler.Register(r)
	return r, store
}

func TestHandlerListArquivos(t *testing.T) {
	r, store := testRouter(t)
	require.NoError(t, store.Save(context.Background(), &Arquivo{
		CodigoEscola: 42,
		NomeArquivo:  "lote_1.txt",
		DataUpload:   time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC),
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/arquivos?escola=42&inicio=2026-03-01&fim=2026-03-31", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var arquivos []Arquivo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &arquivos))
	require.Len(t, arquivos, 1)
	assert.Equal(t, "lote_1.txt", arquivos[0].NomeArquivo)
}

func TestHandlerListRejectsBadParams(t *testing.T) {
	r, _ := testRouter(t)

	cases := []string{
		"/api/arquivos?inicio=2026-03-01&fim=2026-03-31",
		"/api/arquivos?escola=42&inicio=marco&fim=2026-03-31",
		"/api/arquivos?escola=42&inicio=2026-03-01",
	}
	for _, url := range cases {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestHandlerRegisterArquivo(t *testing.T) {
	r, store := testRouter(t)

	body := `{"codigoEscola":42,"nomeArquivo":"lote_2.txt","quantidadeRegistro":150,"aptos":140,"comErro":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/arquivos", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created Arquivo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	stored, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lote_2.txt", stored.NomeArquivo)
}

func TestHandlerRegisterRejectsInvalidBody(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/arquivos", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/arquivos", strings.NewReader(`{"nomeArquivo":"sem_escola.txt"}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetArquivo(t *testing.T) {
	r, store := testRouter(t)
	saved := &Arquivo{CodigoEscola: 42, NomeArquivo: "lote_1.txt", DataUpload: time.Now().UTC()}
	require.NoError(t, store.Save(context.Background(), saved))

	req := httptest.NewRequest(http.MethodGet, "/api/arquivos/1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/arquivos/9999", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/arquivos/abc", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
