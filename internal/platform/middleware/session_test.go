package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"recadastro/internal/sessiontoken"
	"recadastro/pkg/requestcontext"
)

type stubParser struct {
	claims *sessiontoken.Claims
	err    error
}

func (s *stubParser) Parse(string) (*sessiontoken.Claims, error) {
	return s.claims, s.err
}

func sessionProbe(parser TokenParser) (http.Handler, *string) {
	var seenLogin string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenLogin = requestcontext.Login(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Session(parser, slog.New(slog.DiscardHandler))(inner), &seenLogin
}

func TestSessionSetsLoginFromToken(t *testing.T) {
	handler, seenLogin := sessionProbe(&stubParser{claims: &sessiontoken.Claims{Login: "9999"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9999", *seenLogin)
}

func TestSessionInvalidTokenStaysAnonymous(t *testing.T) {
	handler, seenLogin := sessionProbe(&stubParser{err: errors.New("bad signature")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *seenLogin)
}

func TestSessionNoHeaderStaysAnonymous(t *testing.T) {
	handler, seenLogin := sessionProbe(&stubParser{claims: &sessiontoken.Claims{Login: "9999"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *seenLogin)
}
