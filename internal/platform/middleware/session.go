package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"recadastro/internal/sessiontoken"
	"recadastro/pkg/requestcontext"
)

// TokenParser validates a legacy session token and returns its claims.
type TokenParser interface {
	Parse(tokenString string) (*sessiontoken.Claims, error)
}

// Session extracts the legacy session attributes (login and the raw
// informacoesusuario payload) from a bearer token into the request context.
// The token is optional: every endpoint behind it degrades to its conservative
// default when the session is absent, exactly as the legacy screens did, so an
// invalid token demotes the request to anonymous instead of rejecting it.
func Session(parser TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" || parser == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.Parse(token)
			if err != nil {
				logger.Debug("session token rejected, continuing anonymous",
					"request_id", requestcontext.RequestID(r.Context()),
					"reason", err.Error(),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if claims.Login != "" {
				ctx = requestcontext.WithLogin(ctx, claims.Login)
			}
			if claims.Informacoes != nil {
				ctx = requestcontext.WithUserInfo(ctx, claims.Informacoes)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
