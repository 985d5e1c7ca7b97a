package sessiontoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the attributes the legacy application kept in the HTTP
// session. Informacoes is deliberately untyped: depending on which legacy
// screen minted the session it holds a number, a numeric string, or a map
// with a "codigo" style key. The user-code probes narrow it later.
type Claims struct {
	Login       string `json:"login"`
	Informacoes any    `json:"informacoesusuario"`
	jwt.RegisteredClaims
}

// Service validates the signed session tokens that replaced the legacy
// HttpSession contract.
type Service struct {
	signingKey []byte
}

func New(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey)}
}

var errInvalidToken = errors.New("invalid session token")

// Parse validates the token signature and returns its claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
