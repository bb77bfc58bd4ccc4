package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Middleware adds bearer token authentication around accessing the routes.
// Tokens are HMAC-signed JWTs verified against the shared secret.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := authenticate(r, secret); err != nil {
				zap.S().Errorw("unauthorized",
					"url", r.URL,
					"error", err)
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(r *http.Request, secret string) error {
	header := r.Header.Get("Authorization")
	if header == "" {
		return fmt.Errorf("missing authorization header")
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header {
		return fmt.Errorf("authorization header is not a bearer token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
