package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"debttracker/internal/config"
	"debttracker/pkg/claims"
	"debttracker/pkg/session"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
)

var (
	noSessUrls = map[string]string{
		"/api/login":    http.MethodPost,
		"/api/register": http.MethodPost,
	}
)

// BearerToken pulls the token out of the Authorization header. Anything
// other than "Bearer <token>" counts as absent.
func BearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}

	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" {
		return "", false
	}

	return token, true
}

// Auth admits a request only when the token's signature verifies, its
// expiry has not passed, and a live session entry still exists for the
// exact token string. Every failure collapses to 401 for the client;
// the concrete reason is only logged.
func Auth(sessions session.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()

			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := BearerToken(r)
			if !ok {
				logger.Info("auth rejected", "reason", "missing bearer token", "path", r.URL.Path)
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			hashSecretGetter := func(token *jwt.Token) (interface{}, error) {
				method, ok := token.Method.(*jwt.SigningMethodHMAC)
				if !ok || method.Alg() != "HS256" {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(config.JWTSecret()), nil
			}

			tokenClaims := &claims.Claims{}

			parsed, err := jwt.ParseWithClaims(token, tokenClaims, hashSecretGetter)
			if err != nil || !parsed.Valid || tokenClaims.Email == "" {
				logger.Info("auth rejected", "reason", "invalid token", "error", err)
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			// the live session entry is authoritative for identity;
			// the claims above only drove signature verification
			identity, ok := sessions.Lookup(token)
			if !ok {
				logger.Info("auth rejected", "reason", "no live session", "user", tokenClaims.UserID)
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claims.IdentityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
