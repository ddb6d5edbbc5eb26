package middleware_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"debttracker/pkg/claims"
	"debttracker/pkg/middleware"
	"debttracker/pkg/session"
)

func newTestRouter(sessions session.Store) *mux.Router {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(sessions, logger))

	api.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("POST")

	api.HandleFunc("/debts", func(w http.ResponseWriter, r *http.Request) {
		identity, ok := r.Context().Value(claims.IdentityContextKey).(session.Identity)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(identity); err != nil {
			return
		}
	}).Methods("GET")

	return r
}

func TestAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	sessions := session.NewCacheStore()
	issuer := session.NewIssuer("test_secret", sessions)
	router := newTestRouter(sessions)

	token, err := issuer.Issue(42, "a@x.com")
	assert.NoError(t, err)

	expiredToken := makeExpiredToken(t, sessions)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "no authorization header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty token segment",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			header:         "Bearer garbage",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/debts", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, test.expectedStatus, rr.Code)

			if test.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"email":"a@x.com"`)
				assert.Contains(t, rr.Body.String(), `"userId":42`)
			}
		})
	}
}

// makeExpiredToken signs a token whose exp already passed and registers
// a live session entry for it, so only the signature expiry can reject.
func makeExpiredToken(t *testing.T, sessions session.Store) string {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims.Claims{
		UserID: 42,
		Email:  "a@x.com",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Add(-2 * time.Hour).UTC().Unix(),
			ExpiresAt: now.Add(-time.Hour).UTC().Unix(),
		},
	})

	tokenString, err := token.SignedString([]byte("test_secret"))
	assert.NoError(t, err)

	sessions.Register(tokenString, session.Identity{UserID: 42, Email: "a@x.com"}, session.TTL)

	return tokenString
}

func TestAuth_RevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	sessions := session.NewCacheStore()
	issuer := session.NewIssuer("test_secret", sessions)
	router := newTestRouter(sessions)

	token, err := issuer.Issue(7, "b@x.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/debts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// logout kills the session entry; the signature is still valid
	sessions.Revoke(token)

	req = httptest.NewRequest(http.MethodGet, "/api/debts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_SkipsPublicRoutes(t *testing.T) {
	sessions := session.NewCacheStore()
	router := newTestRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
