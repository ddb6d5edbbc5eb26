package claims

import jwt "github.com/dgrijalva/jwt-go"

type contextKey string

const (
	IdentityContextKey contextKey = "identity"
)

type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}
