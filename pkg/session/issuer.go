package session

import (
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"debttracker/pkg/claims"
	"debttracker/pkg/generator"
)

// Issuer turns a verified user identity into a signed bearer token and
// a matching session entry. The token string doubles as the cache key.
type Issuer struct {
	Secret []byte
	Store  Store
}

func NewIssuer(secret string, store Store) *Issuer {
	return &Issuer{Secret: []byte(secret), Store: store}
}

func (i *Issuer) Issue(userID int64, email string) (string, error) {
	nonce, err := generator.GenerateRandomID(24)
	if err != nil {
		return "", fmt.Errorf("jti gen error: %s", err)
	}

	// one instant governs both the signature expiry and the cache TTL
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims.Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Id:        nonce,
			IssuedAt:  now.UTC().Unix(),
			ExpiresAt: now.Add(TTL).UTC().Unix(),
		},
	})

	tokenString, err := token.SignedString(i.Secret)
	if err != nil {
		return "", fmt.Errorf("token signing: %s", err)
	}

	i.Store.Register(tokenString, Identity{UserID: userID, Email: email}, TTL)

	return tokenString, nil
}
