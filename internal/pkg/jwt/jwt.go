package jwt

import (
	"crypto/rsa"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

type Claims struct {
	jwt.RegisteredClaims
	AccountID   int64  `json:"account_id"`
	AccountType string `json:"account_type"`
	Email       string `json:"email"`
}

type JSONWebToken struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

func NewJSONWebToken(privateKeyPEM, publicKeyPEM []byte) *JSONWebToken {
	j := &JSONWebToken{}

	if pk, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM); err == nil {
		j.privateKey = pk
	}
	if pub, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM); err == nil {
		j.publicKey = pub
	}

	return j
}

func (j *JSONWebToken) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(j.privateKey)
	if err != nil {
		return "", errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while signing the session token")
	}

	return signed, nil
}

func (j *JSONWebToken) Parse(tokenString string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.publicKey, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "invalid or expired session token")
	}

	return claims, nil
}
