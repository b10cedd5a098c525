package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type PrincipalType string

const (
	PrincipalCustomer PrincipalType = "customer"
	PrincipalBusiness PrincipalType = "business"
)

// PrincipalClaims defines the standard claims for our application
type PrincipalClaims struct {
	PrincipalID   int64         `json:"principal_id"`
	PrincipalType PrincipalType `json:"principal_type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	Generate(principalID int64, principalType PrincipalType) (string, error)
	Validate(tokenString string) (*PrincipalClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiryMinutes int) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) Generate(principalID int64, principalType PrincipalType) (string, error) {
	claims := PrincipalClaims{
		PrincipalID:   principalID,
		PrincipalType: principalType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(principalID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "greenloop-backend",
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) Validate(tokenString string) (*PrincipalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PrincipalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*PrincipalClaims); ok && token.Valid {
		// Populate PrincipalID from Subject if it was lost (though we set both)
		if claims.PrincipalID == 0 && claims.Subject != "" {
			claims.PrincipalID, _ = strconv.ParseInt(claims.Subject, 10, 64)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
