package rpc

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// maxClockSkew bounds how far the bearer token's "iat" claim may drift
// from wall clock, matching the engine-API JWT auth spec consensus
// clients implement against.
const maxClockSkew = 60 * time.Second

// JWTAuth builds the engine-API listener's bearer-auth middleware: every
// request must carry `Authorization: Bearer <token>` signed with secret
// and an "iat" claim within maxClockSkew of now.
func JWTAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearer(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			if err := verifyToken(token, secret); err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", fmt.Errorf("missing bearer token")
	}
	return strings.TrimPrefix(header, prefix), nil
}

func verifyToken(tokenString string, secret []byte) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return fmt.Errorf("token missing iat claim")
	}
	skew := time.Since(time.Unix(int64(iat), 0))
	if math.Abs(skew.Seconds()) > maxClockSkew.Seconds() {
		return fmt.Errorf("token iat outside allowed clock skew")
	}
	return nil
}
