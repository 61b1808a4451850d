package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// AdminSubjectKey holds the authenticated admin's subject claim
const AdminSubjectKey contextKey = "adminSubject"

// AdminJWT requires an HS256 bearer token carrying role=admin
func AdminJWT(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				http.Error(w, "Unauthorized: bearer token required", http.StatusUnauthorized)
				return
			}

			subject, err := parseAdminToken(tokenString, secret)
			if err != nil {
				http.Error(w, "Forbidden: "+err.Error(), http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), AdminSubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseAdminToken(tokenString, secret string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	if role, _ := claims["role"].(string); role != "admin" {
		return "", errors.New("admin role required")
	}
	subject, _ := claims.GetSubject()
	return subject, nil
}
