package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAdminJWT(t *testing.T) {
	var gotSubject interface{}
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = r.Context().Value(AdminSubjectKey)
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminJWT(testSecret)(testHandler)

	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{
			name:           "valid admin token",
			authorization:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "registrar", "role": "admin", "exp": exp}),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authorization:  "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			authorization:  "Basic abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			authorization:  "Bearer " + signToken(t, "other", jwt.MapClaims{"role": "admin", "exp": exp}),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not an admin",
			authorization:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "shopper", "exp": exp}),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired",
			authorization:  "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = nil
			req := httptest.NewRequest(http.MethodGet, "/api/admin/options", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusOK && gotSubject != "registrar" {
				t.Errorf("subject = %v, want registrar", gotSubject)
			}
		})
	}
}
