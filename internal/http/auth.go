package httpapi

import (
	"context"
	"net/http"
	"strings"

	"schoolapp-backend-go/internal/services"
)

type contextKey string

const (
	ctxLoginID  contextKey = "loginId"
	ctxUserName contextKey = "userName"
)

func WithAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			token, claims, err := tokenService.ParseToken(tokenStr)
			if err != nil || !token.Valid {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			if claims["typ"] != "access" {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			loginID, _ := claims["sub"].(string)
			userName, _ := claims["name"].(string)
			ctx := context.WithValue(r.Context(), ctxLoginID, loginID)
			ctx = context.WithValue(ctx, ctxUserName, userName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentLoginID(r *http.Request) string {
	if value, ok := r.Context().Value(ctxLoginID).(string); ok {
		return value
	}
	return ""
}

func CurrentUserName(r *http.Request) string {
	if value, ok := r.Context().Value(ctxUserName).(string); ok {
		return value
	}
	return ""
}
