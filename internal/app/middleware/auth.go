package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/IT-Nick/examdesk/internal/domain/auth/session"
	httpError "github.com/IT-Nick/examdesk/pkg/http"
)

type claimsKey struct{}

// RequireAdmin проверяет заголовок Authorization: Bearer <token> и кладет claims в контекст.
// При enabled == false запросы пропускаются без проверки.
func RequireAdmin(issuer *session.Issuer, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			claims, err := issuer.Parse(strings.TrimSpace(tokenString))
			if err != nil {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext возвращает claims администратора, проверенные RequireAdmin
func ClaimsFromContext(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*session.Claims)
	return claims, ok
}

// AdminName имя администратора из запроса или "-", если проверка токена отключена
func AdminName(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.Username
	}
	return "-"
}
