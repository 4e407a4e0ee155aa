package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
)

type ctxKey int

const userIDKey ctxKey = iota

const (
	msgMissingUserID = "заголовок X-User-ID обязателен"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

// Auth требует заголовок X-User-ID и кладет идентификатор пользователя
// CRM в контекст запроса. Проверка подлинности выполняется на шлюзе,
// сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает идентификатор пользователя из контекста
// nil, если запрос пришел без аутентификации
func UserIDFromContext(ctx context.Context) *int64 {
	if userID, ok := ctx.Value(userIDKey).(int64); ok {
		return &userID
	}
	return nil
}
