// Package middlewarectx содержит HTTP middleware маркетплейса.
//
// IdentifyMiddleware извлекает имя пользователя из заголовка X-Username,
// лениво создаёт пользователя при первом обращении и кладёт его имя и UID
// в контекст запроса. Глобального состояния сессии нет: каждая операция
// получает пользователя только из контекста своего запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pixel-market/internal/http/response"
	"github.com/magabrotheeeer/pixel-market/internal/lib/sl"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// UserUID — ключ для UID пользователя в контексте
	UserUID Key = "user_uid"
)

// UserProvider лениво создаёт пользователя по имени.
type UserProvider interface {
	GetOrCreateUser(ctx context.Context, username string) (*models.User, error)
}

// IdentifyMiddleware возвращает HTTP middleware, который определяет
// пользователя по заголовку X-Username и добавляет его имя и UID
// в контекст запроса.
func IdentifyMiddleware(users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Identify"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			username := r.Header.Get("X-Username")
			if username == "" {
				log.Error("missing X-Username header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing X-Username header"))
				return
			}

			user, err := users.GetOrCreateUser(r.Context(), username)
			if err != nil {
				log.Error("failed to identify user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to identify user"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user.Username)
			ctx = context.WithValue(ctx, UserUID, user.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
