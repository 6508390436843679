// Package middlewarectx содержит HTTP middleware для работы с сессионными cookie.
//
// SessionMiddleware расшифровывает cookie сессии и кладет данные пользователя
// в контекст запроса. Неудачная расшифровка не прерывает запрос: он продолжается
// как анонимный, а причина пишется в лог. Жесткие проверки выполняют
// RequireAuth и RequireAdmin.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/session"
	"github.com/magabrotheeeer/sea-catering/internal/lib/sl"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для данных пользователя сессии в контексте.
const User Key = "session_user"

// UserFromContext возвращает пользователя сессии из контекста запроса.
func UserFromContext(ctx context.Context) (*session.SessionUser, bool) {
	user, ok := ctx.Value(User).(*session.SessionUser)
	return user, ok
}

// SessionMiddleware возвращает HTTP middleware, который расшифровывает
// cookie сессии и добавляет пользователя в контекст запроса.
//
// Отсутствующая или нечитаемая cookie оставляет запрос анонимным.
func SessionMiddleware(codec session.Codec, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := codec.Decrypt(cookie.Value)
			if err != nil {
				log.Warn("failed to decrypt session cookie, treating as anonymous",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), User, &payload.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth возвращает middleware, пропускающий только запросы
// с пользователем в контексте. Иначе — 401 Unauthorized.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				log.Error("request without session",
					slog.String("request_id", middleware.GetReqID(r.Context())))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin возвращает middleware, пропускающий только пользователей
// с ролью admin. Без сессии — 401, с ролью user — 403.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("request without session",
					slog.String("request_id", middleware.GetReqID(r.Context())))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if user.Role != models.RoleAdmin {
				log.Error("admin role required",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("uid", user.UID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
