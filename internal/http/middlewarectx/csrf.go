package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/csrf"
)

// CSRFMiddleware возвращает middleware двойной отправки CSRF-токена.
//
// Изменяющие запросы обязаны прислать в заголовке X-CSRF-Token значение,
// совпадающее с httpOnly-cookie. Несовпадение или отсутствие — 403.
// Читающие методы пропускаются без проверки.
func CSRFMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			var cookieToken string
			if cookie, err := r.Cookie(CSRFHTTPCookie); err == nil {
				cookieToken = cookie.Value
			}
			clientToken := r.Header.Get("X-CSRF-Token")

			if !csrf.Validate(clientToken, cookieToken) {
				log.Error("csrf token mismatch",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid csrf token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
