// Package csrftoken реализует HTTP-обработчик выдачи CSRF-токена.
//
// Handler генерирует случайный токен и выставляет две cookie с одинаковым
// значением: httpOnly для серверной проверки и читаемую скриптом для
// возврата в заголовке X-CSRF-Token. Токен дублируется в теле ответа.
package csrftoken

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/csrf"
	"github.com/magabrotheeeer/sea-catering/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы выдачи CSRF-токена.
type Handler struct {
	log          *slog.Logger
	tokenTTL     time.Duration
	secureCookie bool
}

// New создает новый Handler.
func New(log *slog.Logger, tokenTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{
		log:          log,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

// ServeHTTP godoc
// @Summary Выдать CSRF-токен
// @Description Генерирует токен и выставляет пару CSRF-cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Токен выдан"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /csrf [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.csrftoken"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, err := csrf.NewToken()
	if err != nil {
		log.Error("failed to generate csrf token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue csrf token"))
		return
	}
	middlewarectx.SetCSRFCookies(w, token, h.tokenTTL, h.secureCookie)

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"csrf_token": token,
	}))
}
