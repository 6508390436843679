// Package me реализует HTTP-обработчик получения текущего пользователя.
//
// Handler возвращает данные пользователя из сессии или null для анонимного
// запроса. Ошибкой анонимный запрос не считается: клиент использует ответ,
// чтобы решить, показывать ли форму входа.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/http/response"
)

// Handler обрабатывает HTTP-запросы текущей сессии.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает данные пользователя из сессии или null для анонимного запроса.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Данные сессии"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"user": nil,
		}))
		return
	}

	log.Info("session resolved", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
