// Package list реализует HTTP-обработчик списка подписок пользователя.
//
// Handler возвращает подписки текущего пользователя. Администратор может
// запросить подписки любого пользователя через query-параметр userId.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/sl"
	"github.com/magabrotheeeer/sea-catering/internal/models"
	services "github.com/magabrotheeeer/sea-catering/internal/services/subscription"
)

// Handler обрабатывает запросы списка подписок.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	ListForUser(ctx context.Context, callerUID, callerRole, requestedUID string) ([]*models.Subscription, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписок пользователя
// @Description Возвращает подписки текущего пользователя. Администратор может указать userId.
// @Tags Subscriptions
// @Produce  json
// @Param userId query string false "UID пользователя (только для администратора)"
// @Success 200 {object} map[string]any "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Запрос чужих подписок без роли admin"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении подписок"
// @Router /subscriptions/user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	requestedUID := r.URL.Query().Get("userId")

	subs, err := h.service.ListForUser(r.Context(), user.UID, user.Role, requestedUID)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			log.Error("access to foreign subscriptions denied", slog.String("requested_uid", requestedUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
			return
		}
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	log.Info("success to list subscriptions", slog.Int("count", len(subs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscriptions": subs,
	}))
}
