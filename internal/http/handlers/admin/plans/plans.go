// Package plans реализует HTTP-обработчик распределения подписок по планам.
package plans

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/sl"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Handler обрабатывает запросы распределения по планам.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики метрик
}

// Service описывает интерфейс бизнес-логики распределения по планам.
type Service interface {
	Plans(ctx context.Context) ([]*models.PlanDistribution, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Распределение подписок по планам
// @Description Возвращает число активных подписок по каждому плану питания.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Распределение по планам"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчете распределения"
// @Router /admin/charts/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.plans"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	distribution, err := h.service.Plans(r.Context())
	if err != nil {
		log.Error("failed to build plan distribution", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build plan distribution"))
		return
	}

	log.Info("success to build plan distribution", slog.Int("plans", len(distribution)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": distribution,
	}))
}
