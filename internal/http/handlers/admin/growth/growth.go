// Package growth реализует HTTP-обработчик графика роста подписок для администратора.
package growth

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/sl"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

const (
	defaultDays = 30
	maxDays     = 90
)

// Handler обрабатывает запросы графика роста.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики метрик
}

// Service описывает интерфейс бизнес-логики графика роста.
type Service interface {
	Growth(ctx context.Context, days int) ([]*models.GrowthPoint, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary График роста подписок
// @Description Возвращает активные, новые и отмененные подписки по дням.
// @Tags Admin
// @Produce  json
// @Param days query int false "Число дней (1..90, по умолчанию 30)"
// @Success 200 {object} map[string]any "Точки графика"
// @Failure 400 {object} response.ErrorResponse "Некорректное число дней"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчете графика"
// @Router /admin/charts/growth [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.growth"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days := defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxDays {
			log.Error("invalid days parameter", slog.String("days", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid days parameter"))
			return
		}
		days = parsed
	}

	points, err := h.service.Growth(r.Context(), days)
	if err != nil {
		log.Error("failed to build growth chart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build growth chart"))
		return
	}

	log.Info("success to build growth chart", slog.Int("days", days))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"points": points,
	}))
}
