// Package revenue реализует HTTP-обработчик графика выручки для администратора.
package revenue

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
	defaultMonths = 6
	maxMonths     = 24
)

// Handler обрабатывает запросы графика выручки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики метрик
}

// Service описывает интерфейс бизнес-логики графика выручки.
type Service interface {
	Revenue(ctx context.Context, months int) ([]*models.RevenuePoint, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary График выручки
// @Description Возвращает ряд MRR на конец каждого из последних месяцев.
// @Tags Admin
// @Produce  json
// @Param months query int false "Число месяцев (1..24, по умолчанию 6)"
// @Success 200 {object} map[string]any "Точки графика"
// @Failure 400 {object} response.ErrorResponse "Некорректное число месяцев"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчете графика"
// @Router /admin/charts/revenue [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.revenue"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	months := defaultMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxMonths {
			log.Error("invalid months parameter", slog.String("months", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid months parameter"))
			return
		}
		months = parsed
	}

	points, err := h.service.Revenue(r.Context(), months)
	if err != nil {
		log.Error("failed to build revenue chart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build revenue chart"))
		return
	}

	log.Info("success to build revenue chart", slog.Int("months", months))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"points": points,
	}))
}
