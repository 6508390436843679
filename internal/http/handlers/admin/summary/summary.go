// Package summary реализует HTTP-обработчик сводки метрик для администратора.
//
// Handler принимает период через query-параметры from и to в формате
// 2006-01-02, по умолчанию — последние 30 дней, и возвращает сводку
// с процентным изменением к предыдущему периоду той же длины.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/sea-catering/internal/http/response"
	"github.com/magabrotheeeer/sea-catering/internal/lib/sl"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Handler обрабатывает запросы сводки метрик.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики метрик
}

// Service описывает интерфейс бизнес-логики сводки метрик.
type Service interface {
	Summary(ctx context.Context, from, to time.Time) (*models.MetricsSummary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка метрик
// @Description Возвращает новые подписки, MRR, активные подписки и реактивации за период с изменением к предыдущему периоду.
// @Tags Admin
// @Produce  json
// @Param from query string false "Начало периода (2006-01-02)"
// @Param to query string false "Конец периода (2006-01-02)"
// @Success 200 {object} map[string]any "Сводка метрик"
// @Failure 400 {object} response.ErrorResponse "Некорректный период"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при расчете метрик"
// @Router /admin/metrics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse from", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid from date"))
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("failed to parse to", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid to date"))
			return
		}
		to = parsed
	}
	if !to.After(from) {
		log.Error("empty metrics period")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("to must be after from"))
		return
	}

	summary, err := h.service.Summary(r.Context(), from, to)
	if err != nil {
		log.Error("failed to build metrics summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build metrics summary"))
		return
	}

	log.Info("success to build metrics summary")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": summary,
	}))
}
