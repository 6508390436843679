// Package metrics содержит read-side агрегации для панели администратора:
// сводку за период, графики выручки и роста, распределение по планам.
//
// Независимые запросы выполняются параллельно; ошибка любого из них
// отказывает всю агрегацию, частичные результаты не отдаются.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Repository определяет агрегирующие запросы хранилища.
type Repository interface {
	CountNewSubscriptions(ctx context.Context, from, to time.Time) (int, error)
	SumMRR(ctx context.Context, to time.Time) (int64, error)
	CountActiveAsOf(ctx context.Context, to time.Time) (int, error)
	CountReactivations(ctx context.Context, from, to time.Time) (int, error)
	CountActiveByPlan(ctx context.Context) ([]*models.PlanDistribution, error)
	CountGrowthDay(ctx context.Context, day time.Time) (*models.GrowthPoint, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует агрегации панели администратора.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// PctChange возвращает процентное изменение current к previous.
// При previous == 0 результат равен 0, а не делению на ноль.
func PctChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

const summaryCacheTTL = 5 * time.Minute

// Summary считает сводку за период [from, to] и процентное изменение
// к предыдущему периоду той же длины. Восемь запросов выполняются
// параллельно, ошибка любого отказывает сводку целиком.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*models.MetricsSummary, error) {
	const op = "services.metrics.Summary"

	key := fmt.Sprintf("metrics:summary:%s:%s",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	var cached models.MetricsSummary
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	prevTo := from
	prevFrom := from.Add(-to.Sub(from))

	summary := models.MetricsSummary{From: from, To: to}
	var prevNew, prevActive, prevReactivations int
	var prevMRR int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.NewSubscriptions, err = s.repo.CountNewSubscriptions(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		summary.MRR, err = s.repo.SumMRR(gctx, to)
		return err
	})
	g.Go(func() error {
		var err error
		summary.ActiveSubscriptions, err = s.repo.CountActiveAsOf(gctx, to)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Reactivations, err = s.repo.CountReactivations(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		prevNew, err = s.repo.CountNewSubscriptions(gctx, prevFrom, prevTo)
		return err
	})
	g.Go(func() error {
		var err error
		prevMRR, err = s.repo.SumMRR(gctx, prevTo)
		return err
	})
	g.Go(func() error {
		var err error
		prevActive, err = s.repo.CountActiveAsOf(gctx, prevTo)
		return err
	})
	g.Go(func() error {
		var err error
		prevReactivations, err = s.repo.CountReactivations(gctx, prevFrom, prevTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary.NewChange = PctChange(float64(summary.NewSubscriptions), float64(prevNew))
	summary.MRRChange = PctChange(float64(summary.MRR), float64(prevMRR))
	summary.ActiveChange = PctChange(float64(summary.ActiveSubscriptions), float64(prevActive))
	summary.ReactivationsChange = PctChange(float64(summary.Reactivations), float64(prevReactivations))

	if err := s.cache.Set(key, summary, summaryCacheTTL); err != nil {
		s.log.Warn("failed to cache summary", slog.String("key", key), slog.Any("err", err))
	}
	return &summary, nil
}

// Revenue возвращает ряд MRR на конец каждого из последних months месяцев.
func (s *Service) Revenue(ctx context.Context, months int) ([]*models.RevenuePoint, error) {
	const op = "services.metrics.Revenue"

	now := time.Now()
	points := make([]*models.RevenuePoint, months)

	g, gctx := errgroup.WithContext(ctx)
	for i := range months {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, i-months+1, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
		g.Go(func() error {
			mrr, err := s.repo.SumMRR(gctx, monthEnd)
			if err != nil {
				return err
			}
			points[i] = &models.RevenuePoint{
				Month: monthStart.Format("2006-01"),
				MRR:   mrr,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return points, nil
}

// Growth возвращает счётчики по дням за последние days дней,
// каждый день считается независимо с границами [day, day+1).
func (s *Service) Growth(ctx context.Context, days int) ([]*models.GrowthPoint, error) {
	const op = "services.metrics.Growth"

	today := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]*models.GrowthPoint, days)

	g, gctx := errgroup.WithContext(ctx)
	for i := range days {
		day := today.AddDate(0, 0, i-days+1)
		g.Go(func() error {
			point, err := s.repo.CountGrowthDay(gctx, day)
			if err != nil {
				return err
			}
			points[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return points, nil
}

// Plans возвращает распределение активных подписок по планам питания.
func (s *Service) Plans(ctx context.Context) ([]*models.PlanDistribution, error) {
	const op = "services.metrics.Plans"

	result, err := s.repo.CountActiveByPlan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
