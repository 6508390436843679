// Package mealplan содержит бизнес-логику каталога планов питания.
package mealplan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

const catalogCacheKey = "mealplans:catalog"

// Repository определяет методы для работы с каталогом в хранилище.
type Repository interface {
	// ListMealPlans возвращает все планы питания.
	ListMealPlans(ctx context.Context) ([]*models.MealPlan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует бизнес-логику каталога с кешированием:
// каталог меняется редко, час жизни в кеше достаточен.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// List возвращает каталог планов питания, используя кеш или репозиторий.
func (s *Service) List(ctx context.Context) ([]*models.MealPlan, error) {
	const op = "services.mealplan.List"

	var cached []*models.MealPlan
	found, err := s.cache.Get(catalogCacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", catalogCacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListMealPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(catalogCacheKey, plans, time.Hour); err != nil {
		s.log.Warn("failed to cache catalog", slog.String("key", catalogCacheKey), slog.Any("err", err))
	}
	return plans, nil
}
