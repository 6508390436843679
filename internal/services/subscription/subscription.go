// Package subscription содержит бизнес-логику жизненного цикла подписок:
// создание, частичное обновление с пересчетом стоимости и машину
// состояний active → paused → active, active|paused → cancelled.
// Статус cancelled терминален.
package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/sea-catering/internal/lib/pricing"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// ErrNotFound возвращается, если подписка или план не существуют.
var ErrNotFound = errors.New("subscription not found")

// ErrForbidden возвращается при попытке работать с чужой подпиской без роли admin.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition возвращается при недопустимой смене статуса.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidEndDate возвращается, если дата окончания паузы не лежит строго в будущем.
var ErrInvalidEndDate = errors.New("end date must be after pause start")

// Repository определяет методы для работы с подписками и каталогом в хранилище.
type Repository interface {
	// CreateSubscription добавляет новую подписку и возвращает её UID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	// GetSubscription возвращает подписку по UID.
	GetSubscription(ctx context.Context, uid string) (*models.Subscription, error)
	// UpdateSubscription обновляет подписку и возвращает количество строк.
	UpdateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	// RemoveSubscription удаляет подписку по UID.
	RemoveSubscription(ctx context.Context, uid string) (int64, error)
	// ListSubscriptionsByUser возвращает подписки пользователя.
	ListSubscriptionsByUser(ctx context.Context, userUID string) ([]*models.Subscription, error)
	// GetMealPlan возвращает план питания по ID.
	GetMealPlan(ctx context.Context, id int) (*models.MealPlan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с подписками, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(uid string) string {
	return fmt.Sprintf("subscription:%s", uid)
}

// Create создает активную подписку для пользователя и возвращает её UID.
// Стоимость считается по текущему плану и выбранным наборам.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummySubscription) (string, error) {
	const op = "services.subscription.Create"

	plan, err := s.repo.GetMealPlan(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	totalPrice, err := pricing.Monthly(plan.PricePerMeal, len(req.MealTypes), len(req.DeliveryDays))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sub := models.Subscription{
		UID:          uuid.NewString(),
		UserUID:      userUID,
		PlanID:       req.PlanID,
		Name:         req.Name,
		Phone:        req.Phone,
		MealTypes:    req.MealTypes,
		DeliveryDays: req.DeliveryDays,
		Allergies:    req.Allergies,
		TotalPrice:   totalPrice,
		Status:       models.StatusActive,
		StartDate:    time.Now(),
	}

	uid, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new subscription",
		slog.String("uid", uid), slog.Int64("total_price", totalPrice))

	if err := s.cache.Set(cacheKey(uid), sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey(uid)), slog.Any("err", err))
	}

	return uid, nil
}

// Read возвращает подписку по UID, проверяя владение или роль admin.
func (s *Service) Read(ctx context.Context, callerUID, callerRole, uid string) (*models.Subscription, error) {
	const op = "services.subscription.Read"

	sub, err := s.getSubscription(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkOwnership(sub, callerUID, callerRole); err != nil {
		return nil, err
	}
	return sub, nil
}

// Update применяет частичное обновление подписки. Изменение плана, наборов
// приёмов пищи или дней доставки пересчитывает стоимость по новым значениям,
// смена статуса проходит через машину состояний. Пауза стоимость не трогает.
func (s *Service) Update(ctx context.Context, callerUID, callerRole, uid string, patch models.DummySubscriptionPatch) (*models.Subscription, error) {
	const op = "services.subscription.Update"

	sub, err := s.getSubscription(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkOwnership(sub, callerUID, callerRole); err != nil {
		return nil, err
	}

	var endDate *time.Time
	if patch.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *patch.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid end date: %w", op, err)
		}
		endDate = &parsed
	}

	recompute := false
	if patch.PlanID != nil {
		sub.PlanID = *patch.PlanID
		recompute = true
	}
	if patch.Name != nil {
		sub.Name = *patch.Name
	}
	if patch.Phone != nil {
		sub.Phone = *patch.Phone
	}
	if patch.MealTypes != nil {
		sub.MealTypes = *patch.MealTypes
		recompute = true
	}
	if patch.DeliveryDays != nil {
		sub.DeliveryDays = *patch.DeliveryDays
		recompute = true
	}
	if patch.Allergies != nil {
		sub.Allergies = *patch.Allergies
	}

	if patch.Status != nil && *patch.Status != sub.Status {
		if err := s.applyTransition(sub, *patch.Status, endDate); err != nil {
			return nil, err
		}
	} else if endDate != nil {
		sub.EndDate = endDate
	}

	if recompute {
		plan, err := s.repo.GetMealPlan(ctx, sub.PlanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		totalPrice, err := pricing.Monthly(plan.PricePerMeal, len(sub.MealTypes), len(sub.DeliveryDays))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sub.TotalPrice = totalPrice
	}

	rows, err := s.repo.UpdateSubscription(ctx, *sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	s.log.Info("updated subscription", slog.String("uid", uid), slog.String("status", sub.Status))

	if err := s.cache.Set(cacheKey(uid), sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey(uid)), slog.Any("err", err))
	}

	return sub, nil
}

// applyTransition проверяет и применяет смену статуса.
//
// Пауза требует даты окончания строго после её начала. Отмена оставляет
// дату окончания такой, какой её прислал вызывающий, и не трогает
// стоимость. Реактивация сбрасывает дату окончания.
func (s *Service) applyTransition(sub *models.Subscription, newStatus string, endDate *time.Time) error {
	if sub.Status == models.StatusCancelled {
		return ErrInvalidTransition
	}

	switch newStatus {
	case models.StatusPaused:
		if sub.Status != models.StatusActive {
			return ErrInvalidTransition
		}
		if endDate == nil || !endDate.After(time.Now()) {
			return ErrInvalidEndDate
		}
		sub.Status = models.StatusPaused
		sub.EndDate = endDate
	case models.StatusActive:
		if sub.Status != models.StatusPaused {
			return ErrInvalidTransition
		}
		sub.Status = models.StatusActive
		sub.EndDate = nil
	case models.StatusCancelled:
		sub.Status = models.StatusCancelled
		if endDate != nil {
			sub.EndDate = endDate
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Remove удаляет подписку, проверяя владение или роль admin.
func (s *Service) Remove(ctx context.Context, callerUID, callerRole, uid string) error {
	const op = "services.subscription.Remove"

	sub, err := s.getSubscription(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkOwnership(sub, callerUID, callerRole); err != nil {
		return err
	}

	if err := s.cache.Invalidate(cacheKey(uid)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(uid)), slog.Any("err", err))
	}

	rows, err := s.repo.RemoveSubscription(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.log.Info("removed subscription", slog.String("uid", uid))
	return nil
}

// ListForUser возвращает подписки пользователя. Администратор может
// запросить подписки любого пользователя, указав его UID явно.
func (s *Service) ListForUser(ctx context.Context, callerUID, callerRole, requestedUID string) ([]*models.Subscription, error) {
	const op = "services.subscription.ListForUser"

	target := callerUID
	if requestedUID != "" && requestedUID != callerUID {
		if callerRole != models.RoleAdmin {
			return nil, ErrForbidden
		}
		target = requestedUID
	}

	subs, err := s.repo.ListSubscriptionsByUser(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

func (s *Service) getSubscription(ctx context.Context, uid string) (*models.Subscription, error) {
	var cached models.Subscription
	found, err := s.cache.Get(cacheKey(uid), &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey(uid)), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	sub, err := s.repo.GetSubscription(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func checkOwnership(sub *models.Subscription, callerUID, callerRole string) error {
	if sub.UserUID != callerUID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
