// Package testimonial содержит бизнес-логику отзывов клиентов.
package testimonial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// ErrNotFound возвращается, если отзыв не существует.
var ErrNotFound = errors.New("testimonial not found")

// Repository определяет методы для работы с отзывами в хранилище.
type Repository interface {
	// CreateTestimonial сохраняет отзыв и возвращает его ID.
	CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error)
	// ListTestimonials возвращает отзывы, новые первыми.
	ListTestimonials(ctx context.Context) ([]*models.Testimonial, error)
	// RemoveTestimonial удаляет отзыв по ID.
	RemoveTestimonial(ctx context.Context, id int) (int64, error)
}

// Service реализует бизнес-логику отзывов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет публичный отзыв. customerUID заполняется, если отзыв
// оставил авторизованный пользователь.
func (s *Service) Create(ctx context.Context, req models.DummyTestimonial, customerUID *string) (int, error) {
	const op = "services.testimonial.Create"

	id, err := s.repo.CreateTestimonial(ctx, models.Testimonial{
		CustomerName:  req.CustomerName,
		ReviewMessage: req.ReviewMessage,
		Rating:        req.Rating,
		CustomerUID:   customerUID,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created testimonial", slog.Int("id", id))
	return id, nil
}

// List возвращает все отзывы для отображения.
func (s *Service) List(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "services.testimonial.List"

	result, err := s.repo.ListTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Remove удаляет отзыв по ID. Доступно только администратору,
// проверка роли выполняется на уровне маршрутов.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.testimonial.Remove"

	rows, err := s.repo.RemoveTestimonial(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.log.Info("removed testimonial", slog.Int("id", id))
	return nil
}
