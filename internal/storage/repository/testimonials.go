package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// CreateTestimonial сохраняет новый отзыв и возвращает его ID.
func (s *Storage) CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error) {
	const op = "storage.CreateTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var customerUID sql.NullString
	if t.CustomerUID != nil {
		customerUID = sql.NullString{String: *t.CustomerUID, Valid: true}
	}

	var newID int
	query := `INSERT INTO testimonials (customer_name, review_message, rating, customer_uid)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		t.CustomerName, t.ReviewMessage, t.Rating, customerUID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTestimonials возвращает отзывы, новые первыми.
func (s *Storage) ListTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "storage.ListTestimonials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_name, review_message, rating, customer_uid, created_at
			  FROM testimonials
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		var customerUID sql.NullString
		if err = rows.Scan(&t.ID, &t.CustomerName, &t.ReviewMessage,
			&t.Rating, &customerUID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if customerUID.Valid {
			t.CustomerUID = &customerUID.String
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveTestimonial удаляет отзыв по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveTestimonial(ctx context.Context, id int) (int64, error) {
	const op = "storage.RemoveTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM testimonials WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
