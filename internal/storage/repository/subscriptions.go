package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Наборы meal_types и delivery_days хранятся в колонках JSONB,
// маршалинг выполняется на границе хранилища.

func marshalSet(set []string) ([]byte, error) {
	return json.Marshal(set)
}

func scanSubscriptionRow(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	var sub models.Subscription
	var mealTypes, deliveryDays []byte
	var allergies sql.NullString
	var endDate sql.NullTime

	if err := row.Scan(&sub.UID, &sub.UserUID, &sub.PlanID, &sub.Name, &sub.Phone,
		&mealTypes, &deliveryDays, &allergies, &sub.TotalPrice, &sub.Status,
		&sub.StartDate, &endDate, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mealTypes, &sub.MealTypes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(deliveryDays, &sub.DeliveryDays); err != nil {
		return nil, err
	}
	if allergies.Valid {
		sub.Allergies = allergies.String
	}
	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}
	return &sub, nil
}

const subscriptionColumns = `uid, user_uid, plan_id, name, phone, meal_types,
			      delivery_days, allergies, total_price, status, start_date,
			      end_date, created_at, updated_at`

// CreateSubscription вставляет новую подписку и возвращает её UID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	mealTypes, err := marshalSet(sub.MealTypes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	deliveryDays, err := marshalSet(sub.DeliveryDays)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO subscriptions (uid, user_uid, plan_id, name, phone,
			      meal_types, delivery_days, allergies, total_price, status, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING uid`
	var newUID string
	err = s.DB.QueryRowContext(ctx, query,
		sub.UID, sub.UserUID, sub.PlanID, sub.Name, sub.Phone,
		mealTypes, deliveryDays, nullString(sub.Allergies), sub.TotalPrice,
		sub.Status, sub.StartDate, sub.EndDate).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetSubscription возвращает подписку по её UID.
func (s *Storage) GetSubscription(ctx context.Context, uid string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE uid = $1`
	sub, err := scanSubscriptionRow(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpdateSubscription обновляет изменяемые поля подписки по UID
// и возвращает количество обновлённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	mealTypes, err := marshalSet(sub.MealTypes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	deliveryDays, err := marshalSet(sub.DeliveryDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE subscriptions
			  SET plan_id = $1, name = $2, phone = $3, meal_types = $4,
			      delivery_days = $5, allergies = $6, total_price = $7,
			      status = $8, end_date = $9, updated_at = now()
			  WHERE uid = $10`
	result, err := s.DB.ExecContext(ctx, query,
		sub.PlanID, sub.Name, sub.Phone, mealTypes, deliveryDays,
		nullString(sub.Allergies), sub.TotalPrice, sub.Status, sub.EndDate, sub.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveSubscription удаляет подписку по UID и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, uid string) (int64, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListSubscriptionsByUser возвращает подписки пользователя, новые первыми.
func (s *Storage) ListSubscriptionsByUser(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscriptionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
