package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Агрегирующие запросы панели администратора. Каждый запрос независим,
// сервис метрик выполняет их параллельно и отказывает целиком при
// ошибке любого из них.

// CountNewSubscriptions считает активные подписки, созданные в периоде [from, to].
func (s *Storage) CountNewSubscriptions(ctx context.Context, from, to time.Time) (int, error) {
	const op = "storage.CountNewSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM subscriptions
			  WHERE created_at >= $1 AND created_at <= $2
			    AND status = 'active'`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SumMRR возвращает месячную регулярную выручку: сумму total_price
// по подпискам, активным на дату to (созданы не позже to, дата окончания
// отсутствует или не раньше to).
func (s *Storage) SumMRR(ctx context.Context, to time.Time) (int64, error) {
	const op = "storage.SumMRR"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(total_price), 0)
			  FROM subscriptions
			  WHERE status = 'active'
			    AND created_at <= $1
			    AND (end_date IS NULL OR end_date >= $1)`
	var sum int64
	if err := s.DB.QueryRowContext(ctx, query, to).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}

// CountActiveAsOf считает подписки, активные на дату to по тому же
// предикату, что и SumMRR.
func (s *Storage) CountActiveAsOf(ctx context.Context, to time.Time) (int, error) {
	const op = "storage.CountActiveAsOf"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM subscriptions
			  WHERE status = 'active'
			    AND created_at <= $1
			    AND (end_date IS NULL OR end_date >= $1)`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountReactivations считает активные подписки с непустой датой окончания,
// обновлённые в периоде [from, to]. Это эвристика по текущему снимку
// состояния, а не журнал переходов статусов.
func (s *Storage) CountReactivations(ctx context.Context, from, to time.Time) (int, error) {
	const op = "storage.CountReactivations"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM subscriptions
			  WHERE status = 'active'
			    AND end_date IS NOT NULL
			    AND updated_at >= $1 AND updated_at <= $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountActiveByPlan группирует активные подписки по планам, имя и цвет
// плана передаются для отображения.
func (s *Storage) CountActiveByPlan(ctx context.Context) ([]*models.PlanDistribution, error) {
	const op = "storage.CountActiveByPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.name, p.color, COUNT(s.uid)
			  FROM meal_plans p
			  LEFT JOIN subscriptions s ON s.plan_id = p.id AND s.status = 'active'
			  GROUP BY p.id, p.name, p.color
			  ORDER BY p.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PlanDistribution
	for rows.Next() {
		var d models.PlanDistribution
		if err = rows.Scan(&d.PlanID, &d.Name, &d.Color, &d.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountGrowthDay возвращает счётчики одного дня [day, day+1): активные на
// конец дня, созданные за день и отменённые за день.
func (s *Storage) CountGrowthDay(ctx context.Context, day time.Time) (*models.GrowthPoint, error) {
	const op = "storage.CountGrowthDay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	nextDay := day.AddDate(0, 0, 1)
	query := `SELECT
			      (SELECT COUNT(*) FROM subscriptions
			       WHERE status = 'active' AND created_at < $2
			         AND (end_date IS NULL OR end_date >= $2)),
			      (SELECT COUNT(*) FROM subscriptions
			       WHERE created_at >= $1 AND created_at < $2),
			      (SELECT COUNT(*) FROM subscriptions
			       WHERE status = 'cancelled'
			         AND updated_at >= $1 AND updated_at < $2)`
	point := &models.GrowthPoint{Date: day.Format("2006-01-02")}
	if err := s.DB.QueryRowContext(ctx, query, day, nextDay).
		Scan(&point.Active, &point.New, &point.Cancelled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return point, nil
}
