package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// ListMealPlans возвращает каталог планов питания, отсортированный по цене.
func (s *Storage) ListMealPlans(ctx context.Context) ([]*models.MealPlan, error) {
	const op = "storage.ListMealPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price_per_meal, description, image_url, color
			  FROM meal_plans
			  ORDER BY price_per_meal`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MealPlan
	for rows.Next() {
		var p models.MealPlan
		if err = rows.Scan(&p.ID, &p.Name, &p.PricePerMeal, &p.Description,
			&p.ImageURL, &p.Color); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetMealPlan возвращает план питания по его ID.
func (s *Storage) GetMealPlan(ctx context.Context, id int) (*models.MealPlan, error) {
	const op = "storage.GetMealPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price_per_meal, description, image_url, color
			  FROM meal_plans
			  WHERE id = $1`
	p := &models.MealPlan{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Name, &p.PricePerMeal, &p.Description,
		&p.ImageURL, &p.Color); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
