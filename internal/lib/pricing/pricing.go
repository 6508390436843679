// Package pricing реализует расчет месячной стоимости подписки на питание.
//
// Стоимость считается по формуле: цена за блюдо × количество типов приёмов пищи ×
// количество дней доставки × среднее число недель в месяце (4.3).
package pricing

import (
	"fmt"
	"math"
	"strconv"
)

// WeeksPerMonth фиксированное среднее число недель в месяце.
// Используется вместо календарного расчета.
const WeeksPerMonth = 4.3

// Monthly возвращает месячную стоимость подписки в целых рупиях.
//
// pricePerMeal приходит из каталога в виде десятичной строки (NUMERIC из базы).
// mealTypes — количество выбранных типов приёмов пищи (от 1 до 3),
// deliveryDays — количество дней доставки в неделю (от 1 до 7).
// Результат округляется до ближайшей целой рупии, чтобы сумма не "плыла"
// при хранении и сложении.
func Monthly(pricePerMeal string, mealTypes, deliveryDays int) (int64, error) {
	const op = "pricing.Monthly"

	price, err := strconv.ParseFloat(pricePerMeal, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid price %q: %w", op, pricePerMeal, err)
	}
	if price < 0 {
		return 0, fmt.Errorf("%s: price must not be negative", op)
	}
	if mealTypes < 1 || mealTypes > 3 {
		return 0, fmt.Errorf("%s: meal types count must be between 1 and 3", op)
	}
	if deliveryDays < 1 || deliveryDays > 7 {
		return 0, fmt.Errorf("%s: delivery days count must be between 1 and 7", op)
	}

	total := price * float64(mealTypes) * float64(deliveryDays) * WeeksPerMonth
	return int64(math.Round(total)), nil
}
