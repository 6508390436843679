package models

// MealPlan запись каталога планов питания. Создается сидом или администратором,
// читается меню и расчетом стоимости подписки, меняется редко.
type MealPlan struct {
	ID           int    `json:"id"`             // Идентификатор плана
	Name         string `json:"name"`           // Название плана (уникальное)
	PricePerMeal string `json:"price_per_meal"` // Цена за блюдо, десятичная строка (NUMERIC из базы)
	Description  string `json:"description"`    // Описание плана
	ImageURL     string `json:"image_url"`      // Ссылка на изображение
	Color        string `json:"color"`          // Цвет для отображения на графиках
}
