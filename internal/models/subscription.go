package models

import "time"

// Статусы подписки.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCancelled = "cancelled"
)

// Допустимые типы приёмов пищи.
var MealTypes = []string{"breakfast", "lunch", "dinner"}

// Допустимые дни доставки.
var DeliveryDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Subscription представляет подписку пользователя на план питания.
// EndDate может быть nil: у активной подписки даты окончания нет,
// у приостановленной она задает конец паузы.
// TotalPrice хранится в целых рупиях и пересчитывается при каждом
// изменении плана, типов приёмов пищи или дней доставки.
type Subscription struct {
	UID          string     `json:"uid"`            // Уникальный идентификатор подписки
	UserUID      string     `json:"user_uid"`       // Владелец подписки
	PlanID       int        `json:"plan_id"`        // Ссылка на план питания
	Name         string     `json:"name"`           // Имя получателя
	Phone        string     `json:"phone"`          // Контактный телефон
	MealTypes    []string   `json:"meal_types"`     // Выбранные приёмы пищи, непустой набор
	DeliveryDays []string   `json:"delivery_days"`  // Дни доставки, непустой набор
	Allergies    string     `json:"allergies,omitempty"` // Аллергии, свободный текст (опционально)
	TotalPrice   int64      `json:"total_price"`    // Месячная стоимость в целых рупиях
	Status       string     `json:"status"`         // active, paused или cancelled
	StartDate    time.Time  `json:"start_date"`     // Дата начала подписки
	EndDate      *time.Time `json:"end_date,omitempty"` // Дата окончания, зависит от статуса
	CreatedAt    time.Time  `json:"created_at"`     // Дата создания записи
	UpdatedAt    time.Time  `json:"updated_at"`     // Дата последнего изменения
}

// DummySubscription используется для приёма данных новой подписки из JSON-запроса.
type DummySubscription struct {
	PlanID       int      `json:"plan_id" validate:"required,gt=0"`                                                                            // План питания
	Name         string   `json:"name" validate:"required,min=2"`                                                                              // Имя получателя
	Phone        string   `json:"phone" validate:"required,min=8,max=20"`                                                                      // Телефон
	MealTypes    []string `json:"meal_types" validate:"required,min=1,max=3,unique,dive,oneof=breakfast lunch dinner"`                         // Типы приёмов пищи
	DeliveryDays []string `json:"delivery_days" validate:"required,min=1,max=7,unique,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"` // Дни доставки
	Allergies    string   `json:"allergies,omitempty" validate:"omitempty,max=500"`                                                            // Аллергии
}

// DummySubscriptionPatch частичное обновление подписки. Отсутствующие поля
// (nil) не трогаются, при изменении плана, приёмов пищи или дней доставки
// стоимость пересчитывается. Смена статуса проходит через машину состояний.
type DummySubscriptionPatch struct {
	PlanID       *int      `json:"plan_id,omitempty" validate:"omitempty,gt=0"`
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone        *string   `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	MealTypes    *[]string `json:"meal_types,omitempty" validate:"omitempty,min=1,max=3,unique,dive,oneof=breakfast lunch dinner"`
	DeliveryDays *[]string `json:"delivery_days,omitempty" validate:"omitempty,min=1,max=7,unique,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Allergies    *string   `json:"allergies,omitempty" validate:"omitempty,max=500"`
	Status       *string   `json:"status,omitempty" validate:"omitempty,oneof=active paused cancelled"`
	EndDate      *string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
