package models

import "time"

// Testimonial отзыв клиента, отправляется публично, удаляется администратором.
// CustomerUID заполняется, если отзыв оставил авторизованный пользователь.
type Testimonial struct {
	ID            int       `json:"id"`             // Идентификатор отзыва
	CustomerName  string    `json:"customer_name"`  // Имя клиента
	ReviewMessage string    `json:"review_message"` // Текст отзыва
	Rating        int       `json:"rating"`         // Оценка от 1 до 5
	CustomerUID   *string   `json:"customer_uid,omitempty"` // Ссылка на пользователя (опционально)
	CreatedAt     time.Time `json:"created_at"`     // Дата создания
}

// DummyTestimonial используется для приёма отзыва из JSON-запроса.
type DummyTestimonial struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"` // Имя клиента
	ReviewMessage string `json:"review_message" validate:"required,min=3,max=1000"` // Текст отзыва
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`          // Оценка
}
