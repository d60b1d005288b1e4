package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения ментора
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждена
	BookingStatusCompleted BookingStatus = "completed" // Завершена
	BookingStatusCanceled  BookingStatus = "canceled"  // Отменена
)

// Ограничения полей заявки (валидируются до отправки на платформу)
const (
	TopicMaxLength       = 500
	DescriptionMaxLength = 2000
)

// BookingDraft черновик заявки на сессию. Живёт только внутри визарда:
// создаётся при выборе слота, уничтожается при отмене или успешной отправке.
type BookingDraft struct {
	MentorID       int64
	MentorName     string
	Slot           *ResolvedSlot
	Topic          string
	Description    string
	IdempotencyKey string // генерируется один раз, повторная отправка использует тот же ключ
}

// BookingRequest тело запроса на создание сессии в API платформы
type BookingRequest struct {
	MentorID    int64  `json:"mentor_id"`
	SessionDate string `json:"session_date"` // "YYYY-MM-DD"
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Topic       string `json:"topic"`
	Description string `json:"description,omitempty"`
}

// Booking запись о сессии, которой владеет платформа.
// Бот получает её в ответ на успешную отправку заявки.
type Booking struct {
	ID          int64         `json:"id"`
	MentorID    int64         `json:"mentor_id"`
	SessionDate string        `json:"session_date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Topic       string        `json:"topic"`
	Description string        `json:"description"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`

	// Дополнительные поля для удобства (не из API)
	Mentor *Mentor `json:"mentor,omitempty"`
}
