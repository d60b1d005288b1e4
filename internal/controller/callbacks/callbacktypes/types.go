package callbacktypes

import (
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	DeleteData(telegramID int64, key string)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService    *service.UserService
	MentorService  *service.MentorService
	BookingService *service.BookingService
	StateManager   StateManager
	Logger         *zap.Logger

	// Ссылка-приглашение в сообщество (пустая строка отключает CTA)
	CommunityInviteURL string

	// Путь к TTF для картинки календаря (пустая строка - встроенный шрифт)
	CalendarFontPath string
}
