package common

import (
	"errors"

	"github.com/mentorlink/mentorbot/internal/platform"
	"github.com/mentorlink/mentorbot/internal/workflow"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMentorNotFound = errors.New("mentor not found")
	ErrNoMessage      = errors.New("no message in callback")
	ErrInvalidFormat  = errors.New("invalid callback format")
	ErrNoActiveWizard = errors.New("no active booking wizard")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Текст ошибки платформы показывается дословно, без пересказа.
func ErrorMessage(err error) string {
	var apiErr *platform.APIError
	var authErr *platform.AuthRequiredError

	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrMentorNotFound):
		return "❌ Ментор не найден"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNoActiveWizard):
		return "❌ Нет активной записи. Начните заново через /mentors"
	case errors.Is(err, workflow.ErrEmptyTopic):
		return "❌ Тема сессии не может быть пустой"
	case errors.Is(err, workflow.ErrTopicTooLong):
		return "❌ Тема слишком длинная (максимум 500 символов)"
	case errors.Is(err, workflow.ErrDescriptionTooLong):
		return "❌ Описание слишком длинное (максимум 2000 символов)"
	case errors.Is(err, workflow.ErrCancelWhileInFlight):
		return "⏳ Заявка отправляется, подождите немного"
	case errors.As(err, &authErr):
		return "🔐 Требуется вход на платформу"
	case errors.As(err, &apiErr):
		return "❌ " + apiErr.Message
	default:
		return "❌ Произошла ошибка"
	}
}
