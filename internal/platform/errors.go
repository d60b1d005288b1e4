package platform

import "fmt"

// APIError ошибка, которую платформа вернула явным телом ответа.
// Message показывается пользователю дословно.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthRequiredError платформа ответила 401: нужна авторизация.
// LoginURL уже содержит обратный путь к прерванной записи.
type AuthRequiredError struct {
	LoginURL string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("authentication required: %s", e.LoginURL)
}
