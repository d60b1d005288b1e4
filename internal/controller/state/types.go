package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Шаги визарда записи, требующие текстового ввода
	StateBookingTopic       UserState = "booking_topic"
	StateBookingDescription UserState = "booking_description"
)

// Ключи временных данных диалога
const (
	DataKeyWizard = "wizard" // *workflow.Machine активного визарда
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
