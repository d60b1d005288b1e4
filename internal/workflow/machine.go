package workflow

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mentorlink/mentorbot/internal/model"
)

// State состояние визарда записи на сессию
type State string

const (
	StateSelectingSlot       State = "selecting_slot"       // Пользователь выбирает слот в календаре
	StateConfirmingDetails   State = "confirming_details"   // Пользователь вводит тему и описание
	StateReviewingSubmission State = "reviewing_submission" // Проверка заявки перед отправкой
	StateSubmitting          State = "submitting"           // Запрос к платформе в полёте
	StateSucceeded           State = "succeeded"            // Заявка создана (терминальное)
	StateFailed              State = "failed"               // Отправка не удалась, можно повторить
)

// Event событие, переводящее визард между состояниями
type Event string

const (
	EventSlotSelected     Event = "slot_selected"
	EventDetailsConfirmed Event = "details_confirmed"
	EventEditDetails      Event = "edit_details"
	EventSubmit           Event = "submit"
	EventSubmitSucceeded  Event = "submit_succeeded"
	EventSubmitFailed     Event = "submit_failed"
	EventRetry            Event = "retry"
	EventCancel           Event = "cancel"
)

var (
	ErrInvalidTransition   = errors.New("invalid workflow transition")
	ErrCancelWhileInFlight = errors.New("cannot cancel while submission is in flight")
	ErrNoSlotSelected      = errors.New("no slot selected")
	ErrEmptyTopic          = errors.New("topic is required")
	ErrTopicTooLong        = errors.New("topic is too long")
	ErrDescriptionTooLong  = errors.New("description is too long")
)

// Transition чистая функция переходов визарда.
// Не трогает черновик и не выполняет побочных эффектов — только отвечает,
// в какое состояние переходит машина по событию.
func Transition(state State, event Event) (State, error) {
	// Отмена разрешена из любого состояния, кроме Submitting:
	// пока запрос в полёте, пользовательский ввод не принимается
	if event == EventCancel {
		if state == StateSubmitting {
			return state, ErrCancelWhileInFlight
		}
		return StateSelectingSlot, nil
	}

	switch state {
	case StateSelectingSlot:
		if event == EventSlotSelected {
			return StateConfirmingDetails, nil
		}
	case StateConfirmingDetails:
		if event == EventDetailsConfirmed {
			return StateReviewingSubmission, nil
		}
	case StateReviewingSubmission:
		switch event {
		case EventSubmit:
			return StateSubmitting, nil
		case EventEditDetails:
			return StateConfirmingDetails, nil
		}
	case StateSubmitting:
		switch event {
		case EventSubmitSucceeded:
			return StateSucceeded, nil
		case EventSubmitFailed:
			return StateFailed, nil
		}
	case StateFailed:
		if event == EventRetry {
			return StateReviewingSubmission, nil
		}
	case StateSucceeded:
		// Терминальное состояние этого взаимодействия
	}

	return state, ErrInvalidTransition
}

// Machine визард записи: состояние плюс черновик заявки.
// Один экземпляр обслуживает ровно одно взаимодействие одного пользователя,
// но Telegram доставляет апдейты этого пользователя на разных горутинах,
// поэтому каждый метод берёт мьютекс. Двойное нажатие на кнопку отправки
// даёт ровно один переход в Submitting, второй вызов получает
// ErrInvalidTransition.
type Machine struct {
	mu      sync.Mutex
	state   State
	draft   *model.BookingDraft
	failure string // сообщение последней неудачной отправки
}

// NewMachine создаёт визард в начальном состоянии
func NewMachine() *Machine {
	return &Machine{state: StateSelectingSlot}
}

// State возвращает текущее состояние визарда
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Draft возвращает текущий черновик (nil до выбора слота)
func (m *Machine) Draft() *model.BookingDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Failure возвращает сообщение последней неудачной отправки
func (m *Machine) Failure() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failure
}

// SelectSlot фиксирует выбранный слот и создаёт черновик заявки.
// Ключ идемпотентности генерируется один раз: повторная отправка после
// неудачи уйдёт с тем же ключом, и платформа сможет отсечь дубликат.
func (m *Machine) SelectSlot(mentor *model.Mentor, slot model.ResolvedSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Transition(m.state, EventSlotSelected)
	if err != nil {
		return err
	}

	m.draft = &model.BookingDraft{
		MentorID:       mentor.ID,
		MentorName:     mentor.Name,
		Slot:           &slot,
		IdempotencyKey: uuid.New().String(),
	}
	m.state = next
	return nil
}

// SetTopic сохраняет тему сессии (обязательна, 1-500 символов после trim)
func (m *Machine) SetTopic(topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConfirmingDetails {
		return ErrInvalidTransition
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ErrEmptyTopic
	}
	if len([]rune(topic)) > model.TopicMaxLength {
		return ErrTopicTooLong
	}

	m.draft.Topic = topic
	return nil
}

// SetDescription сохраняет необязательное описание (до 2000 символов)
func (m *Machine) SetDescription(description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConfirmingDetails {
		return ErrInvalidTransition
	}

	description = strings.TrimSpace(description)
	if len([]rune(description)) > model.DescriptionMaxLength {
		return ErrDescriptionTooLong
	}

	m.draft.Description = description
	return nil
}

// ConfirmDetails переводит визард к проверке заявки.
// Переход заблокирован, пока тема пустая — это единственные «ворота» шага.
func (m *Machine) ConfirmDetails() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateConfirmingDetails {
		if m.draft == nil || m.draft.Slot == nil {
			return ErrNoSlotSelected
		}
		if strings.TrimSpace(m.draft.Topic) == "" {
			return ErrEmptyTopic
		}
	}

	next, err := Transition(m.state, EventDetailsConfirmed)
	if err != nil {
		return err
	}
	m.state = next
	return nil
}

// EditDetails возвращает визард с проверки к редактированию темы и описания
func (m *Machine) EditDetails() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Transition(m.state, EventEditDetails)
	if err != nil {
		return err
	}
	m.state = next
	return nil
}

// BeginSubmit переводит визард в Submitting и возвращает тело заявки.
// Пока визард в Submitting, повторный вызов невозможен — один черновик
// не может иметь двух запросов в полёте.
// Повторная отправка после неудачи собирает байт-в-байт тот же payload,
// если пользователь ничего не редактировал.
func (m *Machine) BeginSubmit() (model.BookingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Transition(m.state, EventSubmit)
	if err != nil {
		return model.BookingRequest{}, err
	}
	if m.draft == nil || m.draft.Slot == nil {
		return model.BookingRequest{}, ErrNoSlotSelected
	}

	m.state = next
	return model.BookingRequest{
		MentorID:    m.draft.MentorID,
		SessionDate: m.draft.Slot.Date,
		StartTime:   m.draft.Slot.StartTime,
		EndTime:     m.draft.Slot.EndTime,
		Topic:       m.draft.Topic,
		Description: m.draft.Description,
	}, nil
}

// CompleteSubmit фиксирует результат отправки
func (m *Machine) CompleteSubmit(submissionErr error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	event := EventSubmitSucceeded
	if submissionErr != nil {
		event = EventSubmitFailed
	}

	next, err := Transition(m.state, event)
	if err != nil {
		return err
	}

	m.state = next
	if submissionErr != nil {
		m.failure = submissionErr.Error()
	} else {
		m.failure = ""
		m.draft = nil // черновик уничтожается при успешной отправке
	}
	return nil
}

// Retry возвращает визард с неудачи на шаг проверки.
// Черновик остаётся прежним: слот, тема, описание и ключ идемпотентности
// не меняются, пока пользователь сам их не отредактирует.
func (m *Machine) Retry() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Transition(m.state, EventRetry)
	if err != nil {
		return err
	}
	m.state = next
	m.failure = ""
	return nil
}

// Cancel прерывает визард и уничтожает черновик.
// Запрещена только во время отправки.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := Transition(m.state, EventCancel)
	if err != nil {
		return err
	}
	m.state = next
	m.draft = nil
	m.failure = ""
	return nil
}
