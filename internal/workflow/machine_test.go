package workflow

import (
	"errors"
	"sync"
	"testing"

	"github.com/mentorlink/mentorbot/internal/model"
)

var testMentor = &model.Mentor{ID: 7, Name: "Anna", Timezone: "Europe/Berlin"}

var testSlot = model.ResolvedSlot{
	Date:      "2026-03-02",
	StartTime: "09:00",
	EndTime:   "10:00",
	Available: true,
}

func machineAtReview(t *testing.T) *Machine {
	t.Helper()

	m := NewMachine()
	if err := m.SelectSlot(testMentor, testSlot); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if err := m.SetTopic("Career advice"); err != nil {
		t.Fatalf("SetTopic: %v", err)
	}
	if err := m.ConfirmDetails(); err != nil {
		t.Fatalf("ConfirmDetails: %v", err)
	}
	return m
}

func TestTransition_HappyPath(t *testing.T) {
	steps := []struct {
		from  State
		event Event
		want  State
	}{
		{StateSelectingSlot, EventSlotSelected, StateConfirmingDetails},
		{StateConfirmingDetails, EventDetailsConfirmed, StateReviewingSubmission},
		{StateReviewingSubmission, EventSubmit, StateSubmitting},
		{StateSubmitting, EventSubmitSucceeded, StateSucceeded},
	}

	for _, s := range steps {
		got, err := Transition(s.from, s.event)
		if err != nil {
			t.Fatalf("Transition(%s, %s): %v", s.from, s.event, err)
		}
		if got != s.want {
			t.Fatalf("Transition(%s, %s) = %s, want %s", s.from, s.event, got, s.want)
		}
	}
}

func TestTransition_FailedIsNotTerminal(t *testing.T) {
	state, err := Transition(StateSubmitting, EventSubmitFailed)
	if err != nil || state != StateFailed {
		t.Fatalf("expected Failed, got %s (%v)", state, err)
	}

	state, err = Transition(StateFailed, EventRetry)
	if err != nil || state != StateReviewingSubmission {
		t.Fatalf("expected retry back to review, got %s (%v)", state, err)
	}
}

func TestTransition_CancelRules(t *testing.T) {
	for _, from := range []State{StateSelectingSlot, StateConfirmingDetails, StateReviewingSubmission, StateFailed} {
		got, err := Transition(from, EventCancel)
		if err != nil {
			t.Fatalf("cancel from %s: %v", from, err)
		}
		if got != StateSelectingSlot {
			t.Fatalf("cancel from %s = %s, want selecting_slot", from, got)
		}
	}

	if _, err := Transition(StateSubmitting, EventCancel); !errors.Is(err, ErrCancelWhileInFlight) {
		t.Fatalf("cancel while submitting: expected ErrCancelWhileInFlight, got %v", err)
	}
}

func TestTransition_RejectsInvalidEvents(t *testing.T) {
	if _, err := Transition(StateSelectingSlot, EventSubmit); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := Transition(StateSucceeded, EventRetry); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("succeeded must be terminal, got %v", err)
	}
}

func TestMachine_TopicValidationGatesReview(t *testing.T) {
	m := NewMachine()
	if err := m.SelectSlot(testMentor, testSlot); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	// empty and whitespace-only topics block the step
	if err := m.SetTopic(""); !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("empty topic: expected ErrEmptyTopic, got %v", err)
	}
	if err := m.SetTopic("   "); !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("whitespace topic: expected ErrEmptyTopic, got %v", err)
	}
	if err := m.ConfirmDetails(); !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("confirm without topic: expected ErrEmptyTopic, got %v", err)
	}
	if m.State() != StateConfirmingDetails {
		t.Fatalf("machine must stay in confirming_details, got %s", m.State())
	}

	// one trimmed character is enough
	if err := m.SetTopic(" a "); err != nil {
		t.Fatalf("one-char topic: %v", err)
	}
	if m.Draft().Topic != "a" {
		t.Fatalf("topic must be trimmed, got %q", m.Draft().Topic)
	}
	if err := m.ConfirmDetails(); err != nil {
		t.Fatalf("ConfirmDetails: %v", err)
	}
	if m.State() != StateReviewingSubmission {
		t.Fatalf("expected reviewing_submission, got %s", m.State())
	}
}

func TestMachine_LengthLimits(t *testing.T) {
	m := NewMachine()
	if err := m.SelectSlot(testMentor, testSlot); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}

	long := make([]rune, model.TopicMaxLength+1)
	for i := range long {
		long[i] = 'x'
	}
	if err := m.SetTopic(string(long)); !errors.Is(err, ErrTopicTooLong) {
		t.Fatalf("expected ErrTopicTooLong, got %v", err)
	}

	longDesc := make([]rune, model.DescriptionMaxLength+1)
	for i := range longDesc {
		longDesc[i] = 'y'
	}
	if err := m.SetDescription(string(longDesc)); !errors.Is(err, ErrDescriptionTooLong) {
		t.Fatalf("expected ErrDescriptionTooLong, got %v", err)
	}

	// description is optional, empty is fine
	if err := m.SetDescription(""); err != nil {
		t.Fatalf("empty description: %v", err)
	}
}

func TestMachine_RetryReusesDraft(t *testing.T) {
	m := machineAtReview(t)
	if err := m.SetDescription(""); err == nil {
		t.Fatalf("SetDescription must be rejected outside confirming_details")
	}

	key := m.Draft().IdempotencyKey
	if key == "" {
		t.Fatalf("draft must carry an idempotency key")
	}

	first, err := m.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if err := m.CompleteSubmit(errors.New("Slot no longer available")); err != nil {
		t.Fatalf("CompleteSubmit: %v", err)
	}
	if m.State() != StateFailed {
		t.Fatalf("expected failed, got %s", m.State())
	}
	if m.Failure() != "Slot no longer available" {
		t.Fatalf("failure message not retained: %q", m.Failure())
	}

	if err := m.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	second, err := m.BeginSubmit()
	if err != nil {
		t.Fatalf("second BeginSubmit: %v", err)
	}

	if first != second {
		t.Fatalf("retry must send an identical payload:\n%+v\n%+v", first, second)
	}
	if m.Draft().IdempotencyKey != key {
		t.Fatalf("idempotency key changed on retry")
	}
}

func TestMachine_NoConcurrentSubmissions(t *testing.T) {
	m := machineAtReview(t)

	if _, err := m.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if _, err := m.BeginSubmit(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second submit while in flight: expected ErrInvalidTransition, got %v", err)
	}
	if err := m.Cancel(); !errors.Is(err, ErrCancelWhileInFlight) {
		t.Fatalf("cancel while in flight: expected ErrCancelWhileInFlight, got %v", err)
	}
}

func TestMachine_ParallelSubmitsSingleFlight(t *testing.T) {
	m := machineAtReview(t)

	// Telegram доставляет апдейты на разных горутинах: двойное нажатие
	// на кнопку отправки даёт два параллельных BeginSubmit.
	// Payload должен получить ровно один из них.
	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.BeginSubmit()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d submissions entered flight, want exactly 1", succeeded)
	}
	if m.State() != StateSubmitting {
		t.Fatalf("expected submitting, got %s", m.State())
	}
}

func TestMachine_ParallelCancelNeverInterruptsFlight(t *testing.T) {
	m := machineAtReview(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		m.BeginSubmit()
	}()
	go func() {
		defer wg.Done()
		m.Cancel()
	}()
	wg.Wait()

	// Либо отмена успела раньше отправки, либо заявка в полёте с живым
	// черновиком. Состояния, где отправка идёт без черновика, быть не может.
	switch m.State() {
	case StateSubmitting:
		if m.Draft() == nil {
			t.Fatal("in-flight submission lost its draft")
		}
	case StateSelectingSlot:
		if m.Draft() != nil {
			t.Fatal("cancel must discard the draft")
		}
	default:
		t.Fatalf("unexpected state %s", m.State())
	}
}

func TestMachine_SuccessDiscardsDraft(t *testing.T) {
	m := machineAtReview(t)

	if _, err := m.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if err := m.CompleteSubmit(nil); err != nil {
		t.Fatalf("CompleteSubmit: %v", err)
	}

	if m.State() != StateSucceeded {
		t.Fatalf("expected succeeded, got %s", m.State())
	}
	if m.Draft() != nil {
		t.Fatalf("draft must be discarded on success")
	}
}

func TestMachine_CancelDiscardsDraft(t *testing.T) {
	m := machineAtReview(t)

	if err := m.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if m.State() != StateSelectingSlot {
		t.Fatalf("expected selecting_slot, got %s", m.State())
	}
	if m.Draft() != nil {
		t.Fatalf("draft must be discarded on cancel")
	}
}
