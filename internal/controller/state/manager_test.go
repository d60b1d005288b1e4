package state

import "testing"

func TestManager_StateLifecycle(t *testing.T) {
	sm := NewManager()
	const telegramID = int64(42)

	if got := sm.GetState(telegramID); got != StateNone {
		t.Fatalf("new user state = %q, want StateNone", got)
	}

	sm.SetState(telegramID, StateBookingTopic)
	if got := sm.GetState(telegramID); got != StateBookingTopic {
		t.Fatalf("state = %q, want %q", got, StateBookingTopic)
	}

	sm.SetState(telegramID, StateBookingDescription)
	if got := sm.GetState(telegramID); got != StateBookingDescription {
		t.Fatalf("state = %q, want %q", got, StateBookingDescription)
	}

	sm.ClearState(telegramID)
	if got := sm.GetState(telegramID); got != StateNone {
		t.Fatalf("state after clear = %q, want StateNone", got)
	}
}

func TestManager_DataSurvivesStateNone(t *testing.T) {
	sm := NewManager()
	const telegramID = int64(7)

	sm.SetData(telegramID, DataKeyWizard, "draft")
	sm.SetState(telegramID, StateBookingTopic)

	// Сброс состояния в StateNone не должен терять временные данные,
	// они живут до явного ClearState
	sm.SetState(telegramID, StateNone)

	value, ok := sm.GetData(telegramID, DataKeyWizard)
	if !ok {
		t.Fatal("data lost after SetState(StateNone)")
	}
	if value != "draft" {
		t.Fatalf("data = %v, want %q", value, "draft")
	}

	sm.ClearState(telegramID)
	if _, ok := sm.GetData(telegramID, DataKeyWizard); ok {
		t.Fatal("data survived ClearState")
	}
}

func TestManager_DeleteData(t *testing.T) {
	sm := NewManager()
	const telegramID = int64(9)

	sm.SetData(telegramID, "a", 1)
	sm.SetData(telegramID, "b", 2)

	sm.DeleteData(telegramID, "a")

	if _, ok := sm.GetData(telegramID, "a"); ok {
		t.Fatal("deleted key still present")
	}
	if _, ok := sm.GetData(telegramID, "b"); !ok {
		t.Fatal("unrelated key was deleted")
	}
}

func TestManager_UsersAreIsolated(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateBookingTopic)
	sm.SetData(1, "k", "v")

	if got := sm.GetState(2); got != StateNone {
		t.Fatalf("other user state = %q, want StateNone", got)
	}
	if _, ok := sm.GetData(2, "k"); ok {
		t.Fatal("other user sees foreign data")
	}
}
