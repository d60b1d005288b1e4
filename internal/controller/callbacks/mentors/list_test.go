package mentors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mentorlink/mentorbot/internal/model"
)

func makeMentors(n int) []*model.Mentor {
	mentors := make([]*model.Mentor, n)
	for i := range mentors {
		mentors[i] = &model.Mentor{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("Ментор %d", i+1),
			IsActive: true,
		}
	}
	return mentors
}

func TestBuildListScreen_Pagination(t *testing.T) {
	all := makeMentors(12) // 3 страницы по 5

	_, kb := BuildListScreen(all, 0)

	// 5 менторов + ряд пагинации
	if len(kb.InlineKeyboard) != 6 {
		t.Fatalf("page 0 has %d rows, want 6", len(kb.InlineKeyboard))
	}
	if got := kb.InlineKeyboard[0][0].CallbackData; got != "mentor:1" {
		t.Errorf("first button = %q", got)
	}

	_, kb = BuildListScreen(all, 2)

	// Последняя страница: 2 ментора + пагинация
	if len(kb.InlineKeyboard) != 3 {
		t.Fatalf("page 2 has %d rows, want 3", len(kb.InlineKeyboard))
	}
	if got := kb.InlineKeyboard[0][0].CallbackData; got != "mentor:11" {
		t.Errorf("first button on last page = %q", got)
	}
}

func TestBuildListScreen_PageOutOfRange(t *testing.T) {
	all := makeMentors(3)

	// Запрошенная страница за пределами - показываем последнюю
	_, kb := BuildListScreen(all, 99)
	if got := kb.InlineKeyboard[0][0].CallbackData; got != "mentor:1" {
		t.Errorf("first button = %q", got)
	}

	_, kb = BuildListScreen(all, -1)
	if got := kb.InlineKeyboard[0][0].CallbackData; got != "mentor:1" {
		t.Errorf("first button = %q", got)
	}
}

func TestBuildListScreen_Empty(t *testing.T) {
	text, kb := BuildListScreen(nil, 0)

	if !strings.Contains(text, "нет ни одного") {
		t.Errorf("empty list text = %q", text)
	}
	if len(kb.InlineKeyboard) != 0 {
		t.Errorf("empty list has %d keyboard rows", len(kb.InlineKeyboard))
	}
}

func TestBuildListScreen_SinglePageHasNoPagination(t *testing.T) {
	all := makeMentors(4)

	_, kb := BuildListScreen(all, 0)
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("single page has %d rows, want 4 (no pagination)", len(kb.InlineKeyboard))
	}
}
