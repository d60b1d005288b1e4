package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "mentors_page:")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	// Кнопка "Предыдущая"
	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	// Индикатор страницы
	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		"noop",
	))

	// Кнопка "Следующая"
	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// WeekPagination создаёт пагинацию по неделям календаря.
// Листать можно только в пределах [0, totalWeeks) - дальше правил нет.
func WeekPagination(prefix string, week, totalWeeks int) []models.InlineKeyboardButton {
	if totalWeeks <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if week > 0 {
		buttons = append(buttons, Button("◀️ Пред. неделя", fmt.Sprintf("%s%d", prefix, week-1)))
	}
	buttons = append(buttons, Button(fmt.Sprintf("📅 %d/%d", week+1, totalWeeks), "noop"))
	if week < totalWeeks-1 {
		buttons = append(buttons, Button("След. неделя ▶️", fmt.Sprintf("%s%d", prefix, week+1)))
	}

	return buttons
}
