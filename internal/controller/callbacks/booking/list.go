package booking

import (
	"fmt"
	"strings"

	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/formatting"
	"github.com/mentorlink/mentorbot/internal/model"
)

// BuildMyBookingsScreen собирает текст списка записей пользователя
// для команды /mybookings. Записями владеет платформа, бот их только
// показывает.
func BuildMyBookingsScreen(bookings []*model.Booking) string {
	if len(bookings) == 0 {
		return "🗓 <b>Ваши записи</b>\n\n" +
			"Пока нет ни одной записи. Выберите ментора через /mentors и запишитесь на сессию."
	}

	var sb strings.Builder
	sb.WriteString("🗓 <b>Ваши записи</b>\n")

	for _, booking := range bookings {
		mentorName := fmt.Sprintf("Ментор #%d", booking.MentorID)
		if booking.Mentor != nil && booking.Mentor.Name != "" {
			mentorName = booking.Mentor.Name
		}

		sb.WriteString(fmt.Sprintf("\n• <b>%s, %s-%s</b>\n",
			formatting.FormatDateWithWeekday(booking.SessionDate),
			booking.StartTime,
			booking.EndTime,
		))
		sb.WriteString(fmt.Sprintf("  🧑‍🏫 %s\n", mentorName))
		sb.WriteString(fmt.Sprintf("  📝 %s\n", booking.Topic))
		sb.WriteString(fmt.Sprintf("  %s\n", bookingStatusLabel(booking.Status)))
	}

	return sb.String()
}
