package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/booking"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/mentors"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================
// These constants define the callback data formats used throughout the bot

// Mentor browsing callbacks
const (
	MentorsPage    = "mentors_page:" // mentors_page:0
	ViewMentor     = "mentor:"       // mentor:123
	ToggleFavorite = "fav:"          // fav:123
)

// Calendar callbacks
const (
	CalendarWeek = "cal:"     // cal:123:0 (mentorID:week)
	DayView      = "day:"     // day:123:0:2026-03-02
	DayViewAll   = "day_all:" // day_all:123:0:2026-03-02
	SelectSlot   = "slot:"    // slot:123:2026-03-02:0900:1030
)

// Booking wizard callbacks
const (
	WizardSubmit = "wizard_submit"
	WizardEdit   = "wizard_edit"
	WizardRetry  = "wizard_retry"
	WizardCancel = "wizard_cancel"

	JoinedCommunity = "joined_community"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Mentors =====
	case strings.HasPrefix(data, MentorsPage):
		mentors.HandleMentorsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewMentor):
		mentors.HandleViewMentor(ctx, b, callback, h)
	case strings.HasPrefix(data, ToggleFavorite):
		mentors.HandleToggleFavorite(ctx, b, callback, h)

	// ===== Calendar =====
	case strings.HasPrefix(data, CalendarWeek):
		booking.HandleCalendarPage(ctx, b, callback, h)
	case strings.HasPrefix(data, DayViewAll):
		booking.HandleDayView(ctx, b, callback, h)
	case strings.HasPrefix(data, DayView):
		booking.HandleDayView(ctx, b, callback, h)
	case strings.HasPrefix(data, SelectSlot):
		booking.HandleSlotSelected(ctx, b, callback, h)

	// ===== Booking Wizard =====
	case data == WizardSubmit:
		booking.HandleWizardSubmit(ctx, b, callback, h)
	case data == WizardEdit:
		booking.HandleWizardEdit(ctx, b, callback, h)
	case data == WizardRetry:
		booking.HandleWizardRetry(ctx, b, callback, h)
	case data == WizardCancel:
		booking.HandleWizardCancel(ctx, b, callback, h)
	case data == JoinedCommunity:
		booking.HandleJoinedCommunity(ctx, b, callback, h)

	case data == "noop":
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
