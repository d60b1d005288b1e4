package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/formatting"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorlink/mentorbot/internal/controller/state"
	"github.com/mentorlink/mentorbot/internal/model"
	"github.com/mentorlink/mentorbot/internal/platform"
	"github.com/mentorlink/mentorbot/internal/workflow"
	"go.uber.org/zap"
)

// successDismissAfter через сколько убирается сообщение об успешной записи
const successDismissAfter = 20 * time.Second

// HandleSlotSelected запускает визард записи с выбранным слотом.
// Формат callback: "slot:mentorID:date:HHMM:HHMM" (время без двоеточий).
func HandleSlotSelected(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	parts, err := common.ParseCallbackParts(callback.Data, 4)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	mentorID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	dateStr := parts[1]
	if _, err := formatting.ParseDate(dateStr); err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	startTime, err := decodeClock(parts[2])
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}
	endTime, err := decodeClock(parts[3])
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := hc.RequireUser(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	mentor, err := h.MentorService.GetMentor(ctx, mentorID)
	if err != nil || mentor == nil {
		h.Logger.Error("Failed to fetch mentor for booking",
			zap.Int64("mentor_id", mentorID),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(common.ErrMentorNotFound))
		return
	}

	slot := model.ResolvedSlot{
		Date:      dateStr,
		StartTime: startTime,
		EndTime:   endTime,
		Available: true,
	}

	machine := workflow.NewMachine()
	if err := machine.SelectSlot(mentor, slot); err != nil {
		h.Logger.Error("Failed to select slot", zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.SetWizard(machine)
	hc.SetState(callbacktypes.UserState(state.StateBookingTopic))

	h.Logger.Info("Booking wizard started",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Int64("mentor_id", mentorID),
		zap.String("date", dateStr),
		zap.String("start", startTime))

	// Дальше диалог идёт текстом, картинка календаря больше не нужна
	hc.DeleteMessage()
	hc.SendMessage(TopicPrompt(machine.Draft()), nil)
	hc.Answer("")
}

// TopicPrompt текст шага ввода темы
func TopicPrompt(draft *model.BookingDraft) string {
	return fmt.Sprintf(
		"📝 <b>Запись к %s</b>\n"+
			"🗓 %s, %s-%s\n\n"+
			"Введите тему сессии (обязательно, до %d символов).\n\n"+
			"/cancel - отменить запись",
		draft.MentorName,
		formatting.FormatDateWithWeekday(draft.Slot.Date),
		draft.Slot.StartTime,
		draft.Slot.EndTime,
		model.TopicMaxLength,
	)
}

// DescriptionPrompt текст шага ввода описания
func DescriptionPrompt() string {
	return fmt.Sprintf(
		"✍️ Добавьте описание: что хотите обсудить, какой контекст нужен ментору (до %d символов).\n\n"+
			"Отправьте «-», чтобы пропустить этот шаг.",
		model.DescriptionMaxLength,
	)
}

// BuildReviewScreen собирает экран проверки заявки перед отправкой
func BuildReviewScreen(machine *workflow.Machine) (string, *models.InlineKeyboardMarkup) {
	draft := machine.Draft()

	text := fmt.Sprintf(
		"📋 <b>Проверьте заявку</b>\n\n"+
			"🧑‍🏫 Ментор: %s\n"+
			"🗓 Дата: %s\n"+
			"🕑 Время: %s-%s\n"+
			"📝 Тема: %s\n",
		draft.MentorName,
		formatting.FormatDateWithWeekday(draft.Slot.Date),
		draft.Slot.StartTime,
		draft.Slot.EndTime,
		draft.Topic,
	)
	if draft.Description != "" {
		text += fmt.Sprintf("💬 Описание: %s\n", draft.Description)
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Отправить", "wizard_submit")).
		Row(keyboard.Button("✏️ Изменить", "wizard_edit")).
		Row(keyboard.Button("❌ Отменить", "wizard_cancel")).
		Build()

	return text, kb
}

// HandleWizardSubmit отправляет заявку на платформу
func HandleWizardSubmit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	machine, err := hc.Wizard()
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := hc.RequireUser(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	booking, err := h.BookingService.Submit(ctx, machine)
	if err != nil {
		showFailure(hc, machine, err)
		return
	}

	hc.ClearState()
	hc.Answer("🎉 Заявка отправлена")

	text := fmt.Sprintf(
		"🎉 <b>Заявка отправлена!</b>\n\n"+
			"Запись #%d, статус: %s\n"+
			"Ментор свяжется с вами после подтверждения.",
		booking.ID,
		bookingStatusLabel(booking.Status),
	)
	if err := hc.EditMessage(text, nil); err != nil {
		h.Logger.Error("Failed to show booking success", zap.Error(err))
		return
	}

	scheduleDismiss(b, hc.ChatID, hc.Message.ID)

	if !hc.User.IsMember && h.CommunityInviteURL != "" {
		sendCommunityInvite(hc)
	}
}

// showFailure показывает ошибку отправки, не разрушая черновик.
// Текст ошибки платформы выводится дословно.
func showFailure(hc *common.HandlerContext, machine *workflow.Machine, err error) {
	h := hc.Handler

	var authErr *platform.AuthRequiredError
	if errors.As(err, &authErr) {
		hc.Answer("")
		kb := keyboard.NewBuilder().
			Row(keyboard.URLButton("🔐 Войти на платформу", authErr.LoginURL)).
			Row(keyboard.Button("🔁 Повторить", "wizard_retry")).
			Row(keyboard.Button("❌ Отменить", "wizard_cancel")).
			Build()

		text := "🔐 <b>Нужна авторизация</b>\n\n" +
			"Платформа не узнала вас. Войдите по кнопке ниже - после входа вы вернётесь к этой записи, " +
			"затем нажмите «Повторить».\n\nЧерновик заявки сохранён."
		if editErr := hc.EditMessage(text, kb); editErr != nil {
			h.Logger.Error("Failed to show auth screen", zap.Error(editErr))
		}
		return
	}

	if machine.State() != workflow.StateFailed {
		// Ошибка самого визарда (не платформы) - черновика могло и не быть
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.Answer("")
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔁 Повторить", "wizard_retry")).
		Row(keyboard.Button("❌ Отменить", "wizard_cancel")).
		Build()

	text := fmt.Sprintf(
		"❌ <b>Не удалось отправить заявку</b>\n\n%s\n\n"+
			"Черновик сохранён: слот, тема и описание не потерялись. Можно повторить отправку.",
		machine.Failure(),
	)
	if editErr := hc.EditMessage(text, kb); editErr != nil {
		h.Logger.Error("Failed to show booking failure", zap.Error(editErr))
	}
}

// HandleWizardRetry повторяет отправку после неудачи с тем же черновиком
func HandleWizardRetry(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	machine, err := hc.Wizard()
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := machine.Retry(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	text, kb := BuildReviewScreen(machine)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show review screen", zap.Error(err))
	}
	hc.Answer("")
}

// HandleWizardEdit возвращает визард к вводу темы и описания
func HandleWizardEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	machine, err := hc.Wizard()
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := machine.EditDetails(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.SetState(callbacktypes.UserState(state.StateBookingTopic))
	if err := hc.EditMessage(TopicPrompt(machine.Draft()), nil); err != nil {
		h.Logger.Error("Failed to show topic prompt", zap.Error(err))
	}
	hc.Answer("")
}

// HandleWizardCancel прерывает визард.
// Единственный момент, когда отмена невозможна - пока заявка в полёте.
func HandleWizardCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	machine, err := hc.Wizard()
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := machine.Cancel(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.ClearState()
	if err := hc.EditMessage("✅ Запись отменена.\n\nПосмотреть менторов: /mentors", nil); err != nil {
		h.Logger.Error("Failed to show cancel confirmation", zap.Error(err))
	}
	hc.Answer("")
}

// HandleJoinedCommunity отмечает пользователя участником сообщества
func HandleJoinedCommunity(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireUser(); err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := h.UserService.MarkMember(ctx, hc.User.ID); err != nil {
		h.Logger.Error("Failed to mark member", zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.Answer("🤝 Добро пожаловать!")
	if err := hc.EditMessage("🤝 <b>Добро пожаловать в сообщество!</b>\n\nТеперь вы будете видеть анонсы и материалы менторов.", nil); err != nil {
		h.Logger.Error("Failed to show member confirmation", zap.Error(err))
	}
}

// sendCommunityInvite шлёт приглашение в сообщество после первой записи
func sendCommunityInvite(hc *common.HandlerContext) {
	kb := keyboard.NewBuilder().
		Row(keyboard.URLButton("🤝 Вступить в сообщество", hc.Handler.CommunityInviteURL)).
		Row(keyboard.Button("✅ Я уже вступил", "joined_community")).
		Build()

	text := "🤝 <b>Вы ещё не в сообществе</b>\n\n" +
		"Менторы публикуют там материалы и анонсы. Вступайте, чтобы ничего не пропустить!"

	if err := hc.SendMessage(text, kb); err != nil {
		hc.Handler.Logger.Warn("Failed to send community invite", zap.Error(err))
	}
}

// scheduleDismiss убирает сообщение об успехе через successDismissAfter.
// Исходный контекст к этому моменту уже завершён, берём свежий.
func scheduleDismiss(b *bot.Bot, chatID int64, messageID int) {
	time.AfterFunc(successDismissAfter, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: messageID,
		})
	})
}

// bookingStatusLabel человекочитаемый статус записи
func bookingStatusLabel(status model.BookingStatus) string {
	switch status {
	case model.BookingStatusPending:
		return "⏳ ожидает подтверждения"
	case model.BookingStatusConfirmed:
		return "✅ подтверждена"
	case model.BookingStatusCompleted:
		return "🏁 завершена"
	case model.BookingStatusCanceled:
		return "🚫 отменена"
	default:
		return string(status)
	}
}
