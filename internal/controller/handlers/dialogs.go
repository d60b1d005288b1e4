package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	bookingcb "github.com/mentorlink/mentorbot/internal/controller/callbacks/booking"
	"github.com/mentorlink/mentorbot/internal/controller/state"
	"github.com/mentorlink/mentorbot/internal/model"
	"github.com/mentorlink/mentorbot/internal/workflow"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		return
	}

	h.logger.Info("Dialog message received",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateBookingTopic:
		h.handleBookingTopicStep(ctx, b, update)
	case state.StateBookingDescription:
		h.handleBookingDescriptionStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}

// handleBookingTopicStep обрабатывает ввод темы сессии
func (h *Handlers) handleBookingTopicStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	machine := h.wizardFor(telegramID)
	if machine == nil {
		h.logger.Error("Booking topic step without wizard", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Запись не найдена. Начните заново через /mentors",
		})
		return
	}

	if err := machine.SetTopic(update.Message.Text); err != nil {
		text := topicErrorText(err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})
		return
	}

	h.stateManager.SetState(telegramID, state.StateBookingDescription)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      bookingcb.DescriptionPrompt(),
		ParseMode: models.ParseModeHTML,
	})
}

// handleBookingDescriptionStep обрабатывает ввод описания.
// Сообщение «-» пропускает шаг, описание остаётся пустым.
func (h *Handlers) handleBookingDescriptionStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	machine := h.wizardFor(telegramID)
	if machine == nil {
		h.logger.Error("Booking description step without wizard", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Запись не найдена. Начните заново через /mentors",
		})
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text != "-" {
		if err := machine.SetDescription(text); err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text: fmt.Sprintf("❌ Описание слишком длинное (максимум %d символов).\n\n"+
					"Сократите текст или отправьте «-», чтобы пропустить.", model.DescriptionMaxLength),
			})
			return
		}
	}

	if err := machine.ConfirmDetails(); err != nil {
		h.logger.Error("Failed to confirm booking details", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   topicErrorText(err),
		})
		return
	}

	// Текстовый ввод закончен, дальше пользователь работает кнопками
	h.stateManager.SetState(telegramID, state.StateNone)

	reviewText, kb := bookingcb.BuildReviewScreen(machine)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        reviewText,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
}

// topicErrorText сообщение об ошибке ввода темы
func topicErrorText(err error) string {
	switch {
	case errors.Is(err, workflow.ErrEmptyTopic):
		return "❌ Тема не может быть пустой.\n\nВведите тему сессии или /cancel для отмены."
	case errors.Is(err, workflow.ErrTopicTooLong):
		return fmt.Sprintf("❌ Тема слишком длинная (максимум %d символов).\n\nСократите и отправьте ещё раз.", model.TopicMaxLength)
	default:
		return "❌ Не удалось сохранить ввод. Попробуйте ещё раз или /cancel."
	}
}
