package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	bookingcb "github.com/mentorlink/mentorbot/internal/controller/callbacks/booking"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/common/keyboard"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/mentors"
	"github.com/mentorlink/mentorbot/internal/controller/state"
	"github.com/mentorlink/mentorbot/internal/workflow"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From

	// Регистрируем пользователя
	user, err := h.userService.RegisterOrGet(
		ctx,
		from.ID,
		from.Username,
		from.FirstName,
		from.LastName,
		from.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот записи на менторские сессии.\n\n"+
			"Доступные команды:\n"+
			"/mentors - Посмотреть менторов\n"+
			"/favorites - Избранные менторы\n"+
			"/mybookings - Ваши записи на сессии\n"+
			"/cancel - Отменить текущую запись\n"+
			"/help - Справка",
		user.FirstName,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🧑‍🏫 Менторы", "mentors_page:0")).
		Build()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        welcomeText,
		ReplyMarkup: kb,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/mentors - Список менторов сообщества\n" +
		"/favorites - Ваши избранные менторы\n" +
		"/mybookings - Ваши записи на сессии\n" +
		"/cancel - Отменить текущую запись\n" +
		"/help - Показать эту справку\n\n" +
		"Чтобы записаться на сессию: выберите ментора из /mentors, " +
		"откройте его календарь, выберите свободный слот и заполните тему."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleMentors обрабатывает команду /mentors
func (h *Handlers) HandleMentors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	allMentors, err := h.mentorService.ListMentors(ctx)
	if err != nil {
		h.logger.Error("Failed to list mentors", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не удалось загрузить список менторов. Попробуйте позже.",
		})
		return
	}

	text, kb := mentors.BuildListScreen(allMentors, 0)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
}

// HandleFavorites обрабатывает команду /favorites
func (h *Handlers) HandleFavorites(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Пользователь не найден. Используйте /start",
		})
		return
	}

	mentorIDs, err := h.userService.ListFavorites(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to list favorites", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не удалось загрузить избранное. Попробуйте позже.",
		})
		return
	}

	if len(mentorIDs) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "⭐️ В избранном пока пусто.\n\nОткройте карточку ментора из /mentors и нажмите «В избранное».",
		})
		return
	}

	kb := keyboard.NewBuilder()
	for _, mentorID := range mentorIDs {
		mentor, err := h.mentorService.GetMentor(ctx, mentorID)
		if err != nil || mentor == nil {
			h.logger.Warn("Failed to fetch favorited mentor",
				zap.Int64("mentor_id", mentorID),
				zap.Error(err))
			continue
		}
		kb.Row(keyboard.Button(mentor.Name, fmt.Sprintf("mentor:%d", mentor.ID)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "⭐️ <b>Избранные менторы</b>",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})
}

// HandleMyBookings обрабатывает команду /mybookings - записи пользователя
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	bookings, err := h.bookingService.ListMyBookings(ctx, update.Message.From.ID)
	if err != nil {
		h.logger.Error("Failed to list bookings",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   common.ErrorMessage(err),
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      bookingcb.BuildMyBookingsScreen(bookings),
		ParseMode: models.ParseModeHTML,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога.
// Визард записи нельзя оборвать, пока заявка в полёте.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)
	machine := h.wizardFor(telegramID)

	if currentState == state.StateNone && machine == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Нет активных операций для отмены.",
		})
		return
	}

	if machine != nil {
		if err := machine.Cancel(); err != nil {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: update.Message.Chat.ID,
				Text:   "⏳ Заявка отправляется, подождите немного и попробуйте снова.",
			})
			return
		}
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// wizardFor возвращает активную машину визарда пользователя, если она есть
func (h *Handlers) wizardFor(telegramID int64) *workflow.Machine {
	data, ok := h.stateManager.GetData(telegramID, state.DataKeyWizard)
	if !ok {
		return nil
	}
	machine, ok := data.(*workflow.Machine)
	if !ok {
		return nil
	}
	return machine
}
