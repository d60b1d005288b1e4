package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks"
	"github.com/mentorlink/mentorbot/internal/controller/handlers"
	"github.com/mentorlink/mentorbot/internal/controller/state"
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	mentorService *service.MentorService,
	bookingService *service.BookingService,
	logger *zap.Logger,
	communityInviteURL string,
	calendarFontPath string,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		userService,
		mentorService,
		bookingService,
		stateManager,
		logger,
	)

	// Создаём адаптер для callback handlers
	stateAdapter := state.NewAdapter(stateManager)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		userService,
		mentorService,
		bookingService,
		stateAdapter,
		logger,
		communityInviteURL,
		calendarFontPath,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mentors", bot.MatchTypeExact, c.handlers.HandleMentors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/favorites", bot.MatchTypeExact, c.handlers.HandleFavorites)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "mentors", Description: "🧑‍🏫 Менторы сообщества"},
		{Command: "favorites", Description: "⭐️ Избранные менторы"},
		{Command: "mybookings", Description: "🗓 Ваши записи на сессии"},
		{Command: "cancel", Description: "❌ Отменить текущую запись"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
