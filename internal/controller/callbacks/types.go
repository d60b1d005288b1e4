package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mentorlink/mentorbot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// StateManager интерфейс для управления состоянием пользователей
type StateManager = callbacktypes.StateManager

// UserState представляет текущее состояние пользователя в диалоге
type UserState = callbacktypes.UserState

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	mentorService *service.MentorService,
	bookingService *service.BookingService,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	communityInviteURL string,
	calendarFontPath string,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:        userService,
		MentorService:      mentorService,
		BookingService:     bookingService,
		StateManager:       stateManager,
		Logger:             logger,
		CommunityInviteURL: communityInviteURL,
		CalendarFontPath:   calendarFontPath,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
