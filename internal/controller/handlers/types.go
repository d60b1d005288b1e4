package handlers

import (
	"github.com/mentorlink/mentorbot/internal/controller/state"
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	mentorService  *service.MentorService
	bookingService *service.BookingService
	stateManager   *state.Manager
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	mentorService *service.MentorService,
	bookingService *service.BookingService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:    userService,
		mentorService:  mentorService,
		bookingService: bookingService,
		stateManager:   stateManager,
		logger:         logger,
	}
}
