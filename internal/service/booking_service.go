package service

import (
	"context"

	"github.com/mentorlink/mentorbot/internal/model"
	"github.com/mentorlink/mentorbot/internal/platform"
	"github.com/mentorlink/mentorbot/internal/workflow"
	"go.uber.org/zap"
)

type BookingService struct {
	client *platform.Client
	logger *zap.Logger
}

func NewBookingService(client *platform.Client, logger *zap.Logger) *BookingService {
	return &BookingService{
		client: client,
		logger: logger,
	}
}

// ListMyBookings возвращает записи пользователя с платформы
func (s *BookingService) ListMyBookings(ctx context.Context, telegramID int64) ([]*model.Booking, error) {
	bookings, err := s.client.ListBookings(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Listed bookings",
		zap.Int64("telegram_id", telegramID),
		zap.Int("count", len(bookings)),
	)
	return bookings, nil
}

// Submit отправляет черновик визарда на платформу и фиксирует результат
// в машине состояний. Пока машина в Submitting, повторный вызов для того
// же визарда невозможен — два запроса по одному черновику не полетят.
//
// При неудаче машина остаётся в Failed с сохранённым сообщением, черновик
// не меняется, и повторная отправка уйдёт с тем же телом и тем же
// Idempotency-Key.
func (s *BookingService) Submit(ctx context.Context, m *workflow.Machine) (*model.Booking, error) {
	request, err := m.BeginSubmit()
	if err != nil {
		return nil, err
	}

	// Черновик обнуляется при успехе, ключ нужно взять до отправки
	idempotencyKey := m.Draft().IdempotencyKey

	booking, submitErr := s.client.SubmitBooking(ctx, request, idempotencyKey)
	if err := m.CompleteSubmit(submitErr); err != nil {
		return nil, err
	}

	if submitErr != nil {
		s.logger.Warn("Booking submission failed",
			zap.Int64("mentor_id", request.MentorID),
			zap.String("session_date", request.SessionDate),
			zap.Error(submitErr),
		)
		return nil, submitErr
	}

	s.logger.Info("Booking submitted",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("mentor_id", request.MentorID),
		zap.String("session_date", request.SessionDate),
		zap.String("start_time", request.StartTime),
		zap.String("status", string(booking.Status)),
	)

	return booking, nil
}
