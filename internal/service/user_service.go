package service

import (
	"context"
	"fmt"

	"github.com/mentorlink/mentorbot/internal/model"
	"github.com/mentorlink/mentorbot/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo      *repository.UserRepository
	favoritesRepo *repository.FavoritesRepository
	logger        *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	favoritesRepo *repository.FavoritesRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		favoritesRepo: favoritesRepo,
		logger:        logger,
	}
}

// RegisterOrGet возвращает пользователя, создавая запись при первом /start
func (s *UserService) RegisterOrGet(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.User, error) {
	existing, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user := &model.User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		LanguageCode: languageCode,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// MarkMember отмечает, что пользователь вступил в сообщество
func (s *UserService) MarkMember(ctx context.Context, userID int64) error {
	if err := s.userRepo.UpdateMembership(ctx, userID, true); err != nil {
		return fmt.Errorf("mark member: %w", err)
	}

	s.logger.Info("User marked as community member",
		zap.Int64("user_id", userID),
	)

	return nil
}

// ToggleFavorite добавляет или убирает ментора из избранного.
// Возвращает true, если после вызова ментор в избранном.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, mentorID int64) (bool, error) {
	isFavorite, err := s.favoritesRepo.Contains(ctx, userID, mentorID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	if isFavorite {
		if err := s.favoritesRepo.Remove(ctx, userID, mentorID); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
	} else {
		if err := s.favoritesRepo.Add(ctx, userID, mentorID); err != nil {
			return false, fmt.Errorf("add favorite: %w", err)
		}
	}

	s.logger.Info("Favorite toggled",
		zap.Int64("user_id", userID),
		zap.Int64("mentor_id", mentorID),
		zap.Bool("is_favorite", !isFavorite),
	)

	return !isFavorite, nil
}

// ListFavorites возвращает идентификаторы избранных менторов пользователя
func (s *UserService) ListFavorites(ctx context.Context, userID int64) ([]int64, error) {
	return s.favoritesRepo.List(ctx, userID)
}

// IsFavorite проверяет, в избранном ли ментор у пользователя
func (s *UserService) IsFavorite(ctx context.Context, userID, mentorID int64) (bool, error) {
	return s.favoritesRepo.Contains(ctx, userID, mentorID)
}
