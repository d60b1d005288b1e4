package app

import (
	"context"
	"time"

	"github.com/mentorlink/mentorbot/internal/repository"
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

// warmInterval как часто прогревается кэш правил избранных менторов
const warmInterval = 10 * time.Minute

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	mentorService *service.MentorService
	favoritesRepo *repository.FavoritesRepository
	logger        *zap.Logger
	stopChan      chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	mentorService *service.MentorService,
	favoritesRepo *repository.FavoritesRepository,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		mentorService: mentorService,
		favoritesRepo: favoritesRepo,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runCacheWarmTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runCacheWarmTask периодически прогревает кэш правил доступности
// для менторов, которых кто-нибудь держит в избранном
func (s *Scheduler) runCacheWarmTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.warmFavoritedMentors(ctx)

	ticker := time.NewTicker(warmInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.warmFavoritedMentors(ctx)
		case <-s.stopChan:
			s.logger.Info("Cache warm task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Cache warm task cancelled")
			return
		}
	}
}

// warmFavoritedMentors перечитывает правила всех избранных менторов в кэш
func (s *Scheduler) warmFavoritedMentors(ctx context.Context) {
	mentorIDs, err := s.favoritesRepo.AllFavoritedMentorIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list favorited mentors", zap.Error(err))
		return
	}

	warmed := 0
	for _, mentorID := range mentorIDs {
		if err := s.mentorService.WarmCache(ctx, mentorID); err != nil {
			s.logger.Warn("Failed to warm rules cache",
				zap.Int64("mentor_id", mentorID),
				zap.Error(err),
			)
			continue
		}
		warmed++
	}

	s.logger.Info("Rules cache warmed",
		zap.Int("mentors_total", len(mentorIDs)),
		zap.Int("mentors_warmed", warmed),
	)
}
