package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorlink/mentorbot/internal/availability"
	"github.com/mentorlink/mentorbot/internal/cache"
	"github.com/mentorlink/mentorbot/internal/model"
	"github.com/mentorlink/mentorbot/internal/platform"
	"go.uber.org/zap"
)

// RulesFetchDays на сколько дней вперёд запрашиваются правила доступности
const RulesFetchDays = 30

type MentorService struct {
	client     *platform.Client
	rulesCache *cache.RulesCache
	logger     *zap.Logger
}

func NewMentorService(
	client *platform.Client,
	rulesCache *cache.RulesCache,
	logger *zap.Logger,
) *MentorService {
	return &MentorService{
		client:     client,
		rulesCache: rulesCache,
		logger:     logger,
	}
}

// GetMentor получает карточку ментора с платформы
func (s *MentorService) GetMentor(ctx context.Context, mentorID int64) (*model.Mentor, error) {
	return s.client.FetchMentor(ctx, mentorID)
}

// ListMentors получает список активных менторов
func (s *MentorService) ListMentors(ctx context.Context) ([]*model.Mentor, error) {
	return s.client.ListMentors(ctx)
}

// GetCalendar возвращает слоты ментора на окно [startDate, startDate+days).
// Правила берутся из кэша (или с платформы при промахе), набор правил
// внутри одного вызова — неизменяемый снимок: обновление правил на
// платформе увидит только следующий вызов.
func (s *MentorService) GetCalendar(ctx context.Context, mentorID int64, startDate time.Time, days int) ([]model.DaySlots, error) {
	rules, err := s.getRules(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	return availability.ResolveWindow(rules, startDate, days), nil
}

// TimezoneDelta разница зоны ментора и зоны пользователя в минутах,
// только для подписи в карточке ментора
func (s *MentorService) TimezoneDelta(mentor *model.Mentor, viewerTZ string) int {
	return availability.OffsetDelta(mentor.Timezone, viewerTZ, time.Now())
}

// WarmCache принудительно перечитывает правила ментора с платформы в кэш
func (s *MentorService) WarmCache(ctx context.Context, mentorID int64) error {
	records, err := s.client.FetchRuleRecords(ctx, mentorID, time.Now(), RulesFetchDays)
	if err != nil {
		return fmt.Errorf("warm rules cache: %w", err)
	}

	if err := s.rulesCache.Put(ctx, mentorID, records); err != nil {
		return fmt.Errorf("warm rules cache: %w", err)
	}

	return nil
}

// getRules возвращает декодированные правила ментора, читая сквозь кэш
func (s *MentorService) getRules(ctx context.Context, mentorID int64) ([]model.AvailabilityRule, error) {
	records, found, err := s.rulesCache.Get(ctx, mentorID)
	if err != nil {
		// Недоступный Redis не должен ломать календарь — идём на платформу
		s.logger.Warn("Rules cache unavailable",
			zap.Int64("mentor_id", mentorID),
			zap.Error(err),
		)
		found = false
	}

	if !found {
		records, err = s.client.FetchRuleRecords(ctx, mentorID, time.Now(), RulesFetchDays)
		if err != nil {
			return nil, fmt.Errorf("fetch rules: %w", err)
		}

		if err := s.rulesCache.Put(ctx, mentorID, records); err != nil {
			s.logger.Warn("Failed to cache rules",
				zap.Int64("mentor_id", mentorID),
				zap.Error(err),
			)
		}
	}

	rules, skipped := platform.DecodeRules(records)
	if skipped > 0 {
		s.logger.Warn("Skipped malformed availability rules",
			zap.Int64("mentor_id", mentorID),
			zap.Int("skipped", skipped),
			zap.Int("accepted", len(rules)),
		)
	}

	return rules, nil
}
