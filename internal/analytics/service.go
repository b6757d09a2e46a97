package analytics

import (
	"context"

	"vehiql-main/internal/kafka"

	"go.uber.org/zap"
)

// веса событий: поиск слабее просмотра, просмотр слабее сохранения
const (
	weightSearch = 1
	weightView   = 2
	weightSave   = 3
)

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.UserID == "" {
		return nil // Игнорируем события без пользователя
	}

	weights := make(map[string]int)
	switch event.Type {
	case kafka.EventTypeSearch:
		for _, mk := range event.Makes {
			if mk != "" {
				weights[mk] += weightSearch
			}
		}
	case kafka.EventTypeView:
		if len(event.Makes) > 0 && event.Makes[0] != "" {
			weights[event.Makes[0]] += weightView
		}
	case kafka.EventTypeSave:
		if len(event.Makes) > 0 && event.Makes[0] != "" {
			weights[event.Makes[0]] += weightSave
		}
	}

	if len(weights) == 0 {
		return nil
	}

	return s.repo.UpdatePreferences(ctx, event.UserID, weights)
}

func (s *Service) GetTopMakes(ctx context.Context, userID string, limit int) ([]string, error) {
	return s.repo.GetTopMakes(ctx, userID, limit)
}
