package analytics

import (
	"context"

	"vehiql-main/internal/kafka"
)

// AnalyticsRepo - интерфейс репозитория для работы с предпочтениями пользователей.
type AnalyticsRepo interface {
	UpdatePreferences(ctx context.Context, userID string, weights map[string]int) error
	GetTopMakes(ctx context.Context, userID string, limit int) ([]string, error)
}

// AnalyticsService - интерфейс сервиса аналитики.
type AnalyticsService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetTopMakes(ctx context.Context, userID string, limit int) ([]string, error)
}
