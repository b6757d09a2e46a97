package saved

import "context"

// SavedCar - объявление в избранном пользователя
type SavedCar struct {
	UserID string `json:"user_id"`
	CarID  string `json:"car_id"`
}

// SavedRepo интерфейс репозитория избранных объявлений
//
//go:generate mockgen -source=saved.go -destination=../mocks/mock_saved_repo.go -package=mocks
type SavedRepo interface {
	// Add добавляет объявление в избранное, повторное добавление ничего не меняет
	Add(ctx context.Context, userID string, carID string) error
	// Remove убирает объявление из избранного
	Remove(ctx context.Context, userID string, carID string) error
	// ListIDs возвращает id избранных объявлений, новые первыми
	ListIDs(ctx context.Context, userID string) ([]string, error)
}
