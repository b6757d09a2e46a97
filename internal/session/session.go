package session

import (
	"context"
	"net/http"
	"time"
)

// Session - сессия пользователя, хранится в Redis
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// SessionRepo - репозиторий для работы с сессиями
//
//go:generate mockgen -source=session.go -destination=../mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession - создает сессию пользователя в Redis и подписывает для нее JWT
	// Возвращает Session и токен
	CreateSession(ctx context.Context, userID string, email string) (*Session, string, error)
	// CheckSession - достает токен из заголовка Authorization, проверяет сессию в Redis и срок ее жизни
	// Возвращает *Session в случае успеха, иначе nil
	CheckSession(r *http.Request) (*Session, error)
	// ExtendSession - продлевает сессию на базовую длительность
	ExtendSession(ctx context.Context, sessionID string) error
	// DestroySession - удаляет сессию (logout)
	DestroySession(ctx context.Context, sessionID string) error
}
