package user

import (
	"context"
	"time"

	types "vehiql-main/internal/types/user"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid сообщает, является ли роль одной из допустимых
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User структура пользователя
type User struct {
	ID           string    `json:"user_id"` // uuid
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ImageURL     string    `json:"image_url"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRepo интерфейс удовлетворяющий методам сущности пользователя
//
//go:generate mockgen -source=user.go -destination=../mocks/mock_user_repo.go -package=mocks
type UserRepo interface {
	// CheckUser - проверяет пользователя по почте и паролю
	CheckUser(ctx context.Context, email, password string) (*User, error)
	// CreateUser создает пользователя с ролью USER
	CreateUser(ctx context.Context, u types.CreateUser) (*User, error)
	// Info возвращает информацию о пользователе
	Info(ctx context.Context, userID string) (*User, error)
	// List возвращает всех пользователей, новые первыми
	List(ctx context.Context) ([]User, error)
	// UpdateRole меняет роль пользователя
	UpdateRole(ctx context.Context, userID string, role Role) (*User, error)
}
