package user

import (
	"context"
	"database/sql"
	"errors"

	myErr "vehiql-main/internal/types/errors"
	types "vehiql-main/internal/types/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, name, email, phone, image_url, role, password_hash, created_at`

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s scanner) (*User, error) {
	u := &User{}
	var role string
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.ImageURL, &role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = Role(role)
	return u, nil
}

func (ur *UserDBRepository) getByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(ur.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при поиске пользователя по почте: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) CheckUser(ctx context.Context, email, password string) (*User, error) {
	u, err := ur.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return u, nil
}

func (ur *UserDBRepository) CreateUser(ctx context.Context, form types.CreateUser) (*User, error) {
	_, err := ur.getByEmail(ctx, form.Email)
	if err == nil {
		return nil, myErr.ErrAlreadyExists
	}
	if !errors.Is(err, myErr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		ur.Logger.Errorf("Не удалось захешировать пароль: %v", err)
		return nil, myErr.ErrDBInternal
	}

	query := `
	INSERT INTO users (id, name, email, phone, image_url, role, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns

	u, err := scanUser(ur.DB.QueryRowContext(ctx, query,
		uuid.New().String(),
		form.Name,
		form.Email,
		form.Phone,
		form.ImageURL,
		string(RoleUser),
		string(hash),
	))
	if err != nil {
		ur.Logger.Warnf("Ошибка при создании пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) Info(ctx context.Context, userID string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(ur.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при получения информации о пользователе: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) List(ctx context.Context) ([]User, error) {
	rows, err := ur.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		ur.Logger.Warnf("Ошибка при получении списка пользователей: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			ur.Logger.Warnf("Ошибка при чтении пользователя: %v", err)
			return nil, myErr.ErrDBInternal
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, myErr.ErrDBInternal
	}

	return users, nil
}

func (ur *UserDBRepository) UpdateRole(ctx context.Context, userID string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, myErr.ErrInvalidRole
	}

	query := `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + userColumns

	u, err := scanUser(ur.DB.QueryRowContext(ctx, query, string(role), userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при обновлении роли: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}
