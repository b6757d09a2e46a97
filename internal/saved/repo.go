package saved

import (
	"context"
	"database/sql"

	myErr "vehiql-main/internal/types/errors"

	"go.uber.org/zap"
)

type SavedDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewSavedDBRepository(db *sql.DB, logger *zap.SugaredLogger) *SavedDBRepository {
	return &SavedDBRepository{
		DB:     db,
		Logger: logger,
	}
}

// Add добавляет пользователю объявление в избранное
func (sr *SavedDBRepository) Add(ctx context.Context, userID string, carID string) error {
	query := `
	INSERT INTO saved_cars(user_id, car_id)
	VALUES ($1, $2) ON CONFLICT (user_id, car_id)
	DO NOTHING
`
	_, err := sr.DB.ExecContext(ctx, query, userID, carID)
	if err != nil {
		sr.Logger.Errorf("Ошибка при добавлении в избранное: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

// Remove удаляет объявление из избранного. Если его там не было - ErrNotFound.
func (sr *SavedDBRepository) Remove(ctx context.Context, userID string, carID string) error {
	query := `
	DELETE FROM saved_cars
	WHERE user_id = $1 AND car_id = $2
`
	res, err := sr.DB.ExecContext(ctx, query, userID, carID)
	if err != nil {
		sr.Logger.Errorf("Ошибка при удалении из избранного: %v", err)
		return myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		sr.Logger.Errorf("Ошибка при получении числа удаленных строк: %v", err)
		return myErr.ErrDBInternal
	}
	if affected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

// ListIDs получает избранное пользователя (список id объявлений)
func (sr *SavedDBRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
	SELECT car_id FROM saved_cars
	WHERE user_id = $1
	ORDER BY created_at DESC
`
	rows, err := sr.DB.QueryContext(ctx, query, userID)
	if err != nil {
		sr.Logger.Errorf("Ошибка при получении избранного пользователя %v: %v", userID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	carIDs := []string{}
	for rows.Next() {
		var carID string
		if err := rows.Scan(&carID); err != nil {
			return nil, myErr.ErrDBInternal
		}

		carIDs = append(carIDs, carID)
	}

	if err := rows.Err(); err != nil {
		sr.Logger.Errorf("Ошибка при чтении избранного: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return carIDs, nil
}
