package etl

import (
	"database/sql"

	"vehiql-main/internal/car"

	"go.uber.org/zap"
	"golang.org/x/net/context"
)

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew - достает объявления, которые еще не попали в поисковый индекс
// Возвращает массив доступных (AVAILABLE) объявлений с indexed = FALSE и error
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]car.Car, error) {
	query :=
		`
		SELECT id, make, model, year, price, body_type, fuel_type, transmission
		FROM cars
		WHERE indexed = FALSE AND status = 'AVAILABLE'
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))

		return nil, err
	}
	defer rows.Close()

	var result []car.Car

	for rows.Next() {
		var c car.Car
		err := rows.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Price, &c.BodyType, &c.FuelType, &c.Transmission)
		if err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))

			return nil, err
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}

// ExtractDelisted - id объявлений, которые лежат в индексе, но больше не продаются
func (e *PostgresExtractor) ExtractDelisted(ctx context.Context) ([]string, error) {
	query :=
		`
		SELECT id
		FROM cars
		WHERE indexed = TRUE AND status <> 'AVAILABLE'
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))

		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))

			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return ids, nil
}
