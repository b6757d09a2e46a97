package analytics

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UpdatePreferences(ctx context.Context, userID string, weights map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Errorf("Failed to begin preferences tx: %v", err)
		return err
	}
	defer tx.Rollback()

	for mk, weight := range weights {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_preferences (user_id, make, weight)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, make)
			DO UPDATE SET weight = user_preferences.weight + EXCLUDED.weight
		`, userID, mk, weight)

		if err != nil {
			r.logger.Errorf("Failed to update preference %s for %s: %v", mk, userID, err)
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetTopMakes(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT make
		FROM user_preferences
		WHERE user_id = $1
		ORDER BY weight DESC, make
		LIMIT $2
	`, userID, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var makes []string
	for rows.Next() {
		var mk string
		if err := rows.Scan(&mk); err != nil {
			return nil, err
		}
		makes = append(makes, mk)
	}

	return makes, rows.Err()
}
