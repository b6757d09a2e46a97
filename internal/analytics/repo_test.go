package analytics

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const upsertQuery = `
	INSERT INTO user_preferences (user_id, make, weight)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, make)
	DO UPDATE SET weight = user_preferences.weight + EXCLUDED.weight
`

// Тест UpdatePreferences: для марки выполняется INSERT ... ON CONFLICT ..., транзакция коммитится.
func TestRepository_UpdatePreferences(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db, zapTestLogger(t))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("user-123", "Honda", 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = repo.UpdatePreferences(context.Background(), "user-123", map[string]int{"Honda": 3})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePreferences_Rollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db, zapTestLogger(t))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("user-123", "Kia", 1).
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err = repo.UpdatePreferences(context.Background(), "user-123", map[string]int{"Kia": 1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Тест GetTopMakes: возвращаются именно те марки, которые «лежат» в rows.
func TestRepository_GetTopMakes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db, zapTestLogger(t))

	rows := sqlmock.NewRows([]string{"make"}).
		AddRow("Honda").
		AddRow("Kia")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT make
		FROM user_preferences
		WHERE user_id = $1
		ORDER BY weight DESC, make
		LIMIT $2
	`)).
		WithArgs("user-123", 2).
		WillReturnRows(rows)

	result, err := repo.GetTopMakes(context.Background(), "user-123", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Honda", "Kia"}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Вспомогательная функция для создания тестового логгера.
func zapTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	return zaptest.NewLogger(t).Sugar()
}
