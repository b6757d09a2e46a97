package dealership

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	myErr "vehiql-main/internal/types/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var defaults = Defaults{
	Name:    "Vehiql Motors",
	Address: "123 Main Street",
	Phone:   "+1 (555) 123-4567",
	Email:   "info@vehiql.com",
}

const (
	selectDealershipQuery = `SELECT id, name, address, phone, email, created_at, updated_at FROM dealership ORDER BY created_at LIMIT 1`
	selectHoursQuery      = `SELECT day_of_week, open_time, close_time, is_open FROM working_hours WHERE dealership_id = $1`
	insertHourQuery       = `INSERT INTO working_hours (dealership_id, day_of_week, open_time, close_time, is_open) VALUES ($1, $2, $3, $4, $5)`
)

func newRepo(t *testing.T) (*DealershipDBRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDealershipDBRepository(db, defaults, zaptest.NewLogger(t).Sugar()), mock
}

func TestDefaultWorkingHours(t *testing.T) {
	hours := DefaultWorkingHours()
	require.Len(t, hours, 7)

	assert.Equal(t, WorkingHour{DayOfWeek: Monday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true}, hours[0])
	assert.Equal(t, WorkingHour{DayOfWeek: Friday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true}, hours[4])
	assert.Equal(t, WorkingHour{DayOfWeek: Saturday, OpenTime: "10:00", CloseTime: "16:00", IsOpen: true}, hours[5])
	assert.False(t, hours[6].IsOpen)
}

func TestGetInfo_Existing(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDealershipQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "email", "created_at", "updated_at"}).
			AddRow("d1", "Motors", "Street 1", "123", "a@b.c", now, nil))
	mock.ExpectQuery(regexp.QuoteMeta(selectHoursQuery)).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "open_time", "close_time", "is_open"}).
			AddRow("SUNDAY", "10:00", "16:00", false).
			AddRow("MONDAY", "09:00", "18:00", true))
	mock.ExpectCommit()

	d, err := repo.GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Motors", d.Name)
	require.Len(t, d.WorkingHours, 2)
	assert.Equal(t, Monday, d.WorkingHours[0].DayOfWeek)
	assert.Equal(t, Sunday, d.WorkingHours[1].DayOfWeek)
	assert.NotNil(t, d.CreatedAt)
	assert.Nil(t, d.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInfo_CreatesDefault(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDealershipQuery)).WillReturnError(sqlmock.ErrCancelled)
	mock.ExpectRollback()

	_, err := repo.GetInfo(context.Background())
	assert.ErrorIs(t, err, myErr.ErrDBInternal)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDealershipQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "email", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO dealership (id, name, address, phone, email)`)).
		WithArgs(sqlmock.AnyArg(), defaults.Name, defaults.Address, defaults.Phone, defaults.Email).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	for _, h := range DefaultWorkingHours() {
		mock.ExpectExec(regexp.QuoteMeta(insertHourQuery)).
			WithArgs(sqlmock.AnyArg(), h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsOpen).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	d, err := repo.GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaults.Name, d.Name)
	assert.Equal(t, DefaultWorkingHours(), d.WorkingHours)
	assert.NotEmpty(t, d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInfo_RollbackOnHoursFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectDealershipQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "email", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO dealership`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(insertHourQuery)).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	d, err := repo.GetInfo(context.Background())
	assert.ErrorIs(t, err, myErr.ErrDBInternal)
	assert.Nil(t, d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWorkingHours(t *testing.T) {
	hours := []WorkingHour{
		{DayOfWeek: Monday, OpenTime: "08:00", CloseTime: "20:00", IsOpen: true},
		{DayOfWeek: Sunday, OpenTime: "00:00", CloseTime: "00:00", IsOpen: false},
	}

	t.Run("success", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM dealership ORDER BY created_at LIMIT 1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d1"))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM working_hours WHERE dealership_id = $1`)).
			WithArgs("d1").
			WillReturnResult(sqlmock.NewResult(0, 7))
		for _, h := range hours {
			mock.ExpectExec(regexp.QuoteMeta(insertHourQuery)).
				WithArgs("d1", h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsOpen).
				WillReturnResult(sqlmock.NewResult(1, 1))
		}
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE dealership SET updated_at = NOW() WHERE id = $1`)).
			WithArgs("d1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveWorkingHours(context.Background(), hours))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no dealership", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM dealership`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.SaveWorkingHours(context.Background(), hours), myErr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete fails", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM dealership`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("d1"))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM working_hours`)).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.SaveWorkingHours(context.Background(), hours), myErr.ErrDBInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	invalid := map[string][]WorkingHour{
		"unknown day":    {{DayOfWeek: "FUNDAY", OpenTime: "09:00", CloseTime: "18:00", IsOpen: true}},
		"duplicate day":  {hours[0], hours[0]},
		"bad time":       {{DayOfWeek: Monday, OpenTime: "9am", CloseTime: "18:00", IsOpen: true}},
		"closes earlier": {{DayOfWeek: Monday, OpenTime: "18:00", CloseTime: "09:00", IsOpen: true}},
	}
	for name, hs := range invalid {
		t.Run(name, func(t *testing.T) {
			repo, mock := newRepo(t)
			assert.ErrorIs(t, repo.SaveWorkingHours(context.Background(), hs), myErr.ErrWorkingHours)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTestDriveInfo_FallsBackToDefaults(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("db down"))

	info := repo.TestDriveInfo(context.Background())
	require.NotNil(t, info.Dealership)
	assert.Equal(t, "default", info.Dealership.ID)
	assert.Equal(t, defaults.Email, info.Dealership.Email)
	assert.Len(t, info.Dealership.WorkingHours, 7)
	assert.NotNil(t, info.ExistingBookings)
	assert.Empty(t, info.ExistingBookings)
}
