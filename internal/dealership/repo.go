package dealership

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	myErr "vehiql-main/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DealershipDBRepository struct {
	DB       *sql.DB
	Defaults Defaults
	Logger   *zap.SugaredLogger
}

func NewDealershipDBRepository(db *sql.DB, defaults Defaults, l *zap.SugaredLogger) *DealershipDBRepository {
	return &DealershipDBRepository{
		DB:       db,
		Defaults: defaults,
		Logger:   l,
	}
}

func (dr *DealershipDBRepository) GetInfo(ctx context.Context) (*Dealership, error) {
	tx, err := dr.DB.BeginTx(ctx, nil)
	if err != nil {
		dr.Logger.Errorf("Error beginning transaction: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback()

	d, err := selectDealership(ctx, tx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		d, err = dr.createDefault(ctx, tx)
		if err != nil {
			dr.Logger.Errorf("Error creating default dealership: %v", err)
			return nil, myErr.ErrDBInternal
		}
	case err != nil:
		dr.Logger.Errorf("Error selecting dealership: %v", err)
		return nil, myErr.ErrDBInternal
	default:
		d.WorkingHours, err = selectHours(ctx, tx, d.ID)
		if err != nil {
			dr.Logger.Errorf("Error selecting working hours: %v", err)
			return nil, myErr.ErrDBInternal
		}
	}

	if err = tx.Commit(); err != nil {
		dr.Logger.Errorf("Error committing dealership: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return d, nil
}

// SaveWorkingHours заменяет часы работы одной транзакцией
func (dr *DealershipDBRepository) SaveWorkingHours(ctx context.Context, hours []WorkingHour) error {
	if err := validateHours(hours); err != nil {
		return err
	}

	tx, err := dr.DB.BeginTx(ctx, nil)
	if err != nil {
		dr.Logger.Errorf("Error beginning transaction: %v", err)
		return myErr.ErrDBInternal
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM dealership ORDER BY created_at LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return myErr.ErrNotFound
	}
	if err != nil {
		dr.Logger.Errorf("Error selecting dealership: %v", err)
		return myErr.ErrDBInternal
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM working_hours WHERE dealership_id = $1`, id); err != nil {
		dr.Logger.Errorf("Error deleting working hours: %v", err)
		return myErr.ErrDBInternal
	}

	if err = insertHours(ctx, tx, id, hours); err != nil {
		dr.Logger.Errorf("Error inserting working hours: %v", err)
		return myErr.ErrDBInternal
	}

	if _, err = tx.ExecContext(ctx, `UPDATE dealership SET updated_at = NOW() WHERE id = $1`, id); err != nil {
		dr.Logger.Errorf("Error touching dealership: %v", err)
		return myErr.ErrDBInternal
	}

	if err = tx.Commit(); err != nil {
		dr.Logger.Errorf("Error committing working hours: %v", err)
		return myErr.ErrDBInternal
	}

	return nil
}

// TestDriveInfo никогда не падает: если хранилище недоступно, отдаются реквизиты по умолчанию
func (dr *DealershipDBRepository) TestDriveInfo(ctx context.Context) *TestDriveInfo {
	d, err := dr.GetInfo(ctx)
	if err != nil {
		dr.Logger.Warnf("Falling back to default dealership: %v", err)
		d = &Dealership{
			ID:           "default",
			Name:         dr.Defaults.Name,
			Address:      dr.Defaults.Address,
			Phone:        dr.Defaults.Phone,
			Email:        dr.Defaults.Email,
			WorkingHours: DefaultWorkingHours(),
		}
	}

	return &TestDriveInfo{
		Dealership:       d,
		ExistingBookings: []interface{}{},
	}
}

func (dr *DealershipDBRepository) createDefault(ctx context.Context, tx *sql.Tx) (*Dealership, error) {
	d := &Dealership{
		ID:           uuid.NewString(),
		Name:         dr.Defaults.Name,
		Address:      dr.Defaults.Address,
		Phone:        dr.Defaults.Phone,
		Email:        dr.Defaults.Email,
		WorkingHours: DefaultWorkingHours(),
	}

	var createdAt, updatedAt time.Time
	err := tx.QueryRowContext(ctx, `
		INSERT INTO dealership (id, name, address, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, d.ID, d.Name, d.Address, d.Phone, d.Email).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	d.CreatedAt, d.UpdatedAt = &createdAt, &updatedAt

	if err = insertHours(ctx, tx, d.ID, d.WorkingHours); err != nil {
		return nil, err
	}

	return d, nil
}

func selectDealership(ctx context.Context, tx *sql.Tx) (*Dealership, error) {
	var (
		d                    Dealership
		createdAt, updatedAt sql.NullTime
	)
	err := tx.QueryRowContext(ctx, `
		SELECT id, name, address, phone, email, created_at, updated_at
		FROM dealership
		ORDER BY created_at
		LIMIT 1
	`).Scan(&d.ID, &d.Name, &d.Address, &d.Phone, &d.Email, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if createdAt.Valid {
		d.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		d.UpdatedAt = &updatedAt.Time
	}

	return &d, nil
}

func selectHours(ctx context.Context, tx *sql.Tx, dealershipID string) ([]WorkingHour, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT day_of_week, open_time, close_time, is_open
		FROM working_hours
		WHERE dealership_id = $1
	`, dealershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := []WorkingHour{}
	for rows.Next() {
		var h WorkingHour
		if err = rows.Scan(&h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.IsOpen); err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].DayOfWeek.index() < hours[j].DayOfWeek.index()
	})

	return hours, nil
}

func insertHours(ctx context.Context, tx *sql.Tx, dealershipID string, hours []WorkingHour) error {
	for _, h := range hours {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO working_hours (dealership_id, day_of_week, open_time, close_time, is_open)
			VALUES ($1, $2, $3, $4, $5)
		`, dealershipID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsOpen)
		if err != nil {
			return err
		}
	}
	return nil
}

// validateHours - каждый день не больше одного раза, время в формате HH:MM, открытие раньше закрытия
func validateHours(hours []WorkingHour) error {
	seen := make(map[Day]struct{}, len(hours))
	for _, h := range hours {
		if h.DayOfWeek.index() < 0 {
			return myErr.ErrWorkingHours
		}
		if _, dup := seen[h.DayOfWeek]; dup {
			return myErr.ErrWorkingHours
		}
		seen[h.DayOfWeek] = struct{}{}

		open, err := time.Parse("15:04", h.OpenTime)
		if err != nil {
			return myErr.ErrWorkingHours
		}
		closing, err := time.Parse("15:04", h.CloseTime)
		if err != nil {
			return myErr.ErrWorkingHours
		}
		if h.IsOpen && !open.Before(closing) {
			return myErr.ErrWorkingHours
		}
	}
	return nil
}
