package car

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"vehiql-main/internal/predicate"
	types "vehiql-main/internal/types/car"
	myErr "vehiql-main/internal/types/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultFeaturedLimit = 3

type CarDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewCarDBRepository(db *sql.DB, l *zap.SugaredLogger) *CarDBRepository {
	return &CarDBRepository{
		DB:     db,
		Logger: l,
	}
}

// query выполняет SELECT/RETURNING и отдает сырые строки
func (cr *CarDBRepository) query(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	rows, err := cr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return ScanRows(rows)
}

func (cr *CarDBRepository) Create(ctx context.Context, id string, c types.CreateCar, images []string) (*Car, error) {
	status := Status(c.Status)
	if status == "" {
		status = StatusAvailable
	}

	query := `
	INSERT INTO cars (
		id,
		make,
		model,
		year,
		price,
		mileage,
		color,
		fuel_type,
		transmission,
		body_type,
		seats,
		description,
		images,
		status,
		featured
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING ` + selectColumns

	rows, err := cr.query(ctx, query,
		id,
		c.Make,
		c.Model,
		c.Year,
		c.Price,
		c.Mileage,
		c.Color,
		c.FuelType,
		c.Transmission,
		c.BodyType,
		c.Seats,
		c.Description,
		pq.Array(images),
		string(status),
		c.Featured,
	)
	if err != nil {
		cr.Logger.Errorf("Error creating car: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if len(rows) == 0 {
		return nil, myErr.ErrDBInternal
	}

	created := FromRow(rows[0])
	return &created, nil
}

func (cr *CarDBRepository) GetByID(ctx context.Context, id string) (*Car, error) {
	query := `SELECT ` + selectColumns + ` FROM cars WHERE id = $1`

	rows, err := cr.query(ctx, query, id)
	if err != nil {
		cr.Logger.Errorf("Error getting car by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if len(rows) == 0 {
		return nil, myErr.ErrNotFound
	}

	c := FromRow(rows[0])
	return &c, nil
}

func (cr *CarDBRepository) GetByIDs(ctx context.Context, ids []string) ([]Car, error) {
	if len(ids) == 0 {
		return []Car{}, nil
	}

	query := `SELECT ` + selectColumns + ` FROM cars WHERE id = ANY($1) ORDER BY created_at DESC`

	rows, err := cr.query(ctx, query, pq.Array(ids))
	if err != nil {
		cr.Logger.Errorf("Error getting cars by IDs: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return FromRows(rows), nil
}

func (cr *CarDBRepository) Update(ctx context.Context, id string, c types.UpdateCar, images []string) (*Car, error) {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	set := func(column string, value interface{}) {
		fields = append(fields, column+" = $"+strconv.Itoa(argID))
		args = append(args, value)
		argID++
	}

	if c.Make != nil {
		set(ColMake, *c.Make)
	}
	if c.Model != nil {
		set(ColModel, *c.Model)
	}
	if c.Year != nil {
		set(ColYear, *c.Year)
	}
	if c.Price != nil {
		set(ColPrice, *c.Price)
	}
	if c.Mileage != nil {
		set(ColMileage, *c.Mileage)
	}
	if c.Color != nil {
		set(ColColor, *c.Color)
	}
	if c.FuelType != nil {
		set(ColFuelType, *c.FuelType)
	}
	if c.Transmission != nil {
		set(ColTransmission, *c.Transmission)
	}
	if c.BodyType != nil {
		set(ColBodyType, *c.BodyType)
	}
	if c.Seats != nil {
		set(ColSeats, *c.Seats)
	}
	if c.Description != nil {
		set(ColDescription, *c.Description)
	}
	if c.Status != nil {
		set(ColStatus, *c.Status)
	}
	if c.Featured != nil {
		set(ColFeatured, *c.Featured)
	}
	if images != nil {
		set(ColImages, pq.Array(images))
	}

	if len(fields) == 0 {
		return cr.GetByID(ctx, id)
	}

	// Изменение объявления снимает отметку об индексации, ETL переложит его в индекс
	fields = append(fields, "updated_at = NOW()", "indexed = FALSE")

	query := "UPDATE cars SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(argID) + " RETURNING " + selectColumns // nolint:gosec
	args = append(args, id)

	rows, err := cr.query(ctx, query, args...)
	if err != nil {
		cr.Logger.Warnf("Ошибка при обновлении объявления: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if len(rows) == 0 {
		return nil, myErr.ErrNotFound
	}

	updated := FromRow(rows[0])
	return &updated, nil
}

func (cr *CarDBRepository) UpdateStatus(ctx context.Context, id string, status *Status, featured *bool) error {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	if status != nil {
		fields = append(fields, "status = $"+strconv.Itoa(argID))
		args = append(args, string(*status))
		argID++
	}
	if featured != nil {
		fields = append(fields, "featured = $"+strconv.Itoa(argID))
		args = append(args, *featured)
		argID++
	}

	if len(fields) == 0 {
		return nil
	}

	fields = append(fields, "updated_at = NOW()", "indexed = FALSE")

	query := "UPDATE cars SET " + strings.Join(fields, ", ") + " WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, id)

	res, err := cr.DB.ExecContext(ctx, query, args...)
	if err != nil {
		cr.Logger.Warnf("Ошибка при обновлении статуса: %v", err)
		return myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		cr.Logger.Warnf("Не удалось получить количество обновлённых строк: %v", err)
		return myErr.ErrDBInternal
	}
	if rowsAffected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

func (cr *CarDBRepository) Delete(ctx context.Context, id string) error {
	res, err := cr.DB.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		cr.Logger.Errorf("Error deleting car: %v", err)
		return myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		cr.Logger.Errorf("Error getting rows affected: %v", err)
		return myErr.ErrDBInternal
	}
	if rowsAffected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

func (cr *CarDBRepository) GetImages(ctx context.Context, id string) ([]string, error) {
	var images pq.StringArray

	err := cr.DB.QueryRowContext(ctx, `SELECT images FROM cars WHERE id = $1`, id).Scan(&images)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, myErr.ErrNotFound
		}
		cr.Logger.Errorf("Error getting car images: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if images == nil {
		return []string{}, nil
	}
	return []string(images), nil
}

func (cr *CarDBRepository) ListAdmin(ctx context.Context, search string) ([]Car, error) {
	var where predicate.Predicate
	if search != "" {
		where = predicate.Any(
			predicate.Like(predicate.FieldMake, search),
			predicate.Like(predicate.FieldModel, search),
			predicate.Like(predicate.FieldColor, search),
		)
	}

	rows, _, err := cr.Page(ctx, Query{
		Where:   where,
		OrderBy: []predicate.Order{predicate.Desc(predicate.FieldCreatedAt)},
	})
	if err != nil {
		return nil, err
	}

	return FromRows(rows), nil
}

func (cr *CarDBRepository) GetFeatured(ctx context.Context, limit int) ([]Car, error) {
	if limit < 1 {
		limit = defaultFeaturedLimit
	}

	rows, _, err := cr.Page(ctx, Query{
		Where: predicate.All(
			predicate.Eq(predicate.FieldFeatured, true),
			predicate.Eq(predicate.FieldStatus, string(StatusAvailable)),
		),
		OrderBy: []predicate.Order{predicate.Desc(predicate.FieldCreatedAt)},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	return FromRows(rows), nil
}

func (cr *CarDBRepository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats

	query := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'AVAILABLE'),
		COUNT(*) FILTER (WHERE status = 'SOLD'),
		COUNT(*) FILTER (WHERE status = 'UNAVAILABLE'),
		COUNT(*) FILTER (WHERE featured)
	FROM cars
	`

	err := cr.DB.QueryRowContext(ctx, query).Scan(
		&s.Total,
		&s.Available,
		&s.Sold,
		&s.Unavailable,
		&s.Featured,
	)
	if err != nil {
		cr.Logger.Errorf("Error counting cars: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &s, nil
}

func (cr *CarDBRepository) Recent(ctx context.Context, limit int) ([]Car, error) {
	rows, _, err := cr.Page(ctx, Query{
		OrderBy: []predicate.Order{predicate.Desc(predicate.FieldCreatedAt)},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	return FromRows(rows), nil
}

// Select возвращает все строки, подходящие под условие, без нормализации
func (cr *CarDBRepository) Select(ctx context.Context, where predicate.Predicate) ([]Row, error) {
	clause, args, err := predicate.Build(where, 1)
	if err != nil {
		cr.Logger.Errorf("Error building car filter: %v", err)
		return nil, err
	}

	rows, err := cr.query(ctx, `SELECT `+selectColumns+` FROM cars WHERE `+clause, args...) // nolint:gosec
	if err != nil {
		cr.Logger.Errorf("Error selecting cars: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return rows, nil
}

// Page выполняет фильтр + сортировку + окно одним запросом и возвращает
// строки окна вместе с общим числом строк, подходящих под фильтр.
// Второй запрос COUNT(*) делается только если окно ушло за конец выборки.
func (cr *CarDBRepository) Page(ctx context.Context, q Query) ([]Row, int, error) {
	clause, args, err := predicate.Build(q.Where, 1)
	if err != nil {
		cr.Logger.Errorf("Error building car filter: %v", err)
		return nil, 0, err
	}

	order, err := predicate.OrderClause(q.OrderBy...)
	if err != nil {
		cr.Logger.Errorf("Error building car order: %v", err)
		return nil, 0, err
	}

	query := `SELECT ` + selectColumns + `, COUNT(*) OVER() AS total_count FROM cars WHERE ` + clause // nolint:gosec
	if order != "" {
		query += " " + order
	}

	windowArgs := append([]interface{}{}, args...)
	if q.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(windowArgs)+1)
		windowArgs = append(windowArgs, q.Limit)
	}
	if q.Offset > 0 {
		query += " OFFSET $" + strconv.Itoa(len(windowArgs)+1)
		windowArgs = append(windowArgs, q.Offset)
	}

	rows, err := cr.query(ctx, query, windowArgs...)
	if err != nil {
		cr.Logger.Errorf("Error querying cars page: %v", err)
		return nil, 0, myErr.ErrDBInternal
	}

	if len(rows) == 0 {
		if q.Offset == 0 {
			return []Row{}, 0, nil
		}

		var total int
		err = cr.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM cars WHERE `+clause, args...).Scan(&total) // nolint:gosec
		if err != nil {
			cr.Logger.Errorf("Error counting cars: %v", err)
			return nil, 0, myErr.ErrDBInternal
		}
		return []Row{}, total, nil
	}

	total := integer(rows[0]["total_count"])
	for _, r := range rows {
		delete(r, "total_count")
	}

	return rows, total, nil
}
