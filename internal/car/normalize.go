package car

import (
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Колонки таблицы cars, в порядке выборки
const (
	ColID           = "id"
	ColMake         = "make"
	ColModel        = "model"
	ColYear         = "year"
	ColPrice        = "price"
	ColMileage      = "mileage"
	ColColor        = "color"
	ColFuelType     = "fuel_type"
	ColTransmission = "transmission"
	ColBodyType     = "body_type"
	ColSeats        = "seats"
	ColDescription  = "description"
	ColImages       = "images"
	ColStatus       = "status"
	ColFeatured     = "featured"
	ColCreatedAt    = "created_at"
	ColUpdatedAt    = "updated_at"
)

const selectColumns = `id, make, model, year, price, mileage, color, fuel_type, transmission, body_type, seats, description, images, status, featured, created_at, updated_at`

// Row - сырая строка из хранилища: имя колонки -> значение драйвера
type Row map[string]interface{}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Normalize приводит сырую строку к каноническому виду:
// price всегда неотрицательное число, created_at/updated_at - time.Time или nil.
// Остальные поля копируются как есть. Ошибок не бывает, повторный вызов ничего не меняет.
func Normalize(r Row) Row {
	out := make(Row, len(r)+3)
	for k, v := range r {
		out[k] = v
	}

	out[ColPrice] = price(r[ColPrice])
	out[ColCreatedAt] = timestamp(r[ColCreatedAt])
	out[ColUpdatedAt] = timestamp(r[ColUpdatedAt])

	return out
}

func price(v interface{}) float64 {
	var f float64

	switch p := v.(type) {
	case float64:
		f = p
	case float32:
		f = float64(p)
	case int:
		f = float64(p)
	case int32:
		f = float64(p)
	case int64:
		f = float64(p)
	case uint:
		f = float64(p)
	case uint32:
		f = float64(p)
	case uint64:
		f = float64(p)
	case json.Number:
		f, _ = p.Float64()
	case string:
		f = parseFloat(p)
	case []byte:
		f = parseFloat(string(p))
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}

	return f
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func timestamp(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return t
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		return *t
	case sql.NullTime:
		if !t.Valid || t.Time.IsZero() {
			return nil
		}
		return t.Time
	case string:
		return parseTimestamp(t)
	case []byte:
		return parseTimestamp(string(t))
	}

	return nil
}

func parseTimestamp(s string) interface{} {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil && !t.IsZero() {
			return t
		}
	}
	return nil
}

// FromRow собирает типизированное объявление из строки, предварительно нормализуя ее
func FromRow(r Row) Car {
	n := Normalize(r)

	c := Car{
		ID:           text(n[ColID]),
		Make:         text(n[ColMake]),
		Model:        text(n[ColModel]),
		Year:         integer(n[ColYear]),
		Price:        n[ColPrice].(float64),
		Mileage:      integer(n[ColMileage]),
		Color:        text(n[ColColor]),
		FuelType:     text(n[ColFuelType]),
		Transmission: text(n[ColTransmission]),
		BodyType:     text(n[ColBodyType]),
		Description:  text(n[ColDescription]),
		Images:       stringArray(n[ColImages]),
		Status:       Status(text(n[ColStatus])),
		Featured:     boolean(n[ColFeatured]),
	}

	if n[ColSeats] != nil {
		seats := integer(n[ColSeats])
		c.Seats = &seats
	}
	if t, ok := n[ColCreatedAt].(time.Time); ok {
		c.CreatedAt = &t
	}
	if t, ok := n[ColUpdatedAt].(time.Time); ok {
		c.UpdatedAt = &t
	}

	return c
}

// FromRows - FromRow для набора строк, пустой результат отдается как [] а не null
func FromRows(rows []Row) []Car {
	cars := make([]Car, 0, len(rows))
	for _, r := range rows {
		cars = append(cars, FromRow(r))
	}
	return cars
}

func text(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}

func integer(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(n)))
		return i
	}
	return 0
}

func boolean(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case []byte:
		parsed, _ := strconv.ParseBool(string(b))
		return parsed
	case string:
		parsed, _ := strconv.ParseBool(b)
		return parsed
	}
	return false
}

func stringArray(v interface{}) []string {
	var arr pq.StringArray

	switch a := v.(type) {
	case []string:
		return append([]string{}, a...)
	case pq.StringArray:
		return append([]string{}, a...)
	case []byte, string:
		if err := arr.Scan(a); err != nil {
			return []string{}
		}
	default:
		return []string{}
	}

	if arr == nil {
		return []string{}
	}
	return []string(arr)
}

// ScanRows вычитывает *sql.Rows в сырые строки без привязки к типам колонок
func ScanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		r := make(Row, len(cols))
		for i, col := range cols {
			r[col] = values[i]
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
