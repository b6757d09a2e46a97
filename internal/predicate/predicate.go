package predicate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

var ErrUnknownField = errors.New("unknown field")

// Field - колонка таблицы cars, по которой разрешено фильтровать и сортировать.
// Набор закрыт: имя колонки никогда не приходит от клиента напрямую.
type Field string

const (
	FieldID           Field = "id"
	FieldMake         Field = "make"
	FieldModel        Field = "model"
	FieldYear         Field = "year"
	FieldPrice        Field = "price"
	FieldMileage      Field = "mileage"
	FieldColor        Field = "color"
	FieldFuelType     Field = "fuel_type"
	FieldTransmission Field = "transmission"
	FieldBodyType     Field = "body_type"
	FieldStatus       Field = "status"
	FieldFeatured     Field = "featured"
	FieldCreatedAt    Field = "created_at"
	FieldUpdatedAt    Field = "updated_at"
)

var knownFields = map[Field]struct{}{
	FieldID: {}, FieldMake: {}, FieldModel: {}, FieldYear: {}, FieldPrice: {},
	FieldMileage: {}, FieldColor: {}, FieldFuelType: {}, FieldTransmission: {},
	FieldBodyType: {}, FieldStatus: {}, FieldFeatured: {}, FieldCreatedAt: {},
	FieldUpdatedAt: {},
}

// Valid сообщает, входит ли поле в закрытый набор колонок
func (f Field) Valid() bool {
	_, ok := knownFields[f]
	return ok
}

func (f Field) quoted() (string, error) {
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return pq.QuoteIdentifier(string(f)), nil
}

// Predicate - одно условие фильтрации.
// Реализации: Equals, Contains, Range и их композиции And/Or.
type Predicate interface {
	lower(b *builder) (string, error)
}

// Equals - точное (регистрозависимое) совпадение
type Equals struct {
	Field Field
	Value interface{}
}

// Contains - регистронезависимое вхождение подстроки
type Contains struct {
	Field     Field
	Substring string
}

// Range - включительные границы, nil означает отсутствие границы
type Range struct {
	Field Field
	Min   *float64
	Max   *float64
}

// And - конъюнкция, пустая And истинна
type And []Predicate

// Or - дизъюнкция, пустая Or ложна
type Or []Predicate

func Eq(f Field, v interface{}) Equals {
	return Equals{Field: f, Value: v}
}

func Like(f Field, substring string) Contains {
	return Contains{Field: f, Substring: substring}
}

func AtLeast(f Field, v float64) Range {
	return Range{Field: f, Min: &v}
}

func AtMost(f Field, v float64) Range {
	return Range{Field: f, Max: &v}
}

func All(ps ...Predicate) And {
	return And(ps)
}

func Any(ps ...Predicate) Or {
	return Or(ps)
}

// EscapeLike экранирует метасимволы LIKE (\, %, _), чтобы подстрока искалась буквально
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type builder struct {
	args []interface{}
	next int
}

func (b *builder) bind(v interface{}) string {
	b.args = append(b.args, v)
	ph := "$" + strconv.Itoa(b.next)
	b.next++
	return ph
}

func (p Equals) lower(b *builder) (string, error) {
	col, err := p.Field.quoted()
	if err != nil {
		return "", err
	}
	return col + " = " + b.bind(p.Value), nil
}

func (p Contains) lower(b *builder) (string, error) {
	col, err := p.Field.quoted()
	if err != nil {
		return "", err
	}
	return col + " ILIKE " + b.bind("%"+EscapeLike(p.Substring)+"%") + ` ESCAPE '\'`, nil
}

func (p Range) lower(b *builder) (string, error) {
	col, err := p.Field.quoted()
	if err != nil {
		return "", err
	}

	var parts []string
	if p.Min != nil {
		parts = append(parts, col+" >= "+b.bind(*p.Min))
	}
	if p.Max != nil {
		parts = append(parts, col+" <= "+b.bind(*p.Max))
	}
	if len(parts) == 0 {
		return "TRUE", nil
	}

	return strings.Join(parts, " AND "), nil
}

func (p And) lower(b *builder) (string, error) {
	return join(b, p, " AND ", "TRUE")
}

func (p Or) lower(b *builder) (string, error) {
	return join(b, p, " OR ", "FALSE")
}

func join(b *builder, ps []Predicate, sep, empty string) (string, error) {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		if p == nil {
			continue
		}
		s, err := p.lower(b)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	switch len(parts) {
	case 0:
		return empty, nil
	case 1:
		return parts[0], nil
	}

	for i := range parts {
		parts[i] = "(" + parts[i] + ")"
	}

	return strings.Join(parts, sep), nil
}

// Build переводит предикат в SQL-фрагмент для WHERE с плейсхолдерами $n, начиная с $start.
// Значения никогда не попадают в текст запроса, только в args.
func Build(p Predicate, start int) (string, []interface{}, error) {
	if start < 1 {
		start = 1
	}
	if p == nil {
		return "TRUE", nil, nil
	}

	b := &builder{next: start}
	clause, err := p.lower(b)
	if err != nil {
		return "", nil, err
	}

	return clause, b.args, nil
}

// Order - сортировка по одной колонке
type Order struct {
	Field Field
	Desc  bool
}

func Asc(f Field) Order  { return Order{Field: f} }
func Desc(f Field) Order { return Order{Field: f, Desc: true} }

// OrderClause собирает "ORDER BY ..." или пустую строку, если сортировок нет
func OrderClause(orders ...Order) (string, error) {
	if len(orders) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		col, err := o.Field.quoted()
		if err != nil {
			return "", err
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}

	return "ORDER BY " + strings.Join(parts, ", "), nil
}
