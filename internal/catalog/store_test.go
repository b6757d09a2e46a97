package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"vehiql-main/internal/car"
	"vehiql-main/internal/predicate"
)

// memStore - хранилище в памяти, вычисляющее предикаты так же, как их понимает SQL
type memStore struct {
	rows      []car.Row
	err       error
	lastQuery car.Query
	selects   int
}

func (m *memStore) Select(_ context.Context, where predicate.Predicate) ([]car.Row, error) {
	m.selects++
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(where), nil
}

func (m *memStore) Page(_ context.Context, q car.Query) ([]car.Row, int, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, 0, m.err
	}

	matched := m.filter(q.Where)
	sort.SliceStable(matched, func(i, j int) bool {
		for _, o := range q.OrderBy {
			c := compare(matched[i], matched[j], o.Field)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	total := len(matched)
	if q.Offset >= total {
		return []car.Row{}, total, nil
	}
	end := total
	if q.Limit > 0 && q.Offset+q.Limit < total {
		end = q.Offset + q.Limit
	}

	return matched[q.Offset:end], total, nil
}

func (m *memStore) filter(where predicate.Predicate) []car.Row {
	var out []car.Row
	for _, r := range m.rows {
		if where == nil || eval(where, r) {
			out = append(out, r)
		}
	}
	return out
}

func eval(p predicate.Predicate, r car.Row) bool {
	switch p := p.(type) {
	case predicate.Equals:
		return fmt.Sprint(r[string(p.Field)]) == fmt.Sprint(p.Value)
	case predicate.Contains:
		v, _ := r[string(p.Field)].(string)
		return strings.Contains(strings.ToLower(v), strings.ToLower(p.Substring))
	case predicate.Range:
		v := number(r, p.Field)
		if p.Min != nil && v < *p.Min {
			return false
		}
		if p.Max != nil && v > *p.Max {
			return false
		}
		return true
	case predicate.And:
		for _, sub := range p {
			if sub != nil && !eval(sub, r) {
				return false
			}
		}
		return true
	case predicate.Or:
		for _, sub := range p {
			if sub != nil && eval(sub, r) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("unexpected predicate %T", p))
}

func number(r car.Row, f predicate.Field) float64 {
	if f == predicate.FieldPrice {
		return car.Normalize(r)[car.ColPrice].(float64)
	}
	switch v := r[string(f)].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func compare(a, b car.Row, f predicate.Field) int {
	switch f {
	case predicate.FieldCreatedAt:
		ta, _ := car.Normalize(a)[car.ColCreatedAt].(time.Time)
		tb, _ := car.Normalize(b)[car.ColCreatedAt].(time.Time)
		return ta.Compare(tb)
	default:
		va, vb := number(a, f), number(b, f)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	}
}

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// listing собирает сырую строку так, как ее отдал бы драйвер
func listing(id, mk, model string, price interface{}, status car.Status, ageDays int) car.Row {
	return car.Row{
		car.ColID:           id,
		car.ColMake:         mk,
		car.ColModel:        model,
		car.ColYear:         int64(2020),
		car.ColPrice:        price,
		car.ColMileage:      int64(10000),
		car.ColColor:        "Black",
		car.ColFuelType:     "Petrol",
		car.ColTransmission: "Automatic",
		car.ColBodyType:     "Sedan",
		car.ColImages:       []byte(`{"https://cdn.example.com/` + id + `.jpg"}`),
		car.ColStatus:       string(status),
		car.ColFeatured:     false,
		car.ColCreatedAt:    baseTime.AddDate(0, 0, -ageDays),
	}
}
