package catalog

import (
	"math"
	"strings"

	"vehiql-main/internal/car"
	"vehiql-main/internal/predicate"
)

// Sort - ключ сортировки каталога
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortPriceAsc  Sort = "priceAsc"
	SortPriceDesc Sort = "priceDesc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
)

// Request - запрос к каталогу: фильтры, сортировка и страница.
// Пустая строка или нулевая/бесконечная граница цены означает "без ограничения".
type Request struct {
	Page         int
	Limit        int
	Search       string
	Make         string
	Model        string
	BodyType     string
	FuelType     string
	Transmission string
	MinPrice     float64
	MaxPrice     float64
	SortBy       Sort
}

// DefaultRequest возвращает запрос со значениями по умолчанию: первая страница по 6, новые первыми
func DefaultRequest() Request {
	return Request{
		Page:     DefaultPage,
		Limit:    DefaultLimit,
		MaxPrice: math.Inf(1),
		SortBy:   SortNewest,
	}
}

// normalized приводит некорректные значения к ближайшим безопасным
func (r Request) normalized() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	// окно дальше math.MaxInt не сдвигается: такая страница просто пустая
	if maxPage := math.MaxInt / r.Limit; r.Page > maxPage {
		r.Page = maxPage
	}
	switch r.SortBy {
	case SortNewest, SortOldest, SortPriceAsc, SortPriceDesc:
	default:
		r.SortBy = SortNewest
	}
	return r
}

func (r Request) offset() int {
	return (r.Page - 1) * r.Limit
}

// maxPriceBounded - верхняя граница задана, если это конечное положительное число.
// 0 приходит из пустого параметра запроса и ограничением не считается.
func (r Request) maxPriceBounded() bool {
	return r.MaxPrice > 0 && !math.IsInf(r.MaxPrice, 1) && !math.IsNaN(r.MaxPrice)
}

// Where собирает условие выборки. Статус AVAILABLE добавляется всегда.
func (r Request) Where() predicate.Predicate {
	where := predicate.All(predicate.Eq(predicate.FieldStatus, string(car.StatusAvailable)))

	if strings.TrimSpace(r.Search) != "" {
		where = append(where, predicate.Any(
			predicate.Like(predicate.FieldMake, r.Search),
			predicate.Like(predicate.FieldModel, r.Search),
		))
	}

	exact := []struct {
		field predicate.Field
		value string
	}{
		{predicate.FieldMake, r.Make},
		{predicate.FieldModel, r.Model},
		{predicate.FieldBodyType, r.BodyType},
		{predicate.FieldFuelType, r.FuelType},
		{predicate.FieldTransmission, r.Transmission},
	}
	for _, e := range exact {
		// значение из одних пробелов фильтром не считается, сравнение идет без обрезки
		if strings.TrimSpace(e.value) != "" {
			where = append(where, predicate.Eq(e.field, e.value))
		}
	}

	price := predicate.Range{Field: predicate.FieldPrice}
	if r.MinPrice > 0 {
		minPrice := r.MinPrice
		price.Min = &minPrice
	}
	if r.maxPriceBounded() {
		maxPrice := r.MaxPrice
		price.Max = &maxPrice
	}
	if price.Min != nil || price.Max != nil {
		where = append(where, price)
	}

	return where
}

// Order возвращает сортировку для ключа, неизвестный ключ - как newest
func (r Request) Order() []predicate.Order {
	switch r.SortBy {
	case SortPriceAsc:
		return []predicate.Order{predicate.Asc(predicate.FieldPrice)}
	case SortPriceDesc:
		return []predicate.Order{predicate.Desc(predicate.FieldPrice)}
	case SortOldest:
		return []predicate.Order{predicate.Asc(predicate.FieldCreatedAt)}
	default:
		return []predicate.Order{predicate.Desc(predicate.FieldCreatedAt)}
	}
}
