package catalog

import (
	"context"
	"sort"

	"vehiql-main/internal/car"
	"vehiql-main/internal/predicate"

	"go.uber.org/zap"
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FacetSet - значения фильтров, доступные по продаваемым (AVAILABLE) объявлениям
type FacetSet struct {
	Makes         []string   `json:"makes"`
	BodyTypes     []string   `json:"bodyTypes"`
	FuelTypes     []string   `json:"fuelTypes"`
	Transmissions []string   `json:"transmissions"`
	PriceRange    PriceRange `json:"priceRange"`
}

type Deriver struct {
	Store  Store
	Logger *zap.SugaredLogger
}

func NewDeriver(s Store, l *zap.SugaredLogger) *Deriver {
	return &Deriver{
		Store:  s,
		Logger: l,
	}
}

// Derive считает фасеты заново при каждом вызове одним чтением из хранилища.
// Ошибка хранилища возвращается как есть, частичного результата не бывает.
func (d *Deriver) Derive(ctx context.Context) (*FacetSet, error) {
	rows, err := d.Store.Select(ctx, predicate.Eq(predicate.FieldStatus, string(car.StatusAvailable)))
	if err != nil {
		d.Logger.Errorf("facet derivation failed: %v", err)
		return nil, err
	}

	makes := newValueSet()
	bodyTypes := newValueSet()
	fuelTypes := newValueSet()
	transmissions := newValueSet()

	var priceRange PriceRange
	for i, c := range car.FromRows(rows) {
		makes.add(c.Make)
		bodyTypes.add(c.BodyType)
		fuelTypes.add(c.FuelType)
		transmissions.add(c.Transmission)

		if i == 0 || c.Price < priceRange.Min {
			priceRange.Min = c.Price
		}
		if i == 0 || c.Price > priceRange.Max {
			priceRange.Max = c.Price
		}
	}

	return &FacetSet{
		Makes:         makes.sorted(),
		BodyTypes:     bodyTypes.sorted(),
		FuelTypes:     fuelTypes.sorted(),
		Transmissions: transmissions.sorted(),
		PriceRange:    priceRange,
	}, nil
}

type valueSet map[string]struct{}

func newValueSet() valueSet {
	return valueSet{}
}

func (s valueSet) add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

func (s valueSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
