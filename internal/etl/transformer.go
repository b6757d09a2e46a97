package etl

import (
	"strconv"
	"strings"

	"vehiql-main/internal/car"
	"vehiql-main/internal/types/elastic"

	"go.uber.org/zap"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform - переводит объявления из формата хранения в PostgreSQL в CarDoc для хранения в ES
// Принимает массив Car, возвращает массив CarDoc
func (t *Transformer) Transform(input []car.Car) []elastic.CarDoc {
	docs := make([]elastic.CarDoc, 0, len(input))
	for _, c := range input {
		docs = append(docs, elastic.CarDoc{
			ID:           c.ID,
			Title:        title(c),
			Make:         c.Make,
			Model:        c.Model,
			Year:         c.Year,
			Price:        c.Price,
			BodyType:     c.BodyType,
			FuelType:     c.FuelType,
			Transmission: c.Transmission,
		})
	}

	t.Logger.Infof("Transformed %d docs succesfully", len(input))

	return docs
}

// title - строка для подсказок: "Make Model Year"
func title(c car.Car) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Make, c.Model} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if c.Year > 0 {
		parts = append(parts, strconv.Itoa(c.Year))
	}
	return strings.Join(parts, " ")
}
