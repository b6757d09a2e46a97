package catalog

import (
	"context"

	"vehiql-main/internal/car"
	"vehiql-main/internal/predicate"

	"go.uber.org/zap"
)

// Store - хранилище объявлений, из которого читают каталог и фасеты.
// Строки возвращаются сырыми, нормализация на стороне каталога.
//
//go:generate mockgen -source=engine.go -destination=../mocks/mock_catalog_store.go -package=mocks
type Store interface {
	// Select возвращает все строки, подходящие под условие
	Select(ctx context.Context, where predicate.Predicate) ([]car.Row, error)
	// Page возвращает окно выборки и общее число подходящих строк
	Page(ctx context.Context, q car.Query) ([]car.Row, int, error)
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Result - ответ каталога. При ошибке хранилища Success == false и заполнен Error.
type Result struct {
	Success    bool        `json:"success"`
	Data       []car.Car   `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type Engine struct {
	Store  Store
	Logger *zap.SugaredLogger
}

func NewEngine(s Store, l *zap.SugaredLogger) *Engine {
	return &Engine{
		Store:  s,
		Logger: l,
	}
}

// Query отвечает на запрос каталога одной страницей нормализованных объявлений.
// Ошибка хранилища не пробрасывается, а возвращается в Result.
func (e *Engine) Query(ctx context.Context, req Request) Result {
	req = req.normalized()

	rows, total, err := e.Store.Page(ctx, car.Query{
		Where:   req.Where(),
		OrderBy: req.Order(),
		Offset:  req.offset(),
		Limit:   req.Limit,
	})
	if err != nil {
		e.Logger.Errorf("catalog query failed: %v", err)
		return Result{
			Success: false,
			Data:    []car.Car{},
			Error:   err.Error(),
		}
	}

	return Result{
		Success: true,
		Data:    car.FromRows(rows),
		Pagination: &Pagination{
			Total: total,
			Page:  req.Page,
			Limit: req.Limit,
			Pages: pages(total, req.Limit),
		},
	}
}

func pages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
