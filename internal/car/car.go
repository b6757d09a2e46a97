package car

import (
	"context"
	"time"

	"vehiql-main/internal/predicate"
	types "vehiql-main/internal/types/car"
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusUnavailable Status = "UNAVAILABLE"
	StatusSold        Status = "SOLD"
)

// Valid сообщает, является ли статус одним из допустимых значений
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusSold:
		return true
	}
	return false
}

// Car - объявление о продаже автомобиля
type Car struct {
	ID           string     `json:"id"`
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	Price        float64    `json:"price"`
	Mileage      int        `json:"mileage"`
	Color        string     `json:"color"`
	FuelType     string     `json:"fuelType"`
	Transmission string     `json:"transmission"`
	BodyType     string     `json:"bodyType"`
	Seats        *int       `json:"seats"`
	Description  string     `json:"description"`
	Images       []string   `json:"images"`
	Status       Status     `json:"status"`
	Featured     bool       `json:"featured"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

// Stats - сводка по объявлениям для дашборда админки
type Stats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Sold        int `json:"sold"`
	Unavailable int `json:"unavailable"`
	Featured    int `json:"featured"`
}

// Query - запрос к таблице cars: условие, сортировка и окно.
// Limit == 0 означает выборку без окна.
type Query struct {
	Where   predicate.Predicate
	OrderBy []predicate.Order
	Offset  int
	Limit   int
}

// CarRepo интерфейс репозитория объявлений
//
//go:generate mockgen -source=car.go -destination=../mocks/mock_car_repo.go -package=mocks
type CarRepo interface {
	// Create создает объявление с уже провалидированными картинками
	Create(ctx context.Context, id string, c types.CreateCar, images []string) (*Car, error)
	// GetByID возвращает объявление по id, ErrNotFound если его нет
	GetByID(ctx context.Context, id string) (*Car, error)
	// GetByIDs возвращает объявления по списку id (порядок не гарантируется)
	GetByIDs(ctx context.Context, ids []string) ([]Car, error)
	// Update частично обновляет объявление, images == nil оставляет картинки как есть
	Update(ctx context.Context, id string, c types.UpdateCar, images []string) (*Car, error)
	// UpdateStatus меняет статус и/или флаг featured
	UpdateStatus(ctx context.Context, id string, status *Status, featured *bool) error
	// Delete удаляет объявление
	Delete(ctx context.Context, id string) error
	// GetImages возвращает ссылки на картинки объявления
	GetImages(ctx context.Context, id string) ([]string, error)
	// ListAdmin возвращает все объявления (любой статус) с поиском по марке, модели и цвету
	ListAdmin(ctx context.Context, search string) ([]Car, error)
	// GetFeatured возвращает избранные доступные объявления, новые первыми
	GetFeatured(ctx context.Context, limit int) ([]Car, error)
	// Stats считает объявления по статусам
	Stats(ctx context.Context) (*Stats, error)
	// Recent возвращает последние добавленные объявления
	Recent(ctx context.Context, limit int) ([]Car, error)
}
