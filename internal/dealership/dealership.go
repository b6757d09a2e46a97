package dealership

import (
	"context"
	"time"
)

type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
	Saturday  Day = "SATURDAY"
	Sunday    Day = "SUNDAY"
)

// Week - дни недели в порядке отображения
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// index - номер дня в неделе, -1 для неизвестного
func (d Day) index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}

type WorkingHour struct {
	DayOfWeek Day    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsOpen    bool   `json:"isOpen"`
}

// Dealership - данные автосалона вместе с часами работы
type Dealership struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	WorkingHours []WorkingHour `json:"workingHours"`
	CreatedAt    *time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt"`
}

// TestDriveInfo - то, что нужно странице записи на тест-драйв
type TestDriveInfo struct {
	Dealership       *Dealership   `json:"dealership"`
	ExistingBookings []interface{} `json:"existingBookings"`
}

// DefaultWorkingHours - расписание нового автосалона: будни 09-18, суббота 10-16, воскресенье выходной
func DefaultWorkingHours() []WorkingHour {
	hours := make([]WorkingHour, 0, len(Week))
	for _, d := range Week {
		h := WorkingHour{DayOfWeek: d, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true}
		switch d {
		case Saturday:
			h.OpenTime, h.CloseTime = "10:00", "16:00"
		case Sunday:
			h.OpenTime, h.CloseTime, h.IsOpen = "10:00", "16:00", false
		}
		hours = append(hours, h)
	}
	return hours
}

// Defaults - реквизиты, с которыми создается автосалон
type Defaults struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
}

// DealershipRepo интерфейс репозитория настроек автосалона
//
//go:generate mockgen -source=dealership.go -destination=../mocks/mock_dealership_repo.go -package=mocks
type DealershipRepo interface {
	// GetInfo возвращает автосалон с часами работы, при первом обращении создает его
	GetInfo(ctx context.Context) (*Dealership, error)
	// SaveWorkingHours заменяет все часы работы
	SaveWorkingHours(ctx context.Context, hours []WorkingHour) error
	// TestDriveInfo возвращает данные для записи на тест-драйв
	TestDriveInfo(ctx context.Context) *TestDriveInfo
}
