package kafka

import "time"

type EventType string

const (
	// пользовательские события каталога, из них строятся предпочтения
	EventTypeSearch EventType = "search"
	EventTypeView   EventType = "view"
	EventTypeSave   EventType = "save"

	// жизненный цикл объявления
	EventTypeCarCreated EventType = "car_created"
	EventTypeCarUpdated EventType = "car_updated"
	EventTypeCarDeleted EventType = "car_deleted"
)

type Event struct {
	UserID    string    `json:"user_id,omitempty"`
	Type      EventType `json:"type"`
	CarID     string    `json:"car_id,omitempty"`
	Makes     []string  `json:"makes,omitempty"`
	Query     string    `json:"query,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// key - ключ партиционирования: события одного объявления или пользователя идут по порядку
func (e Event) key() []byte {
	if e.CarID != "" {
		return []byte(e.CarID)
	}
	return []byte(e.UserID)
}

// Known сообщает, умеет ли каталог обрабатывать событие такого типа.
func (t EventType) Known() bool {
	switch t {
	case EventTypeSearch, EventTypeView, EventTypeSave,
		EventTypeCarCreated, EventTypeCarUpdated, EventTypeCarDeleted:
		return true
	}
	return false
}
