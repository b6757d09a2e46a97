package saved

import (
	"errors"
	"net/http"
	"time"

	"vehiql-main/internal/car"
	"vehiql-main/internal/contextutil"
	"vehiql-main/internal/kafka"
	"vehiql-main/internal/saved"
	myErr "vehiql-main/internal/types/errors"
	"vehiql-main/internal/types/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type SavedHandler struct {
	Logger        *zap.SugaredLogger
	SavedRepo     saved.SavedRepo
	CarRepo       car.CarRepo
	EventProducer kafka.EventProducer
}

func NewSavedHandler(l *zap.SugaredLogger, sr saved.SavedRepo, cr car.CarRepo, ep kafka.EventProducer) *SavedHandler {
	return &SavedHandler{
		Logger:        l,
		SavedRepo:     sr,
		CarRepo:       cr,
		EventProducer: ep,
	}
}

// List handles GET /api/saved
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		response.SendError(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	ids, err := h.SavedRepo.ListIDs(r.Context(), userID)
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
	if len(ids) == 0 {
		response.Send(w, []car.Car{}, http.StatusOK, h.Logger)
		return
	}

	cars, err := h.CarRepo.GetByIDs(r.Context(), ids)
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, inOrder(ids, cars), http.StatusOK, h.Logger)
}

// inOrder раскладывает объявления в порядке ids, удаленные объявления пропускаются
func inOrder(ids []string, cars []car.Car) []car.Car {
	byID := make(map[string]car.Car, len(cars))
	for _, c := range cars {
		byID[c.ID] = c
	}

	out := make([]car.Car, 0, len(cars))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Add handles POST /api/saved/{car_id}
func (h *SavedHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		response.SendError(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	carID := mux.Vars(r)["car_id"]
	if _, err := uuid.Parse(carID); err != nil {
		response.SendError(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.CarRepo.GetByID(r.Context(), carID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			response.SendError(w, err, http.StatusNotFound, h.Logger)
			return
		}
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if err = h.SavedRepo.Add(r.Context(), userID, carID); err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if h.EventProducer != nil {
		event := kafka.Event{
			UserID:    userID,
			Type:      kafka.EventTypeSave,
			CarID:     c.ID,
			Makes:     []string{c.Make},
			Timestamp: time.Now(),
		}
		if err = h.EventProducer.SendEvent(r.Context(), event); err != nil {
			h.Logger.Warnf("failed to send save event: %v", err)
		}
	}

	response.Send(w, saved.SavedCar{UserID: userID, CarID: carID}, http.StatusCreated, h.Logger)
}

// Remove handles DELETE /api/saved/{car_id}
func (h *SavedHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		response.SendError(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	carID := mux.Vars(r)["car_id"]
	if _, err := uuid.Parse(carID); err != nil {
		response.SendError(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	err := h.SavedRepo.Remove(r.Context(), userID, carID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			response.SendError(w, err, http.StatusNotFound, h.Logger)
			return
		}
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, nil, http.StatusOK, h.Logger)
}
