package dealership

import (
	"encoding/json"
	"errors"
	"net/http"

	"vehiql-main/internal/dealership"
	myErr "vehiql-main/internal/types/errors"
	"vehiql-main/internal/types/response"

	"go.uber.org/zap"
)

type DealershipHandler struct {
	Logger         *zap.SugaredLogger
	DealershipRepo dealership.DealershipRepo
}

func NewDealershipHandler(l *zap.SugaredLogger, dr dealership.DealershipRepo) *DealershipHandler {
	return &DealershipHandler{
		Logger:         l,
		DealershipRepo: dr,
	}
}

// WorkingHoursForm - тело запроса сохранения часов работы
type WorkingHoursForm struct {
	WorkingHours []dealership.WorkingHour `json:"workingHours"`
}

// GetInfo handles GET /api/admin/dealership
func (h *DealershipHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	d, err := h.DealershipRepo.GetInfo(r.Context())
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, d, http.StatusOK, h.Logger)
}

// SaveWorkingHours handles PUT /api/admin/dealership/hours
func (h *DealershipHandler) SaveWorkingHours(w http.ResponseWriter, r *http.Request) {
	var form WorkingHoursForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.SendError(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	err := h.DealershipRepo.SaveWorkingHours(r.Context(), form.WorkingHours)
	switch {
	case errors.Is(err, myErr.ErrWorkingHours):
		response.SendError(w, err, http.StatusBadRequest, h.Logger)
		return
	case errors.Is(err, myErr.ErrNotFound):
		response.SendError(w, err, http.StatusNotFound, h.Logger)
		return
	case err != nil:
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, nil, http.StatusOK, h.Logger)
}

// TestDriveInfo handles GET /api/test-drive/info
func (h *DealershipHandler) TestDriveInfo(w http.ResponseWriter, r *http.Request) {
	response.Send(w, h.DealershipRepo.TestDriveInfo(r.Context()), http.StatusOK, h.Logger)
}
