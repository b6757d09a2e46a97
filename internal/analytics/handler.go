package analytics

import (
	"net/http"
	"strconv"

	myErr "vehiql-main/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const defaultTop = 3

type Handler struct {
	service AnalyticsService
	logger  *zap.SugaredLogger
}

func NewHandler(service AnalyticsService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetUserPreferences handles GET /user/{user_id}/preferences?top=N
func (h *Handler) GetUserPreferences(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.logger)
		return
	}

	topN := defaultTop
	if topParam := r.URL.Query().Get("top"); topParam != "" {
		if n, err := strconv.Atoi(topParam); err == nil && n > 0 {
			topN = n
		}
	}

	makes, err := h.service.GetTopMakes(r.Context(), userID, topN)
	if err != nil {
		h.logger.Errorf("Failed to get user preferences: %v", err)
		myErr.SendErrorTo(w, myErr.ErrDBInternal, http.StatusInternalServerError, h.logger)
		return
	}

	if len(makes) == 0 {
		makes = []string{} // Пустой массив вместо null
	}

	myErr.SendJSON(w, makes, http.StatusOK, h.logger)
}
