package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vehiql-main/internal/car"
	"vehiql-main/internal/images"
	types "vehiql-main/internal/types/car"
	myErr "vehiql-main/internal/types/errors"
	"vehiql-main/internal/types/response"
	typesUser "vehiql-main/internal/types/user"
	"vehiql-main/internal/user"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RecentLimit - сколько последних объявлений показывает дашборд
const RecentLimit = 5

// Inventory - изменения объявлений из админки
type Inventory interface {
	AddCar(ctx context.Context, form types.CarForm) (*car.Car, error)
	UpdateCar(ctx context.Context, id string, form types.CarUpdateForm) (*car.Car, error)
	UpdateStatus(ctx context.Context, id string, form types.UpdateStatus) error
	DeleteCar(ctx context.Context, id string) error
}

type AdminHandler struct {
	Logger         *zap.SugaredLogger
	Inventory      Inventory
	CarRepo        car.CarRepo
	UserRepo       user.UserRepo
	Images         images.Store
	MaxUploadBytes int64
}

func NewAdminHandler(
	l *zap.SugaredLogger,
	inv Inventory,
	cr car.CarRepo,
	ur user.UserRepo,
	imgs images.Store,
	maxUploadBytes int64,
) *AdminHandler {
	return &AdminHandler{
		Logger:         l,
		Inventory:      inv,
		CarRepo:        cr,
		UserRepo:       ur,
		Images:         imgs,
		MaxUploadBytes: maxUploadBytes,
	}
}

// Dashboard - сводка для главной страницы админки
type Dashboard struct {
	Cars       car.Stats `json:"cars"`
	RecentCars []car.Car `json:"recentCars"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, myErr.ErrNoImages),
		errors.Is(err, myErr.ErrNoValidImages),
		errors.Is(err, myErr.ErrInvalidStatus),
		errors.Is(err, myErr.ErrInvalidRole),
		errors.Is(err, myErr.ErrBadID):
		return http.StatusBadRequest
	case errors.Is(err, myErr.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func carID(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		return "", myErr.ErrBadID
	}
	return id, nil
}

// CreateCar handles POST /api/admin/cars
func (h *AdminHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var form types.CarForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.SendError(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.Inventory.AddCar(r.Context(), form)
	if err != nil {
		response.SendError(w, err, statusFor(err), h.Logger)
		return
	}

	response.Send(w, c, http.StatusCreated, h.Logger)
}

// ListCars handles GET /api/admin/cars?search={search}
func (h *AdminHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.CarRepo.ListAdmin(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, cars, http.StatusOK, h.Logger)
}

// UpdateCar handles PUT /api/admin/cars/{id}
func (h *AdminHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		response.SendError(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	var form types.CarUpdateForm
	if err = json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.SendError(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.Inventory.UpdateCar(r.Context(), id, form)
	if err != nil {
		response.SendError(w, err, statusFor(err), h.Logger)
		return
	}

	response.Send(w, c, http.StatusOK, h.Logger)
}

// UpdateStatus handles PATCH /api/admin/cars/{id}/status
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		response.SendError(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	var form types.UpdateStatus
	if err = json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.SendError(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if err = h.Inventory.UpdateStatus(r.Context(), id, form); err != nil {
		response.SendError(w, err, statusFor(err), h.Logger)
		return
	}

	response.Send(w, nil, http.StatusOK, h.Logger)
}

// DeleteCar handles DELETE /api/admin/cars/{id}
func (h *AdminHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := carID(r)
	if err != nil {
		response.SendError(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	if err = h.Inventory.DeleteCar(r.Context(), id); err != nil {
		response.SendError(w, err, statusFor(err), h.Logger)
		return
	}

	response.Send(w, nil, http.StatusOK, h.Logger)
}

// Upload handles POST /api/admin/upload (multipart, поле file)
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			myErr.SendErrorTo(w, err, http.StatusRequestEntityTooLarge, h.Logger)
			return
		}
		myErr.SendErrorTo(w, myErr.ErrNoFile, http.StatusBadRequest, h.Logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		myErr.SendErrorTo(w, myErr.ErrNoFile, http.StatusBadRequest, h.Logger)
		return
	}
	defer file.Close() // nolint:errcheck

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		myErr.SendErrorTo(w, myErr.ErrNotImage, http.StatusUnsupportedMediaType, h.Logger)
		return
	}

	url, err := h.Images.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.Logger.Errorf("image upload failed: %v", err)
		myErr.SendErrorTo(w, myErr.ErrImageStore, http.StatusInternalServerError, h.Logger)
		return
	}

	myErr.SendJSON(w, UploadResponse{URL: url}, http.StatusOK, h.Logger)
}

// Dashboard handles GET /api/admin/dashboard.
// Если хранилище недоступно, отдается нулевая статистика.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := Dashboard{RecentCars: []car.Car{}}

	stats, err := h.CarRepo.Stats(r.Context())
	if err != nil {
		h.Logger.Warnf("dashboard stats unavailable: %v", err)
		response.Send(w, d, http.StatusOK, h.Logger)
		return
	}
	d.Cars = *stats

	recent, err := h.CarRepo.Recent(r.Context(), RecentLimit)
	if err != nil {
		h.Logger.Warnf("dashboard recent cars unavailable: %v", err)
	} else {
		d.RecentCars = recent
	}

	response.Send(w, d, http.StatusOK, h.Logger)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.List(r.Context())
	if err != nil {
		response.SendError(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	response.Send(w, users, http.StatusOK, h.Logger)
}

// UpdateUserRole handles PUT /api/admin/users/{id}/role
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		response.SendError(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	var form typesUser.UpdateRole
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.SendError(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	role := user.Role(form.Role)
	if !role.Valid() {
		response.SendError(w, myErr.ErrInvalidRole, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepo.UpdateRole(r.Context(), id, role)
	if err != nil {
		response.SendError(w, err, statusFor(err), h.Logger)
		return
	}

	response.Send(w, u, http.StatusOK, h.Logger)
}
