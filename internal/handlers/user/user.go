package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"vehiql-main/internal/middleware"
	"vehiql-main/internal/session"
	myErr "vehiql-main/internal/types/errors"
	types "vehiql-main/internal/types/user"
	"vehiql-main/internal/user"

	"go.uber.org/zap"
)

type UserHandler struct {
	Logger         *zap.SugaredLogger
	UserRepository user.UserRepo
	SessionManger  session.SessionRepo
}

func NewUserHandler(l *zap.SugaredLogger, ur user.UserRepo, sr session.SessionRepo) *UserHandler {
	return &UserHandler{
		Logger:         l,
		UserRepository: ur,
		SessionManger:  sr,
	}
}

// AuthResponse - ответ на регистрацию и вход
type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Register handles POST /api/user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form types.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	// Проверим на валидность переданной почты
	if _, err := mail.ParseAddress(form.Email); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}
	if strings.TrimSpace(form.Password) == "" || strings.TrimSpace(form.Name) == "" {
		myErr.SendErrorTo(w, errors.New("name and password are required"), http.StatusBadRequest, h.Logger)
		return
	}

	// Создаем пользователя
	u, err := h.UserRepository.CreateUser(r.Context(), form)
	if err != nil {
		if errors.Is(err, myErr.ErrAlreadyExists) {
			myErr.SendErrorTo(w, err, http.StatusUnprocessableEntity, h.Logger)
			return
		}

		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	// Создаем для него сессию
	sess, token, err := h.SessionManger.CreateSession(r.Context(), u.ID, u.Email)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	myErr.SendJSON(w, AuthResponse{Token: token, User: u}, http.StatusCreated, h.Logger)
	h.Logger.Infof("created session for %v", sess.ID)
}

// Login handles POST /api/user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form types.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepository.CheckUser(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFound, http.StatusNotFound, h.Logger)
			return
		}

		if errors.Is(err, myErr.ErrBadPassword) {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}

		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	// Создаем для него сессию
	sess, token, err := h.SessionManger.CreateSession(r.Context(), u.ID, u.Email)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	myErr.SendJSON(w, AuthResponse{Token: token, User: u}, http.StatusOK, h.Logger)
	h.Logger.Infof("created session for %v", sess.ID)
}

// Logout handles POST /api/user/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	if err := h.SessionManger.DestroySession(r.Context(), sess.ID); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	myErr.SendErrorTo(w, nil, http.StatusOK, h.Logger)
}

// Me handles GET /api/user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	userInfo, err := h.UserRepository.Info(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	myErr.SendJSON(w, userInfo, http.StatusOK, h.Logger)
}
