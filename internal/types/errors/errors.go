package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal       = errors.New("database internal error")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrNoAuth           = errors.New("authorization required")
	ErrForbidden        = errors.New("admin access required")

	ErrBadPassword = errors.New("bad password")
	ErrBadID       = errors.New("bad id")

	ErrNoImages      = errors.New("no images provided")
	ErrNoValidImages = errors.New("no valid image URLs provided")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidRole   = errors.New("invalid role")
	ErrImageStore    = errors.New("image store error")
	ErrNoFile        = errors.New("no file provided")
	ErrNotImage      = errors.New("file is not an image")
	ErrWorkingHours  = errors.New("invalid working hours")
	ErrRateLimited   = errors.New("too many requests")

	ErrInvalidJSONPayload = errors.New("invalid JSON payload")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}

// SendJSON пишет успешный JSON-ответ с указанным статусом
func SendJSON(w http.ResponseWriter, v interface{}, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(v); errEncode != nil {
		logger.Error(errEncode)
	}
}
