package response

import (
	"net/http"

	myErr "vehiql-main/internal/types/errors"

	"go.uber.org/zap"
)

// Response - конверт ответов API каталога и админки
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// Send отдает успешный ответ с данными
func Send(w http.ResponseWriter, data interface{}, statusCode int, logger *zap.SugaredLogger) {
	myErr.SendJSON(w, Response{Success: true, Data: data}, statusCode, logger)
}

// SendError отдает ответ с success = false
func SendError(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	myErr.SendJSON(w, Response{Success: false, Error: err.Error()}, statusCode, logger)
}
