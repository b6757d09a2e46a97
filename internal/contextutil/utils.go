package contextutil

import (
	"context"

	"vehiql-main/internal/middleware"
)

// GetUserIDFromContext извлекает userID из контекста
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return sess.UserID, true
}
