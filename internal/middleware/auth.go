package middleware

import (
	"context"
	"errors"
	"net/http"

	"vehiql-main/internal/auth"
	"vehiql-main/internal/session"
	myErr "vehiql-main/internal/types/errors"
	"vehiql-main/internal/user"

	"go.uber.org/zap"
)

type SessKey string

var sessKey SessKey = "sessionKey"

// SessionChecker - часть SessionRepo, нужная middleware
type SessionChecker interface {
	CheckSession(r *http.Request) (*session.Session, error)
}

// UserInfo - часть UserRepo, нужная для проверки роли
type UserInfo interface {
	Info(ctx context.Context, userID string) (*user.User, error)
}

// Auth пропускает только запросы с живой сессией, иначе 401
func Auth(sm SessionChecker, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sm.CheckSession(r)
			if err != nil {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			ctx := ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identify кладет сессию в контекст, если она есть, но не требует ее.
// Нужен публичным ручкам, которые пишут события аналитики от имени пользователя.
func Identify(sm SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				if sess, err := sm.CheckSession(r); err == nil {
					r = r.WithContext(ContextWithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает дальше только администраторов по политике.
// Должен стоять после Auth.
func RequireAdmin(policy auth.Policy, users UserInfo, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			u, err := users.Info(r.Context(), sess.UserID)
			if err != nil && !errors.Is(err, myErr.ErrNotFound) {
				myErr.SendErrorTo(w, err, http.StatusInternalServerError, logger)
				return
			}

			if !policy.IsAdmin(sess.Email, u) {
				logger.Warnf("admin access denied for user %s", sess.UserID)
				myErr.SendErrorTo(w, myErr.ErrForbidden, http.StatusForbidden, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessKey, s)
}

// GetSessionFromContext достает сессию, положенную Auth или Identify
func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessKey).(*session.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
