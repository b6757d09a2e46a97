package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	errorspkg "vehiql-main/internal/types/errors"
)

const keyPrefix = "session:"

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	tokenSecret  string
	baseDuration time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		tokenSecret:  tokenSecret,
		baseDuration: baseDuration,
	}
}

func redisKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (sessionRepository *SessionRepository) CreateSession(
	ctx context.Context,
	userID string,
	email string,
) (*Session, string, error) {
	now := time.Now()

	session := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Email:     email,
		StartTime: now,
		EndTime:   now.Add(sessionRepository.baseDuration),
	}

	if err := sessionRepository.saveSessionToRedis(ctx, session); err != nil {
		// Логируется внутри saveSessionToRedis
		return nil, "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":      email,
		"id":         userID,
		"iat":        session.StartTime.Unix(),
		"exp":        session.EndTime.Unix(),
		"session_id": session.ID,
	})

	tokenStr, err := token.SignedString([]byte(sessionRepository.tokenSecret))
	if err != nil {
		sessionRepository.Logger.Error("Failed to sign JWT token", zap.Error(err))
		return nil, "", fmt.Errorf("error signing token: %w", err)
	}

	sessionRepository.Logger.Infof("Session %s created for user: %s", session.ID, email)
	return session, tokenStr, nil
}

func (sessionRepository *SessionRepository) CheckSession(r *http.Request) (*Session, error) { // nolint:gocyclo
	const bearerPrefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errorspkg.ErrNoAuth
	}

	tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			sessionRepository.Logger.Warnf("Unexpected signing method: %v", token.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(sessionRepository.tokenSecret), nil
	})
	if err != nil || !token.Valid {
		sessionRepository.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, errorspkg.ErrNoAuth
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errorspkg.ErrNoAuth
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		sessionRepository.Logger.Warn("Missing session_id claim in JWT")
		return nil, errorspkg.ErrNoAuth
	}

	ctx := r.Context()
	session, err := sessionRepository.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return nil, err // уже логируется внутри
	}

	if time.Now().After(session.EndTime) {
		_ = sessionRepository.RedisClient.Del(ctx, redisKey(sessionID)).Err() // nolint:errcheck
		return nil, errorspkg.ErrSessionIsExpired
	}

	return session, nil
}

func (sessionRepository *SessionRepository) ExtendSession(
	ctx context.Context,
	sessionID string,
) error {
	session, err := sessionRepository.getSessionFromRedis(ctx, sessionID)
	if err != nil {
		return err
	}

	session.EndTime = time.Now().Add(sessionRepository.baseDuration)

	if err = sessionRepository.saveSessionToRedis(ctx, session); err != nil {
		return err
	}

	return nil
}

func (sessionRepository *SessionRepository) DestroySession(ctx context.Context, sessionID string) error {
	if err := sessionRepository.RedisClient.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		sessionRepository.Logger.Error(
			"Failed delete session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return err
	}
	return nil
}

func (sessionRepository *SessionRepository) saveSessionToRedis(
	ctx context.Context,
	session *Session,
) error {
	sessionDataJSON, err := json.Marshal(session)
	if err != nil {
		sessionRepository.Logger.Error(
			"Failed encode session to JSON",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)
		return err
	}

	ttl := time.Until(session.EndTime)
	if ttl <= 0 {
		ttl = sessionRepository.baseDuration
	}

	err = sessionRepository.RedisClient.Set(ctx, redisKey(session.ID), sessionDataJSON, ttl).Err()
	if err != nil {
		sessionRepository.Logger.Error(
			"Failed save session to Redis",
			zap.Error(err),
			zap.String("sessionID", session.ID),
		)
		return err
	}

	return nil
}

func (sessionRepository *SessionRepository) getSessionFromRedis(
	ctx context.Context,
	sessionID string,
) (*Session, error) {
	sessionDataJSON, err := sessionRepository.RedisClient.Get(ctx, redisKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sessionRepository.Logger.Warnf("Session %s not found in Redis", sessionID)
			return nil, errorspkg.ErrSessionNotFound
		}

		sessionRepository.Logger.Error(
			"Failed get session from Redis",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return nil, err
	}

	var session Session
	if err = json.Unmarshal(sessionDataJSON, &session); err != nil {
		sessionRepository.Logger.Error(
			"Failed decode session from JSON",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return nil, err
	}

	return &session, nil
}
