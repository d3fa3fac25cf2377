package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/crave-catering/cc-order/pkg/errors"
	"github.com/crave-catering/cc-order/pkg/status"
)

const (
	TypeCustomer = "customer"
	TypeAdmin    = "admin"
)

type Account struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

type contextKey struct{}

var accountContextKey = contextKey{}

func SetAccountToCtx(ctx context.Context, acc Account) context.Context {
	return context.WithValue(ctx, accountContextKey, acc)
}

func GetAccountFromCtx(ctx context.Context) (Account, error) {
	acc, ok := ctx.Value(accountContextKey).(Account)
	if !ok {
		return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "no account found in session")
	}

	return acc, nil
}

type Store interface {
	Set(ctx context.Context, key string, acc Account, ttl time.Duration) error
	Get(ctx context.Context, key string) (Account, error)
	Delete(ctx context.Context, key string) error
}

type redisSessionStore struct {
	logger *logrus.Logger
	client *goredis.Client
}

func NewRedisSessionStore(logger *logrus.Logger, client *goredis.Client) Store {
	return &redisSessionStore{
		logger: logger,
		client: client,
	}
}

func sessionKey(key string) string {
	return fmt.Sprintf("session:%s", key)
}

// Set implements Store.
func (s *redisSessionStore) Set(ctx context.Context, key string, acc Account, ttl time.Duration) error {
	buff, _ := json.Marshal(acc)

	if err := s.client.Set(ctx, sessionKey(key), buff, ttl).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while storing the session")
	}

	return nil
}

// Get implements Store.
func (s *redisSessionStore) Get(ctx context.Context, key string) (Account, error) {
	buff, err := s.client.Get(ctx, sessionKey(key)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "session is not found or has expired")
		}
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the session")
	}

	var acc Account
	if err := json.Unmarshal(buff, &acc); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting the session")
	}

	return acc, nil
}

// Delete implements Store.
func (s *redisSessionStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionKey(key)).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting the session")
	}

	return nil
}
