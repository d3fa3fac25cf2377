package wizard

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

// Store persists wizard state between requests so a draft survives the
// session hopping devices or reloading.
type Store interface {
	Save(ctx context.Context, accountID int64, state *State) error
	Load(ctx context.Context, accountID int64) (*State, error)
	Clear(ctx context.Context, accountID int64) error
}

type redisStore struct {
	logger *logrus.Logger
	client *goredis.Client
	ttl    time.Duration
}

func NewRedisStore(logger *logrus.Logger, client *goredis.Client, ttl time.Duration) Store {
	return &redisStore{
		logger: logger,
		client: client,
		ttl:    ttl,
	}
}

func stateKey(accountID int64) string {
	return fmt.Sprintf("wizard:%d", accountID)
}

// Save implements Store.
func (s *redisStore) Save(ctx context.Context, accountID int64, state *State) error {
	buff, _ := json.Marshal(state)

	if err := s.client.Set(ctx, stateKey(accountID), buff, s.ttl).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving the wizard state")
	}

	return nil
}

// Load implements Store. A missing state starts a fresh wizard.
func (s *redisStore) Load(ctx context.Context, accountID int64) (*State, error) {
	buff, err := s.client.Get(ctx, stateKey(accountID)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return New(), nil
		}
		s.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while loading the wizard state")
	}

	state := New()
	if err := json.Unmarshal(buff, state); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while loading the wizard state")
	}

	return state, nil
}

// Clear implements Store.
func (s *redisStore) Clear(ctx context.Context, accountID int64) error {
	if err := s.client.Del(ctx, stateKey(accountID)).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while clearing the wizard state")
	}

	return nil
}
