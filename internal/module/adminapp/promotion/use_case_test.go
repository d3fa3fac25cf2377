package promotion

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crave-catering/cc-order/pkg/errors"
)

type mockPromotionRepository struct {
	mock.Mock
}

func (m *mockPromotionRepository) Save(ctx context.Context, p Promotion, tx *sql.Tx) (int64, error) {
	args := m.Called(ctx, p, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPromotionRepository) FindByID(ctx context.Context, ID int64, tx *sql.Tx) (Promotion, error) {
	args := m.Called(ctx, ID, tx)
	return args.Get(0).(Promotion), args.Error(1)
}

func (m *mockPromotionRepository) FindMany(ctx context.Context, filterStatus string, tx *sql.Tx) ([]Promotion, error) {
	args := m.Called(ctx, filterStatus, tx)
	promotions, _ := args.Get(0).([]Promotion)
	return promotions, args.Error(1)
}

func (m *mockPromotionRepository) Update(ctx context.Context, ID int64, p Promotion, tx *sql.Tx) error {
	return m.Called(ctx, ID, p, tx).Error(0)
}

func (m *mockPromotionRepository) Delete(ctx context.Context, ID int64, tx *sql.Tx) error {
	return m.Called(ctx, ID, tx).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, headers map[string]string, message []byte) error {
	return m.Called(ctx, topic, key, headers, message).Error(0)
}

func (m *mockPublisher) Close() {
	m.Called()
}

func newUseCase() (PromotionUseCase, *mockPromotionRepository, *mockPublisher) {
	repo := &mockPromotionRepository{}
	publisher := &mockPublisher{}

	u := NewPromotionUseCase(PromotionUseCaseProperty{
		Logger:              logrus.New(),
		Timeout:             5 * time.Second,
		PromotionRepository: repo,
		Publisher:           publisher,
	})

	return u, repo, publisher
}

func sampleRequest() CreatePromotionRequest {
	return CreatePromotionRequest{
		Code:       "WELCOME10",
		Type:       TypePercentage,
		Value:      10,
		Status:     StatusActive,
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestCreatePromotionPublishesSync(t *testing.T) {
	u, repo, publisher := newUseCase()

	repo.On("Save", mock.Anything, mock.AnythingOfType("Promotion"), (*sql.Tx)(nil)).Return(int64(5), nil)
	publisher.On("Publish", mock.Anything, "crm-promotion-sync", "5", mock.Anything, mock.Anything).Return(nil)

	resp, err := u.CreatePromotion(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "WELCOME10", resp.Code)
	publisher.AssertExpectations(t)
}

func TestCreatePromotionSucceedsWhenSyncFails(t *testing.T) {
	u, repo, publisher := newUseCase()

	repo.On("Save", mock.Anything, mock.AnythingOfType("Promotion"), (*sql.Tx)(nil)).Return(int64(5), nil)
	publisher.On("Publish", mock.Anything, "crm-promotion-sync", "5", mock.Anything, mock.Anything).
		Return(errors.New(500, "INTERNAL_SERVER_ERROR", "broker unavailable"))

	_, err := u.CreatePromotion(context.Background(), sampleRequest())

	require.NoError(t, err)
}

func TestUpdatePromotionKeepsUsageCount(t *testing.T) {
	u, repo, publisher := newUseCase()

	existing := Promotion{
		ID:         5,
		Code:       "WELCOME10",
		Type:       TypePercentage,
		Value:      10,
		Status:     StatusActive,
		UsageCount: 7,
	}

	var updated Promotion
	repo.On("FindByID", mock.Anything, int64(5), (*sql.Tx)(nil)).Return(existing, nil)
	repo.On("Update", mock.Anything, int64(5), mock.AnythingOfType("Promotion"), (*sql.Tx)(nil)).
		Run(func(args mock.Arguments) { updated = args.Get(2).(Promotion) }).
		Return(nil)
	publisher.On("Publish", mock.Anything, "crm-promotion-sync", "5", mock.Anything, mock.Anything).Return(nil)

	resp, err := u.UpdatePromotion(context.Background(), 5, UpdatePromotionRequest{
		Code:       "WELCOME15",
		Type:       TypePercentage,
		Value:      15,
		Status:     StatusActive,
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, "WELCOME15", resp.Code)
	assert.Equal(t, int64(7), updated.UsageCount)
}

func TestDeletePromotionPublishesSync(t *testing.T) {
	u, repo, publisher := newUseCase()

	existing := Promotion{ID: 5, Code: "WELCOME10"}
	repo.On("FindByID", mock.Anything, int64(5), (*sql.Tx)(nil)).Return(existing, nil)
	repo.On("Delete", mock.Anything, int64(5), (*sql.Tx)(nil)).Return(nil)
	publisher.On("Publish", mock.Anything, "crm-promotion-sync", "5", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, u.DeletePromotion(context.Background(), 5))
	publisher.AssertExpectations(t)
}
