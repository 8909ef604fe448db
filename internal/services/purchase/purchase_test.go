package purchase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Checkout(ctx context.Context, userUID string) (*models.Transaction, []int, error) {
	args := m.Called(ctx, userUID)
	var result *models.Transaction
	if args.Get(0) != nil {
		result = args.Get(0).(*models.Transaction)
	}
	var ids []int
	if args.Get(1) != nil {
		ids = args.Get(1).([]int)
	}
	return result, ids, args.Error(2)
}

func (m *MockRepo) ListPurchases(ctx context.Context, userUID string, limit, offset int) ([]*models.Purchase, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Purchase), args.Error(1)
}

func (m *MockRepo) ListTransactions(ctx context.Context, userUID string, limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

type MockEntitlements struct {
	mock.Mock
}

func (m *MockEntitlements) MarkOwned(userUID string, assetID int) {
	m.Called(userUID, assetID)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(message any) error {
	args := m.Called(message)
	return args.Error(0)
}

func newTestService(repo *MockRepo, ent *MockEntitlements, pub *MockPublisher) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(repo, ent, pub, logger)
}

func TestCheckout_Success(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	pub := new(MockPublisher)

	repo.On("Checkout", mock.Anything, "u1").Return(
		&models.Transaction{ID: 5, UserUID: "u1", Total: 10, Status: models.StatusCompleted, CreatedAt: createdAt},
		[]int{1, 2}, nil)
	ent.On("MarkOwned", "u1", 1).Return()
	ent.On("MarkOwned", "u1", 2).Return()
	pub.On("Publish", models.PurchaseEvent{
		Username:      "alice",
		UserUID:       "u1",
		TransactionID: 5,
		AssetIDs:      []int{1, 2},
		Total:         10,
		CreatedAt:     createdAt,
	}).Return(nil)

	service := newTestService(repo, ent, pub)

	result, err := service.Checkout(context.Background(), "alice", "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, result.ID)
	assert.Equal(t, 10, result.Total)

	repo.AssertExpectations(t)
	ent.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	pub := new(MockPublisher)

	repo.On("Checkout", mock.Anything, "u1").Return(nil, nil, models.ErrEmptyCart)

	service := newTestService(repo, ent, pub)

	_, err := service.Checkout(context.Background(), "bob", "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	ent.AssertNotCalled(t, "MarkOwned", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestCheckout_AlreadyPurchased(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	pub := new(MockPublisher)

	repo.On("Checkout", mock.Anything, "u1").Return(nil, nil, models.ErrAlreadyPurchased)

	service := newTestService(repo, ent, pub)

	_, err := service.Checkout(context.Background(), "alice", "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAlreadyPurchased)

	pub.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	pub := new(MockPublisher)

	repo.On("Checkout", mock.Anything, "u1").Return(
		&models.Transaction{ID: 9, UserUID: "u1", Total: 3, Status: models.StatusCompleted},
		[]int{4}, nil)
	ent.On("MarkOwned", "u1", 4).Return()
	pub.On("Publish", mock.Anything).Return(errors.New("broker down"))

	service := newTestService(repo, ent, pub)

	result, err := service.Checkout(context.Background(), "alice", "u1")
	require.NoError(t, err)
	assert.Equal(t, 9, result.ID)
}

func TestListPurchases(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	pub := new(MockPublisher)

	repo.On("ListPurchases", mock.Anything, "u1", 20, 0).Return([]*models.Purchase{
		{ID: 1, UserUID: "u1", AssetID: 2, PricePaid: 10},
	}, nil)

	service := newTestService(repo, ent, pub)

	got, err := service.ListPurchases(context.Background(), "u1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
