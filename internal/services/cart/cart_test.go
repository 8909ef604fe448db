package cart

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pixel-market/internal/models"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) ReadAsset(ctx context.Context, id int) (*models.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockRepo) AddCartEntry(ctx context.Context, userUID string, assetID int) error {
	args := m.Called(ctx, userUID, assetID)
	return args.Error(0)
}

func (m *MockRepo) RemoveCartEntry(ctx context.Context, userUID string, assetID int) error {
	args := m.Called(ctx, userUID, assetID)
	return args.Error(0)
}

func (m *MockRepo) ListCartAssets(ctx context.Context, userUID string) ([]*models.Asset, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Asset), args.Error(1)
}

func (m *MockRepo) ClearCart(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *MockRepo) CartTotal(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

type MockEntitlements struct {
	mock.Mock
}

func (m *MockEntitlements) Owns(ctx context.Context, userUID string, assetID int) (bool, error) {
	args := m.Called(ctx, userUID, assetID)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo *MockRepo, ent *MockEntitlements) *CartService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewCartService(repo, ent, logger)
}

func TestAdd(t *testing.T) {
	asset := &models.Asset{ID: 7, Title: "Forest", Price: 10, IsPremium: true}

	tests := []struct {
		name      string
		setupMock func(*MockRepo, *MockEntitlements)
		wantErr   error
	}{
		{
			name: "успешное добавление",
			setupMock: func(repo *MockRepo, ent *MockEntitlements) {
				repo.On("ReadAsset", mock.Anything, 7).Return(asset, nil)
				ent.On("Owns", mock.Anything, "u1", 7).Return(false, nil)
				repo.On("AddCartEntry", mock.Anything, "u1", 7).Return(nil)
			},
			wantErr: nil,
		},
		{
			name: "ресурс уже куплен",
			setupMock: func(repo *MockRepo, ent *MockEntitlements) {
				repo.On("ReadAsset", mock.Anything, 7).Return(asset, nil)
				ent.On("Owns", mock.Anything, "u1", 7).Return(true, nil)
			},
			wantErr: models.ErrAlreadyOwned,
		},
		{
			name: "ресурс не существует",
			setupMock: func(repo *MockRepo, _ *MockEntitlements) {
				repo.On("ReadAsset", mock.Anything, 7).Return(nil, models.ErrNotFound)
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			ent := new(MockEntitlements)
			tt.setupMock(repo, ent)
			service := newTestService(repo, ent)

			err := service.Add(context.Background(), "u1", 7)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "AddCartEntry", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
			ent.AssertExpectations(t)
		})
	}
}

func TestAdd_IdempotentRepeat(t *testing.T) {
	asset := &models.Asset{ID: 3, Title: "Sea"}
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	repo.On("ReadAsset", mock.Anything, 3).Return(asset, nil).Twice()
	ent.On("Owns", mock.Anything, "u1", 3).Return(false, nil).Twice()
	// Повторное добавление — такой же успешный вызов хранилища,
	// дубликат не появляется за счёт ON CONFLICT DO NOTHING.
	repo.On("AddCartEntry", mock.Anything, "u1", 3).Return(nil).Twice()

	service := newTestService(repo, ent)

	require.NoError(t, service.Add(context.Background(), "u1", 3))
	require.NoError(t, service.Add(context.Background(), "u1", 3))

	repo.AssertExpectations(t)
}

func TestRemove_AbsentIsNotError(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	repo.On("RemoveCartEntry", mock.Anything, "u1", 42).Return(nil)

	service := newTestService(repo, ent)

	require.NoError(t, service.Remove(context.Background(), "u1", 42))
	repo.AssertExpectations(t)
}

func TestTotal(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	repo.On("CartTotal", mock.Anything, "u1").Return(15, nil)

	service := newTestService(repo, ent)

	total, err := service.Total(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 15, total)
}

func TestList_RepoError(t *testing.T) {
	repo := new(MockRepo)
	ent := new(MockEntitlements)
	repo.On("ListCartAssets", mock.Anything, "u1").Return(nil, errors.New("db error"))

	service := newTestService(repo, ent)

	_, err := service.List(context.Background(), "u1")
	require.Error(t, err)
}
