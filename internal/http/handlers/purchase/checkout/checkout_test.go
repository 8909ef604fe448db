package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// MockService реализует интерфейс checkout.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Checkout(ctx context.Context, username, userUID string) (*models.Transaction, error) {
	args := m.Called(ctx, username, userUID)
	if trx, ok := args.Get(0).(*models.Transaction); ok {
		return trx, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCheckoutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		username       string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное оформление",
			username: "alice",
			userUID:  "u1",
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "alice", "u1").Return(&models.Transaction{
					ID:        42,
					UserUID:   "u1",
					Total:     300,
					Status:    models.StatusCompleted,
					CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "пользователь не определен",
			username:       "",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:     "пустая корзина",
			username: "alice",
			userUID:  "u1",
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "alice", "u1").Return(nil, models.ErrEmptyCart)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"cart is empty"}`,
		},
		{
			name:     "ресурс уже куплен",
			username: "alice",
			userUID:  "u1",
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "alice", "u1").Return(nil, models.ErrAlreadyPurchased)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"cart contains already purchased asset"}`,
		},
		{
			name:     "ошибка сервиса",
			username: "alice",
			userUID:  "u1",
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, "alice", "u1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not checkout"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			ctx := req.Context()
			if tt.username != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.username)
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
