package add

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pixel-market/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pixel-market/internal/models"
)

// MockService реализует интерфейс add.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, userUID string, assetID int) error {
	args := m.Called(ctx, userUID, assetID)
	return args.Error(0)
}

func TestAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное добавление",
			urlID:   "7",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "u1", 7).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "некорректный id",
			urlID:          "abc",
			userUID:        "u1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:           "пользователь не определен",
			urlID:          "7",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:    "ресурс не найден",
			urlID:   "99",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "u1", 99).Return(models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"asset not found"}`,
		},
		{
			name:    "ресурс уже куплен",
			urlID:   "5",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "u1", 5).Return(models.ErrAlreadyOwned)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"asset already purchased"}`,
		},
		{
			name:    "ошибка сервиса",
			urlID:   "7",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "u1", 7).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not add asset to cart"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/cart/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
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
