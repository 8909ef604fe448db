package like

import (
	"context"
	"errors"
	"fmt"
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

// MockService реализует интерфейс like.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ToggleLike(ctx context.Context, userUID string, assetID int) (bool, error) {
	args := m.Called(ctx, userUID, assetID)
	return args.Bool(0), args.Error(1)
}

func TestLikeHandler(t *testing.T) {
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
			name:    "лайк поставлен",
			urlID:   "7",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("ToggleLike", mock.Anything, "u1", 7).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"liked":true`,
		},
		{
			name:    "лайк снят",
			urlID:   "7",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("ToggleLike", mock.Anything, "u1", 7).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"liked":false`,
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
			name:    "ресурс не найден",
			urlID:   "99",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("ToggleLike", mock.Anything, "u1", 99).
					Return(false, fmt.Errorf("storage.ToggleLike: %w", models.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"asset not found"}`,
		},
		{
			name:    "ошибка сервиса",
			urlID:   "7",
			userUID: "u1",
			setupMock: func(m *MockService) {
				m.On("ToggleLike", mock.Anything, "u1", 7).Return(false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not toggle like"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/assets/"+tt.urlID+"/like", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
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
