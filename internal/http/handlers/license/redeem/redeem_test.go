package redeem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Redeem(ctx context.Context, trainerID, key string) (*models.License, error) {
	args := m.Called(ctx, trainerID, key)
	lic, _ := args.Get(0).(*models.License)
	return lic, args.Error(1)
}

func TestRedeemHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trainer := &models.User{UUID: "trainer-1", Role: models.RoleTrainer}
	owner := "trainer-1"

	tests := []struct {
		name           string
		body           string
		mockLic        *models.License
		mockErr        error
		callMock       bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "ключ активирован",
			body:     `{"license_key":"KEY-1"}`,
			callMock: true,
			mockLic: &models.License{
				LicenseKey: "KEY-1",
				ExpiryDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Status:     models.LicenseActive,
				TrainerID:  &owner,
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"trainer_id":"trainer-1"`,
		},
		{
			name:           "пустой ключ",
			body:           `{"license_key":""}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field LicenseKey is a required field",
		},
		{
			name:           "битый JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "ключ не найден",
			body:           `{"license_key":"KEY-X"}`,
			callMock:       true,
			mockErr:        fmt.Errorf("storage: %w", models.ErrLicenseNotFound),
			expectedStatus: http.StatusNotFound,
			expectedBody:   "license not found",
		},
		{
			name:           "ключ у другого тренера",
			body:           `{"license_key":"KEY-X"}`,
			callMock:       true,
			mockErr:        models.ErrLicenseAlreadyAssigned,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "ключ истёк",
			body:           `{"license_key":"KEY-X"}`,
			callMock:       true,
			mockErr:        models.ErrLicenseExpired,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "license expired",
		},
		{
			name:           "ошибка хранилища",
			body:           `{"license_key":"KEY-X"}`,
			callMock:       true,
			mockErr:        errors.New("db error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.callMock {
				svc.On("Redeem", mock.Anything, "trainer-1", mock.Anything).Return(tt.mockLic, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/license/redeem", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithUser(req.Context(), trainer))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
