package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trainer-memberships/internal/http/middlewarectx"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, trainerID, id string, req models.DummyClient) (*models.Client, error) {
	args := m.Called(ctx, trainerID, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trainer := &models.User{UUID: "trainer-1", Role: models.RoleTrainer}
	body := `{"full_name":"Ana","document_type":"E","cedula":"8765","start_date":"2025-06-01","duration_months":2}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное изменение",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "trainer-1", "c-1", mock.Anything).
					Return(&models.Client{ID: "c-1", FullName: "Ana", DocumentType: models.DocumentForeign}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"document_type":"E"`,
		},
		{
			name:           "номер документа не из цифр",
			body:           strings.Replace(body, "8765", "87-65", 1),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Cedula can contain only numbers",
		},
		{
			name: "документ занят другим клиентом",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "trainer-1", "c-1", mock.Anything).
					Return(nil, &models.DuplicateIdentityError{DocumentType: "E", Cedula: "8765", ExistingID: "c-2"}).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"existing_id":"c-2"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPut, "/clients/c-1", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "c-1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithUser(ctx, trainer))
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
