package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockQuoteService - мок для quote service
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Finalize(ctx context.Context, draftID string) (*domain.Quote, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) Duplicate(ctx context.Context, id string) (*domain.Draft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockQuoteService) Render(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) GetPDF(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockQuoteService) GetImage(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockQuoteService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newQuoteTestRouter собирает маршруты смет поверх мока
func newQuoteTestRouter(service *MockQuoteService) http.Handler {
	handler := NewQuoteHandler(service, logger.NewNoop())
	r := chi.NewRouter()
	r.Post("/drafts/{id}/finalize", handler.Finalize)
	r.Get("/quotes", handler.ListQuotes)
	r.Get("/quotes/{id}", handler.GetQuote)
	r.Delete("/quotes/{id}", handler.DeleteQuote)
	r.Post("/quotes/{id}/duplicate", handler.DuplicateQuote)
	r.Post("/quotes/{id}/render", handler.RenderQuote)
	r.Get("/quotes/{id}/pdf", handler.GetQuotePDF)
	r.Get("/quotes/{id}/image", handler.GetQuoteImage)
	return r
}

// TestQuoteHandler_Finalize тестирует финализацию черновика
func TestQuoteHandler_Finalize(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockQuoteService)
		expectedStatus int
	}{
		{
			name: "успешная финализация",
			mockSetup: func(service *MockQuoteService) {
				service.On("Finalize", mock.Anything, "d1").Return(CreateTestQuote("q1", "#0007"), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "пустая выборка",
			mockSetup: func(service *MockQuoteService) {
				service.On("Finalize", mock.Anything, "d1").
					Return(nil, fmt.Errorf("%w: %s", domain.ErrValidation, domain.ErrEmptySelection))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "финализация уже идет",
			mockSetup: func(service *MockQuoteService) {
				service.On("Finalize", mock.Anything, "d1").Return(nil, domain.ErrFinalizeInProgress)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "черновик не найден",
			mockSetup: func(service *MockQuoteService) {
				service.On("Finalize", mock.Anything, "d1").Return(nil, domain.ErrDraftNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "внутренняя ошибка",
			mockSetup: func(service *MockQuoteService) {
				service.On("Finalize", mock.Anything, "d1").Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockQuoteService)
			tt.mockSetup(service)

			req := httptest.NewRequest(http.MethodPost, "/drafts/d1/finalize", nil)
			rec := httptest.NewRecorder()
			newQuoteTestRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			if tt.expectedStatus == http.StatusCreated {
				AssertSuccess(t, response)
			} else {
				AssertError(t, response)
			}
		})
	}
}

// TestQuoteHandler_ListQuotes тестирует выдачу истории
func TestQuoteHandler_ListQuotes(t *testing.T) {
	t.Run("история возвращается с дефолтной пагинацией", func(t *testing.T) {
		service := new(MockQuoteService)
		service.On("List", mock.Anything, 50, 0).Return([]*domain.Quote{
			CreateTestQuote("q2", "#0008"),
			CreateTestQuote("q1", "#0007"),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
		rec := httptest.NewRecorder()
		newQuoteTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})

	t.Run("пагинация из query параметров", func(t *testing.T) {
		service := new(MockQuoteService)
		service.On("List", mock.Anything, 10, 20).Return([]*domain.Quote{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/quotes?limit=10&offset=20", nil)
		rec := httptest.NewRecorder()
		newQuoteTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		service.AssertExpectations(t)
	})
}

// TestQuoteHandler_Duplicate тестирует разворачивание сметы в черновик
func TestQuoteHandler_Duplicate(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockQuoteService)
		expectedStatus int
	}{
		{
			name: "копия возвращается черновиком",
			mockSetup: func(service *MockQuoteService) {
				service.On("Duplicate", mock.Anything, "q1").Return(CreateTestDraft("d2"), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "смета не найдена",
			mockSetup: func(service *MockQuoteService) {
				service.On("Duplicate", mock.Anything, "q1").Return(nil, domain.ErrQuoteNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockQuoteService)
			tt.mockSetup(service)

			req := httptest.NewRequest(http.MethodPost, "/quotes/q1/duplicate", nil)
			rec := httptest.NewRecorder()
			newQuoteTestRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

// TestQuoteHandler_Artifacts тестирует выдачу артефактов
func TestQuoteHandler_Artifacts(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockSetup      func(*MockQuoteService)
		expectedStatus int
	}{
		{
			name: "PDF возвращается",
			path: "/quotes/q1/pdf",
			mockSetup: func(service *MockQuoteService) {
				service.On("GetPDF", mock.Anything, "q1").Return("pdf==", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "артефакт не сгенерирован",
			path: "/quotes/q1/image",
			mockSetup: func(service *MockQuoteService) {
				service.On("GetImage", mock.Anything, "q1").Return("", domain.ErrArtifactNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "смета не найдена",
			path: "/quotes/q1/pdf",
			mockSetup: func(service *MockQuoteService) {
				service.On("GetPDF", mock.Anything, "q1").Return("", domain.ErrQuoteNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockQuoteService)
			tt.mockSetup(service)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			newQuoteTestRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

// TestQuoteHandler_Render тестирует повторную генерацию артефактов
func TestQuoteHandler_Render(t *testing.T) {
	t.Run("недоступный рендерер дает 502", func(t *testing.T) {
		service := new(MockQuoteService)
		service.On("Render", mock.Anything, "q1").Return(nil, domain.ErrRenderFailed)

		req := httptest.NewRequest(http.MethodPost, "/quotes/q1/render", nil)
		rec := httptest.NewRecorder()
		newQuoteTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
