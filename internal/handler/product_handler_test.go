package handler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestProductHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()
	testProducts := []model.Product{
		{ID: uuid.New(), Name: "Product 1", Price: decimal.NewFromInt(10), Category: model.CategoryClothing},
		{ID: uuid.New(), Name: "Product 2", Price: decimal.NewFromInt(20), Category: model.CategoryAccessories},
	}

	tests := []struct {
		name           string
		queryParams    string
		expectedLimit  int
		expectedOffset int
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{name: "Success with default pagination", expectedLimit: 10, mockReturn: testProducts, expectedStatus: http.StatusOK, expectService: true},
		{name: "Success with custom pagination", queryParams: "?limit=5&offset=10", expectedLimit: 5, expectedOffset: 10, mockReturn: testProducts, expectedStatus: http.StatusOK, expectService: true},
		{name: "Invalid limit parameter", queryParams: "?limit=invalid", expectedStatus: http.StatusBadRequest},
		{name: "Invalid offset parameter", queryParams: "?offset=invalid", expectedStatus: http.StatusBadRequest},
		{name: "Service error", expectedLimit: 10, mockError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectService: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetAll", mock.Anything, tt.expectedLimit, tt.expectedOffset).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		pathID         string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{name: "Success", pathID: id.String(), mockReturn: &model.Product{ID: id, Name: "Tee"}, expectedStatus: http.StatusOK, expectService: true},
		{name: "Product not found", pathID: id.String(), mockError: model.ErrProductNotFound, expectedStatus: http.StatusNotFound, expectService: true},
		{name: "Invalid ID", pathID: "P001", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())
			if tt.expectService {
				mockService.On("GetByID", mock.Anything, id).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.GetByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestProductHandler_GetByCategory(t *testing.T) {
	mockService := new(MockProductService)
	handler := NewProductHandler(mockService, zerolog.Nop())
	mockService.On("GetByCategory", mock.Anything, "accessories").Return([]model.Product{{Name: "Belt"}}, nil)
	mockService.On("GetByCategory", mock.Anything, "shoes").Return(nil, model.InvalidInput("Unknown category: shoes"))

	req := httptest.NewRequest(http.MethodGet, "/api/categories/accessories/products", nil)
	req.SetPathValue("category", "accessories")
	w := httptest.NewRecorder()
	handler.GetByCategory(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/categories/shoes/products", nil)
	req.SetPathValue("category", "shoes")
	w = httptest.NewRecorder()
	handler.GetByCategory(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type formFile struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, fields map[string][]string, files []formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProductHandler_Create(t *testing.T) {
	validFields := map[string][]string{
		"name":        {"Linen Shirt"},
		"description": {"Breathable"},
		"price":       {"499.99"},
		"category":    {"CLOTHING"},
		"stock":       {"12"},
		"sizes":       {"S,M", "L"},
	}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		created := &model.Product{ID: uuid.New(), Name: "Linen Shirt"}

		mockService.On("Create", mock.Anything,
			mock.MatchedBy(func(in model.ProductInput) bool {
				return in.Name == "Linen Shirt" &&
					in.Stock == 12 &&
					in.Price.Equal(decimal.RequireFromString("499.99")) &&
					assert.ObjectsAreEqual([]string{"S", "M", "L"}, in.Sizes)
			}),
			mock.MatchedBy(func(images []model.ImageUpload) bool {
				return len(images) == 1 && images[0].FileName == "front.png" && images[0].ContentType == "image/png"
			}),
		).Return(created, nil)

		w := httptest.NewRecorder()
		handler.Create(w, multipartRequest(t, validFields, []formFile{{name: "front.png", data: pngHeader}}))

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	badInputs := []struct {
		name   string
		mutate func(map[string][]string)
		files  []formFile
	}{
		{name: "Invalid price", mutate: func(f map[string][]string) { f["price"] = []string{"cheap"} }},
		{name: "Invalid stock", mutate: func(f map[string][]string) { f["stock"] = []string{"1.5"} }},
		{name: "Not an image", files: []formFile{{name: "notes.txt", data: []byte("plain text")}}},
	}

	for _, tt := range badInputs {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, zerolog.Nop())

			fields := map[string][]string{}
			for k, v := range validFields {
				fields[k] = v
			}
			if tt.mutate != nil {
				tt.mutate(fields)
			}

			w := httptest.NewRecorder()
			handler.Create(w, multipartRequest(t, fields, tt.files))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("Not multipart", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewBufferString(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Upload failure", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewProductHandler(mockService, zerolog.Nop())
		mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("failed to upload image front.png: quota exceeded"))

		w := httptest.NewRecorder()
		handler.Create(w, multipartRequest(t, validFields, []formFile{{name: "front.png", data: pngHeader}}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "quota")
	})
}
