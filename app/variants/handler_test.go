package variants

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/models"
	"github.com/catalogpro/catalog/models/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Helpers ---

func seededStore(t *testing.T) (*memory.Store, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	pt, err := store.CreateProductType(ctx, models.InsertProductType{Name: "food"})
	require.NoError(t, err)
	p, err := store.CreateProduct(ctx, models.InsertProduct{Name: "Pizza", Description: "Wood fired", ProductTypeID: pt.ID})
	require.NoError(t, err)
	return store, p.ID
}

func post(handler *VariantHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/variants", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)
	return rec
}

// --- Tests ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		body               func(productID string) string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success",
			body: func(id string) string {
				return `{"productId":"` + id + `","name":"Large","price":"12.5","stock":4,"sku":"PZ-L","attributes":{"size":"L"}}`
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp api.Variant
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.NotEmpty(t, resp.ID)
				assert.Equal(t, "12.50", resp.Price)
				assert.Equal(t, 4, resp.Stock)
				assert.Equal(t, map[string]string{"size": "L"}, resp.Attributes)
			},
		},
		{
			name: "Numeric price and defaults",
			body: func(id string) string {
				return `{"productId":"` + id + `","name":"Small","price":8,"sku":"PZ-S"}`
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp api.Variant
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "8.00", resp.Price)
				assert.Equal(t, 0, resp.Stock)
				assert.Equal(t, map[string]string{}, resp.Attributes)
			},
		},
		{
			name: "Too many decimals",
			body: func(id string) string {
				return `{"productId":"` + id + `","name":"Small","price":"1.999","sku":"PZ-S"}`
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Invalid variant data", resp.Message)
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "price", resp.Errors[0].Field)
				assert.Equal(t, "price", resp.Errors[0].Rule)
			},
		},
		{
			name: "Negative stock",
			body: func(id string) string {
				return `{"productId":"` + id + `","name":"Small","price":"1","stock":-1,"sku":"PZ-S"}`
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "stock", resp.Errors[0].Field)
			},
		},
		{
			name: "Unparseable price",
			body: func(id string) string {
				return `{"productId":"` + id + `","name":"Small","price":"cheap","sku":"PZ-S"}`
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				require.Len(t, resp.Errors, 1)
				assert.Equal(t, "price", resp.Errors[0].Field)
			},
		},
		{
			name: "Unknown product",
			body: func(string) string {
				return `{"productId":"missing","name":"Small","price":"1","sku":"PZ-S"}`
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"message":"Failed to create variant"}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store, productID := seededStore(t)
			handler := NewVariantHandler(store, zap.NewNop())

			// Act
			rec := post(handler, tc.body(productID))

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleCreateDuplicateSKU(t *testing.T) {
	store, productID := seededStore(t)
	handler := NewVariantHandler(store, zap.NewNop())
	body := `{"productId":"` + productID + `","name":"Large","price":"12.50","sku":"PZ-L"}`

	first := post(handler, body)
	second := post(handler, body)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusInternalServerError, second.Code)

	variants, err := store.ListVariantsByProductID(context.Background(), productID)
	require.NoError(t, err)
	assert.Len(t, variants, 1)
}

func TestHandleGetByProduct(t *testing.T) {
	store, productID := seededStore(t)
	handler := NewVariantHandler(store, zap.NewNop())
	post(handler, `{"productId":"`+productID+`","name":"Small","price":"8","sku":"PZ-S"}`)
	post(handler, `{"productId":"`+productID+`","name":"Large","price":"12","sku":"PZ-L"}`)

	t.Run("Lists variants by SKU", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/"+productID+"/variants", nil)
		req.SetPathValue("id", productID)
		rec := httptest.NewRecorder()

		handler.HandleGetByProduct(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []api.Variant
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "PZ-L", resp[0].SKU)
		assert.Equal(t, "PZ-S", resp[1].SKU)
	})

	t.Run("Unknown product is empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/missing/variants", nil)
		req.SetPathValue("id", "missing")
		rec := httptest.NewRecorder()

		handler.HandleGetByProduct(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}
