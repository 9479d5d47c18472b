package catalog

import (
	"context"
	"net/http"

	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/models"
	"go.uber.org/zap"
)

type ProductProvider interface {
	ListProducts(ctx context.Context) ([]models.ProductWithVariants, error)
	ListProductsByType(ctx context.Context, productTypeID string) ([]models.ProductWithVariants, error)
	GetProductByID(ctx context.Context, id string) (*models.ProductWithVariants, error)
	CreateProduct(ctx context.Context, in models.InsertProduct) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
	log  *zap.Logger
}

func NewCatalogHandler(r ProductProvider, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log,
	}
}

// HandleGet lists products with their variants. The optional "type" query
// parameter restricts the list to one product type.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.ProductWithVariants
		err      error
	)

	if typeID := r.URL.Query().Get("type"); typeID != "" {
		products, err = h.repo.ListProductsByType(r.Context(), typeID)
	} else {
		products, err = h.repo.ListProducts(r.Context())
	}
	if err != nil {
		api.WriteFailure(w, h.log, err, "", "", "Failed to fetch products")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewProductsWithVariants(products))
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.repo.GetProductByID(r.Context(), id)
	if err != nil {
		api.WriteFailure(w, h.log, err, "", "Product not found", "Failed to fetch product")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewProductWithVariants(*product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const invalidMsg = "Invalid product data"

	var input models.InsertProduct
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "")
		return
	}

	created, err := h.repo.CreateProduct(r.Context(), input)
	if err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "Failed to create product")
		return
	}

	h.log.Info("product created", zap.String("id", created.ID), zap.String("product_type_id", created.ProductTypeID))
	api.WriteJSON(w, http.StatusCreated, api.NewProduct(*created))
}
