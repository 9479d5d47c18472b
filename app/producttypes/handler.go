package producttypes

import (
	"context"
	"net/http"

	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/models"
	"go.uber.org/zap"
)

type ProductTypeProvider interface {
	ListProductTypes(ctx context.Context) ([]models.ProductType, error)
	GetProductTypeByID(ctx context.Context, id string) (*models.ProductType, error)
	CreateProductType(ctx context.Context, in models.InsertProductType) (*models.ProductType, error)
}

type ProductTypeHandler struct {
	repo ProductTypeProvider
	log  *zap.Logger
}

func NewProductTypeHandler(r ProductTypeProvider, log *zap.Logger) *ProductTypeHandler {
	return &ProductTypeHandler{
		repo: r,
		log:  log,
	}
}

func (h *ProductTypeHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.ListProductTypes(r.Context())
	if err != nil {
		api.WriteFailure(w, h.log, err, "", "", "Failed to fetch product types")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewProductTypes(types))
}

func (h *ProductTypeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	productType, err := h.repo.GetProductTypeByID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteFailure(w, h.log, err, "", "Product type not found", "Failed to fetch product type")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewProductType(*productType))
}

func (h *ProductTypeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const invalidMsg = "Invalid product type data"

	var input models.InsertProductType
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "")
		return
	}

	created, err := h.repo.CreateProductType(r.Context(), input)
	if err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "Failed to create product type")
		return
	}

	h.log.Info("product type created", zap.String("id", created.ID), zap.String("name", created.Name))
	api.WriteJSON(w, http.StatusCreated, api.NewProductType(*created))
}
