package variants

import (
	"context"
	"net/http"

	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/models"
	"go.uber.org/zap"
)

type VariantProvider interface {
	ListVariantsByProductID(ctx context.Context, productID string) ([]models.Variant, error)
	CreateVariant(ctx context.Context, in models.InsertVariant) (*models.Variant, error)
}

type VariantHandler struct {
	repo VariantProvider
	log  *zap.Logger
}

func NewVariantHandler(r VariantProvider, log *zap.Logger) *VariantHandler {
	return &VariantHandler{
		repo: r,
		log:  log,
	}
}

// HandleGetByProduct lists the variants of the product in the "id" path
// value. An unknown product yields an empty list.
func (h *VariantHandler) HandleGetByProduct(w http.ResponseWriter, r *http.Request) {
	variants, err := h.repo.ListVariantsByProductID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteFailure(w, h.log, err, "", "", "Failed to fetch variants")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewVariants(variants))
}

// HandleCreate inserts a variant. Duplicate SKUs are store constraint
// violations and answer 500 like any other persistence failure.
func (h *VariantHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const invalidMsg = "Invalid variant data"

	var input models.InsertVariant
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "")
		return
	}

	created, err := h.repo.CreateVariant(r.Context(), input)
	if err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "Failed to create variant")
		return
	}

	h.log.Info("variant created", zap.String("id", created.ID), zap.String("sku", created.SKU))
	api.WriteJSON(w, http.StatusCreated, api.NewVariant(*created))
}
