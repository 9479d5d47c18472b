package addons

import (
	"context"
	"net/http"

	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/models"
	"go.uber.org/zap"
)

type AddOnProvider interface {
	ListAddOnsByProductTypeID(ctx context.Context, productTypeID string) ([]models.AddOn, error)
	CreateAddOn(ctx context.Context, in models.InsertAddOn) (*models.AddOn, error)
}

type AddOnHandler struct {
	repo AddOnProvider
	log  *zap.Logger
}

func NewAddOnHandler(r AddOnProvider, log *zap.Logger) *AddOnHandler {
	return &AddOnHandler{
		repo: r,
		log:  log,
	}
}

func (h *AddOnHandler) HandleGetByType(w http.ResponseWriter, r *http.Request) {
	addOns, err := h.repo.ListAddOnsByProductTypeID(r.Context(), r.PathValue("productTypeId"))
	if err != nil {
		api.WriteFailure(w, h.log, err, "", "", "Failed to fetch add-ons")
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewAddOns(addOns))
}

func (h *AddOnHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const invalidMsg = "Invalid add-on data"

	var input models.InsertAddOn
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "")
		return
	}

	created, err := h.repo.CreateAddOn(r.Context(), input)
	if err != nil {
		api.WriteFailure(w, h.log, err, invalidMsg, "", "Failed to create add-on")
		return
	}

	h.log.Info("add-on created", zap.String("id", created.ID), zap.String("product_type_id", created.ProductTypeID))
	api.WriteJSON(w, http.StatusCreated, api.NewAddOn(*created))
}
