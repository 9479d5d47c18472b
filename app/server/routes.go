package server

import (
	"context"
	"net/http"

	"github.com/catalogpro/catalog/app/addons"
	"github.com/catalogpro/catalog/app/api"
	"github.com/catalogpro/catalog/app/catalog"
	"github.com/catalogpro/catalog/app/producttypes"
	"github.com/catalogpro/catalog/app/variants"
	"go.uber.org/zap"
)

// Store is everything the API needs from persistence. Both the postgres
// repositories and the in-memory store satisfy it.
type Store interface {
	producttypes.ProductTypeProvider
	catalog.ProductProvider
	variants.VariantProvider
	addons.AddOnProvider
	Ping(ctx context.Context) error
}

// NewRouter registers every API route on a fresh mux and wraps it with the
// request logging and panic recovery middleware.
func NewRouter(store Store, log *zap.Logger) http.Handler {
	typesHandler := producttypes.NewProductTypeHandler(store, log.Named("product_types"))
	catalogHandler := catalog.NewCatalogHandler(store, log.Named("catalog"))
	variantsHandler := variants.NewVariantHandler(store, log.Named("variants"))
	addOnsHandler := addons.NewAddOnHandler(store, log.Named("add_ons"))

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/product-types", typesHandler.HandleGetAll)
	mux.HandleFunc("GET /api/product-types/{id}", typesHandler.HandleGet)
	mux.HandleFunc("POST /api/product-types", typesHandler.HandleCreate)

	mux.HandleFunc("GET /api/products", catalogHandler.HandleGet)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /api/products/{id}/variants", variantsHandler.HandleGetByProduct)
	mux.HandleFunc("POST /api/products", catalogHandler.HandleCreate)

	mux.HandleFunc("POST /api/variants", variantsHandler.HandleCreate)

	mux.HandleFunc("GET /api/add-ons/{productTypeId}", addOnsHandler.HandleGetByType)
	mux.HandleFunc("POST /api/add-ons", addOnsHandler.HandleCreate)

	mux.HandleFunc("GET /healthz", healthz(store, log))

	return Recover(log, LogRequests(log, mux))
}

func healthz(store Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			log.Warn("health check failed", zap.Error(err))
			api.WriteError(w, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
