package transport

import (
	"net/http"

	"atelier/internal/middleware"
	"atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves the storefront pages
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers the storefront routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/home", h.Home)
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.Shop)
		r.Get("/{id}", h.Product)
	})
}

// Home returns the visible homepage sections and featured products
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.Home())
}

// Shop lists products filtered by ?category= and ordered by ?sort=
func (h *CatalogHandler) Shop(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	order := service.SortOrder(r.URL.Query().Get("sort"))

	products, err := h.catalog.Shop(category, order)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// Product returns one product by id
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Product(chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
