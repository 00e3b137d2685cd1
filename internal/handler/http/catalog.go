package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FItraRizky/fro/internal/catalog"
	"github.com/FItraRizky/fro/internal/checkout"
	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/pkg/httputil"
)

// CatalogHandler serves the read-only catalog.
type CatalogHandler struct {
	engine *catalog.Engine
	pricer *checkout.Pricer
	logger *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(engine *catalog.Engine, pricer *checkout.Pricer, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{engine: engine, pricer: pricer, logger: logger}
}

// ListMeta describes a product page.
type ListMeta struct {
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_prev"`
	Params     catalog.Params `json:"params"`
}

// ProductPage is the product detail response.
type ProductPage struct {
	Product domain.Product        `json:"product"`
	Related []domain.Product      `json:"related"`
	Reviews catalog.ReviewSummary `json:"reviews"`
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := catalog.ParamsFromValues(r.URL.Query()).Normalize()
	res := h.engine.Query(r.Context(), params)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: res.Data,
		Meta: ListMeta{
			TotalCount: res.TotalCount,
			Page:       res.Page,
			PerPage:    res.PerPage,
			TotalPages: res.TotalPages,
			HasNext:    res.HasNext,
			HasPrev:    res.HasPrev,
			Params:     params,
		},
	})
}

// GetProduct handles GET /api/v1/products/{id}, where id is a product ID or slug.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.engine.Product(id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	related, err := h.engine.Related(product.ID, catalog.RelatedLimit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	reviews, err := h.engine.Reviews(product.ID, 0)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ProductPage{Product: product, Related: related, Reviews: reviews})
}

// Reviews handles GET /api/v1/products/{id}/reviews?rating=N
func (h *CatalogHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))

	summary, err := h.engine.Reviews(chi.URLParam(r, "id"), rating)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, summary)
}

// Featured handles GET /api/v1/products/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.engine.Featured())
}

// NewArrivals handles GET /api/v1/products/new
func (h *CatalogHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.engine.NewArrivals())
}

// Bestsellers handles GET /api/v1/products/bestsellers
func (h *CatalogHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.engine.Bestsellers())
}

// Categories handles GET /api/v1/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.engine.Categories())
}

// ShippingMethods handles GET /api/v1/shipping-methods
func (h *CatalogHandler) ShippingMethods(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.pricer.ShippingMethods())
}
