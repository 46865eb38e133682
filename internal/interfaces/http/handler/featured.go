package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/komorebi/backend/internal/application/catalog"
)

// FeaturedHandler handles the curated featured product list
type FeaturedHandler struct {
	BaseHandler
	featuredService *catalogapp.FeaturedService
}

// NewFeaturedHandler creates a new FeaturedHandler
func NewFeaturedHandler(featuredService *catalogapp.FeaturedService) *FeaturedHandler {
	return &FeaturedHandler{featuredService: featuredService}
}

// ToggleFeaturedResponse reports the product's featured state after a toggle
type ToggleFeaturedResponse struct {
	ProductID string `json:"product_id"`
	Featured  bool   `json:"featured"`
}

// List returns the featured products in curation order
func (h *FeaturedHandler) List(c *gin.Context) {
	products, err := h.featuredService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Toggle adds the product to the featured list, or removes it if
// already present
func (h *FeaturedHandler) Toggle(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	featured, err := h.featuredService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToggleFeaturedResponse{
		ProductID: id.String(),
		Featured:  featured,
	})
}
