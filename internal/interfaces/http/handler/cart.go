package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/komorebi/backend/internal/application/cart"
)

// CartHandler handles the authenticated member's cart. Every response
// carries the reconciled cart view so clients never render stale flags.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest represents a request to add a variant to the cart
type AddItemRequest struct {
	VariantID string `json:"variant_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest represents a request to set a line's quantity
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// AdjustQuantityRequest represents a +/- step on a cart line
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// Get returns the reconciled cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	view, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// AddItem adds a variant to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), userID, variantID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SetQuantity sets the quantity of a cart line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	variantID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.cartService.SetQuantity(c.Request.Context(), userID, variantID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// AdjustQuantity steps a line's quantity by a delta, mirroring the cart
// drawer's +/- controls
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	variantID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), userID, variantID, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem removes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	variantID, ok := h.bindID(c)
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), userID, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
