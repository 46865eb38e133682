package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/komorebi/backend/internal/application/catalog"
	curatorapp "github.com/komorebi/backend/internal/application/curator"
	"github.com/komorebi/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog product endpoints, both the public
// storefront reads and the admin mutations
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	noteService    *curatorapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, noteService *curatorapp.Service) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		noteService:    noteService,
	}
}

// VariantRequest represents a variant in a product create request
type VariantRequest struct {
	SKUCode string `json:"sku_code" binding:"required,min=1,max=40"`
	Color   string `json:"color" binding:"max=50"`
	Size    string `json:"size" binding:"max=20"`
	Stock   int    `json:"stock" binding:"min=0"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Material    string           `json:"material" binding:"max=100"`
	Origin      string           `json:"origin" binding:"max=100"`
	Price       float64          `json:"price" binding:"required,gt=0"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url"`
	CategoryID  *string          `json:"category_id"`
	Variants    []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Material    string   `json:"material" binding:"max=100"`
	Origin      string   `json:"origin" binding:"max=100"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  *string  `json:"category_id"`
	Listed      *bool    `json:"listed"`
}

// UpdateVariantRequest represents an edit of an existing variant. Absent
// fields keep their current value.
type UpdateVariantRequest struct {
	SKUCode *string `json:"sku_code" binding:"omitempty,min=1,max=40"`
	Color   *string `json:"color" binding:"omitempty,max=50"`
	Size    *string `json:"size" binding:"omitempty,max=20"`
	Stock   *int    `json:"stock" binding:"omitempty,min=0"`
}

// SetStockRequest represents a request to set a variant's stock level
type SetStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// AdjustStockRequest represents a request to adjust a variant's stock
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func parseCategoryID(raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// List returns listed products for the storefront
func (h *ProductHandler) List(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	ctx := c.Request.Context()

	if category := c.Query("category_id"); category != "" {
		categoryID, err := uuid.Parse(category)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		products, err := h.productService.ListByCategory(ctx, categoryID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, products)
		return
	}

	products, err := h.productService.List(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Search returns listed products matching the keyword
func (h *ProductHandler) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))

	req, ok := h.bindList(c)
	if !ok {
		return
	}

	products, err := h.productService.Search(c.Request.Context(), keyword, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySlug resolves a product detail URL slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	var req dto.SlugRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid slug")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), req.Slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// CuratorNote generates an ephemeral curator's note for a product
func (h *ProductHandler) CuratorNote(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GenerateNote(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// ListAll returns every product, listed or not, for the admin panel
func (h *ProductHandler) ListAll(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	products, total, err := h.productService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Create creates a product with its variants
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categoryID, ok := parseCategoryID(req.CategoryID)
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	input := catalogapp.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Material:    req.Material,
		Origin:      req.Origin,
		Price:       decimal.NewFromFloat(req.Price),
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
	}
	for _, v := range req.Variants {
		input.Variants = append(input.Variants, catalogapp.CreateVariantInput{
			SKUCode: v.SKUCode,
			Color:   v.Color,
			Size:    v.Size,
			Stock:   v.Stock,
		})
	}

	product, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product's editable fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categoryID, ok := parseCategoryID(req.CategoryID)
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	input := catalogapp.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Material:    req.Material,
		Origin:      req.Origin,
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
		Listed:      req.Listed,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		input.Price = &price
	}

	product, err := h.productService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product and its variants
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListVariants returns a product's variants
func (h *ProductHandler) ListVariants(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	variants, err := h.productService.ListVariants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variants)
}

// CreateVariant adds a variant to an existing product
func (h *ProductHandler) CreateVariant(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.productService.AddVariant(c.Request.Context(), id, catalogapp.CreateVariantInput{
		SKUCode: req.SKUCode,
		Color:   req.Color,
		Size:    req.Size,
		Stock:   req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, variant)
}

// UpdateVariant edits a variant's SKU, attributes, or stock
func (h *ProductHandler) UpdateVariant(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.productService.UpdateVariant(c.Request.Context(), id, catalogapp.UpdateVariantInput{
		SKUCode: req.SKUCode,
		Color:   req.Color,
		Size:    req.Size,
		Stock:   req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// DeleteVariant removes a variant from its product
func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteVariant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetStock sets a variant's absolute stock level
func (h *ProductHandler) SetStock(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.productService.SetVariantStock(c.Request.Context(), id, req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// AdjustStock applies a delta to a variant's stock level
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variant, err := h.productService.AdjustVariantStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}
