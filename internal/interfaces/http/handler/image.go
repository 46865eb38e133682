package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/komorebi/backend/internal/application/catalog"
)

// ImageHandler handles product image uploads via presigned URLs
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// RequestUploadRequest asks for a presigned upload URL
type RequestUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ConfirmUploadRequest confirms a completed upload
type ConfirmUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// RequestUpload issues a presigned upload ticket for a product image
func (h *ImageHandler) RequestUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.imageService.RequestUpload(c.Request.Context(), id, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ticket)
}

// ConfirmUpload verifies the object exists and points the product at it
func (h *ImageHandler) ConfirmUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.imageService.ConfirmUpload(c.Request.Context(), id, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
