package handler

import (
	"github.com/gin-gonic/gin"
	inquiryapp "github.com/komorebi/backend/internal/application/inquiry"
)

// InquiryHandler handles the public contact form and its admin inbox
type InquiryHandler struct {
	BaseHandler
	inquiryService *inquiryapp.Service
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService *inquiryapp.Service) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// SubmitInquiryRequest represents a contact form submission
type SubmitInquiryRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

// Submit accepts a contact form submission
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req SubmitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.inquiryService.Submit(c.Request.Context(), inquiryapp.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns inquiries for the admin inbox, newest first
func (h *InquiryHandler) List(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	inquiries, total, err := h.inquiryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, inquiries, total, filter.Page, filter.PageSize)
}

// MarkReplied marks an inquiry as handled
func (h *InquiryHandler) MarkReplied(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.inquiryService.MarkReplied(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
