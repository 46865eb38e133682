package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/komorebi/backend/internal/application/order"
	"github.com/komorebi/backend/internal/domain/identity"
	"github.com/komorebi/backend/internal/domain/order"
	"github.com/komorebi/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ShippingRequest represents shipping details collected at checkout
type ShippingRequest struct {
	FullName  string `json:"full_name" binding:"required,min=1,max=100"`
	Phone     string `json:"phone" binding:"required,min=1,max=30"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address" binding:"max=300"`
	City      string `json:"city" binding:"max=100"`
	StoreCode string `json:"store_code" binding:"max=30"`
	StoreName string `json:"store_name" binding:"max=100"`
}

// PlaceOrderRequest represents a checkout request
type PlaceOrderRequest struct {
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Shipping      ShippingRequest `json:"shipping" binding:"required"`
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentNoteRequest represents a member's bank transfer reference
type PaymentNoteRequest struct {
	Note string `json:"note" binding:"required,min=1,max=200"`
}

// Place converts the member's cart into an order
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	method := order.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		h.BadRequest(c, "Unknown payment method")
		return
	}

	resp, err := h.orderService.PlaceOrder(c.Request.Context(), userID, orderapp.PlaceOrderInput{
		PaymentMethod: method,
		Shipping: order.ShippingDetails{
			FullName:  req.Shipping.FullName,
			Phone:     req.Shipping.Phone,
			Email:     req.Shipping.Email,
			Address:   req.Shipping.Address,
			City:      req.Shipping.City,
			StoreCode: req.Shipping.StoreCode,
			StoreName: req.Shipping.StoreName,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMine returns the authenticated member's orders, newest first
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	req, ok := h.bindList(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListMine(c.Request.Context(), userID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns a single order. Members only see their own orders;
// admins see every order.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	isAdmin := c.GetString(middleware.JWTRoleKey) == string(identity.RoleAdmin)
	if resp.UserID != userID && !isAdmin {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, resp)
}

// SetPaymentNote records the member's bank transfer reference
func (h *OrderHandler) SetPaymentNote(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req PaymentNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.SetPaymentNote(c.Request.Context(), id, userID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAll returns every order for the admin panel
func (h *OrderHandler) ListAll(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	orders, total, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// UpdateStatus moves an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	status := order.OrderStatus(req.Status)
	if !status.IsValid() {
		h.BadRequest(c, "Unknown order status")
		return
	}

	resp, err := h.orderService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
