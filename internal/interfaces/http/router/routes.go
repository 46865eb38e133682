package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komorebi/backend/internal/interfaces/http/handler"
	"github.com/komorebi/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Featured *handler.FeaturedHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Inquiry  *handler.InquiryHandler
	Image    *handler.ImageHandler
	System   *handler.SystemHandler
}

// Routes assembles the full API route table. Public storefront reads
// need no token, member routes require authentication, and the admin
// panel additionally requires the ADMIN role.
func Routes(h Handlers, authMW gin.HandlerFunc) []RouteRegistrar {
	system := NewDomainGroup("system", "/system")
	system.GET("/health", h.System.Health)
	system.GET("/info", h.System.Info)

	public := NewDomainGroup("storefront", "")
	public.GET("/products", h.Product.List)
	public.GET("/products/search", h.Product.Search)
	public.GET("/products/slug/:slug", h.Product.GetBySlug)
	public.GET("/products/:id", h.Product.Get)
	public.GET("/products/:id/variants", h.Product.ListVariants)
	public.GET("/categories", h.Category.List)
	public.GET("/categories/:id", h.Category.Get)
	public.GET("/featured", h.Featured.List)

	// The note hits a paid generation API, so it gets a tighter limit
	note := NewDomainGroup("curator", "")
	note.Use(middleware.RateLimit(10, time.Minute))
	note.GET("/products/:id/curator-note", h.Product.CuratorNote)

	contact := NewDomainGroup("contact", "")
	contact.Use(middleware.RateLimit(5, time.Minute))
	contact.POST("/inquiries", h.Inquiry.Submit)

	authPublic := NewDomainGroup("auth", "/auth")
	authPublic.Use(middleware.RateLimit(20, time.Minute))
	authPublic.POST("/register", h.Auth.Register)
	authPublic.POST("/login", h.Auth.Login)

	member := NewDomainGroup("member", "")
	member.Use(authMW)
	member.POST("/auth/logout", h.Auth.Logout)
	member.GET("/auth/me", h.Auth.Me)
	member.PUT("/auth/profile", h.Auth.UpdateProfile)
	member.PUT("/auth/password", h.Auth.ChangePassword)
	member.GET("/cart", h.Cart.Get)
	member.POST("/cart/items", h.Cart.AddItem)
	member.PUT("/cart/items/:id", h.Cart.SetQuantity)
	member.PATCH("/cart/items/:id", h.Cart.AdjustQuantity)
	member.DELETE("/cart/items/:id", h.Cart.RemoveItem)
	member.DELETE("/cart", h.Cart.Clear)
	member.POST("/orders", h.Order.Place)
	member.GET("/orders", h.Order.ListMine)
	member.GET("/orders/:id", h.Order.Get)
	member.PUT("/orders/:id/payment-note", h.Order.SetPaymentNote)

	admin := NewDomainGroup("admin", "/admin")
	admin.Use(authMW, middleware.RequireAdmin())
	admin.GET("/products", h.Product.ListAll)
	admin.POST("/products", h.Product.Create)
	admin.PUT("/products/:id", h.Product.Update)
	admin.DELETE("/products/:id", h.Product.Delete)
	admin.POST("/products/:id/image/upload-url", h.Image.RequestUpload)
	admin.POST("/products/:id/image/confirm", h.Image.ConfirmUpload)
	admin.POST("/products/:id/featured", h.Featured.Toggle)
	admin.POST("/products/:id/variants", h.Product.CreateVariant)
	admin.PUT("/variants/:id", h.Product.UpdateVariant)
	admin.DELETE("/variants/:id", h.Product.DeleteVariant)
	admin.PUT("/variants/:id/stock", h.Product.SetStock)
	admin.PATCH("/variants/:id/stock", h.Product.AdjustStock)
	admin.POST("/categories", h.Category.Create)
	admin.PUT("/categories/:id", h.Category.Update)
	admin.DELETE("/categories/:id", h.Category.Delete)
	admin.GET("/orders", h.Order.ListAll)
	admin.PUT("/orders/:id/status", h.Order.UpdateStatus)
	admin.GET("/inquiries", h.Inquiry.List)
	admin.PUT("/inquiries/:id/reply", h.Inquiry.MarkReplied)

	return []RouteRegistrar{system, public, note, contact, authPublic, member, admin}
}
