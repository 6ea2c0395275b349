package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/pos/backend/internal/interfaces/http/router"
)

// Handlers groups every API handler so they can be mounted together
type Handlers struct {
	Auth      *AuthHandler
	Branch    *BranchHandler
	User      *UserHandler
	Category  *CategoryHandler
	Product   *ProductHandler
	Image     *ProductImageHandler // nil when object storage is disabled
	Inventory *InventoryHandler
	Sale      *SaleHandler
	System    *SystemHandler
}

// Mount registers the API routes on r. Public routes skip the router
// middleware; loginGuard runs in front of the login handler and may be nil.
func (h Handlers) Mount(r *router.Router, loginGuard gin.HandlerFunc) {
	login := []gin.HandlerFunc{h.Auth.Login}
	if loginGuard != nil {
		login = append([]gin.HandlerFunc{loginGuard}, login...)
	}
	r.RegisterPublic(router.NewDomainGroup("auth-public", "/auth").
		POST("/login", login...))
	r.RegisterPublic(router.NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping))

	admin := middleware.RequireAdmin()

	r.Register(router.NewDomainGroup("auth", "/auth").
		GET("/me", h.Auth.Me))

	r.Register(router.NewDomainGroup("branches", "/branches").
		GET("", h.Branch.List).
		GET("/:id", h.Branch.GetByID).
		POST("", admin, h.Branch.Create).
		PUT("/:id", admin, h.Branch.Update).
		DELETE("/:id", admin, h.Branch.Delete))

	r.Register(router.NewDomainGroup("users", "/users").
		Use(admin).
		GET("", h.User.List).
		GET("/:id", h.User.GetByID).
		POST("", h.User.Create).
		PUT("/:id", h.User.Update).
		DELETE("/:id", h.User.Delete))

	r.Register(router.NewDomainGroup("categories", "/categories").
		GET("", h.Category.List).
		POST("", admin, h.Category.Create).
		DELETE("/:id", admin, h.Category.Delete))

	products := router.NewDomainGroup("products", "/products").
		GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		POST("", admin, h.Product.Create).
		PUT("/:id", admin, h.Product.Update).
		DELETE("/:id", admin, h.Product.Delete).
		POST("/:id/restore", admin, h.Product.Restore)
	if h.Image != nil {
		products.Group("image", "/:id/image").
			Use(admin).
			POST("/upload-url", h.Image.RequestUpload).
			PUT("", h.Image.ConfirmUpload).
			DELETE("", h.Image.Remove)
	}
	r.Register(products)

	r.Register(router.NewDomainGroup("pos", "/pos").
		GET("/products", h.Product.POSView))

	r.Register(router.NewDomainGroup("inventory", "/inventory").
		POST("/movements", h.Inventory.ApplyMovement).
		GET("/movements", h.Inventory.ListMovements).
		GET("/stock", h.Inventory.ListStock))

	r.Register(router.NewDomainGroup("sales", "/sales").
		POST("", h.Sale.PlaceOrder).
		GET("", h.Sale.List).
		GET("/:id", h.Sale.GetByID))
}
