package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/softwrapstudio-web/Softwrap-Studio/controllers"
	"github.com/softwrapstudio-web/Softwrap-Studio/middleware"
)

// Controllers carries the wired-up handlers into route registration.
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Payment  *controllers.PaymentController
	Order    *controllers.OrderController
}

func SetupRoutes(router *gin.Engine, ctrl Controllers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", ctrl.Auth.Register)
	router.POST("/auth/login", ctrl.Auth.Login)
	router.GET("/categories", ctrl.Product.GetAllCategories)
	router.GET("/products", ctrl.Product.GetAllProducts)
	router.GET("/products/:id", ctrl.Product.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/auth/logout", ctrl.Auth.Logout)
		auth.GET("/auth/profile", ctrl.Auth.GetProfile)

		auth.GET("/cart", ctrl.Cart.GetCart)
		auth.DELETE("/cart", ctrl.Cart.Clear)
		auth.GET("/cart/count", ctrl.Cart.GetCount)
		auth.POST("/cart/items", ctrl.Cart.AddItem)
		auth.PATCH("/cart/items/:productId", ctrl.Cart.SetQuantity)
		auth.DELETE("/cart/items/:productId", ctrl.Cart.RemoveItem)
		auth.POST("/cart/items/:productId/increment", ctrl.Cart.Increment)
		auth.POST("/cart/items/:productId/decrement", ctrl.Cart.Decrement)

		auth.GET("/checkout/summary", ctrl.Checkout.GetSummary)
		auth.POST("/checkout", ctrl.Checkout.Submit)

		auth.GET("/payment/summary", ctrl.Payment.GetSummary)
		auth.POST("/payment/razorpay/initiate", ctrl.Payment.InitiateRazorpay)
		auth.POST("/payment/razorpay/verify", ctrl.Payment.VerifyRazorpay)
		auth.POST("/payment/razorpay/cancel", ctrl.Payment.CancelRazorpay)
		auth.POST("/payment/cod", ctrl.Payment.CashOnDelivery)
		auth.GET("/payment/whatsapp-link", ctrl.Payment.WhatsAppLink)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", ctrl.Product.CreateProduct)
		admin.PATCH("/products/:id", ctrl.Product.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Product.DeleteProduct)

		admin.GET("/orders", ctrl.Order.GetAllOrders)
		admin.GET("/orders/:id", ctrl.Order.GetOrderByID)
		admin.GET("/reconciliation", ctrl.Order.GetReconciliation)
		admin.PATCH("/orders/:id/status", ctrl.Order.UpdateOrderStatus)
	}

	router.Static("/uploads", "./uploads")
}
