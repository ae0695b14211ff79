package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/softwrapstudio-web/Softwrap-Studio/config"
	"github.com/softwrapstudio-web/Softwrap-Studio/controllers"
	_ "github.com/softwrapstudio-web/Softwrap-Studio/docs"
	"github.com/softwrapstudio-web/Softwrap-Studio/libs"
	"github.com/softwrapstudio-web/Softwrap-Studio/middleware"
	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
	"github.com/softwrapstudio-web/Softwrap-Studio/routes"
	"github.com/softwrapstudio-web/Softwrap-Studio/services"
)

// @title Softwrap Studio API
// @version 1.0
// @description Storefront backend: catalog, cart, checkout and payments.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.InitRedis()
	defer config.CloseRedis()

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	var cartRepo repositories.CartRepository
	var handoffRepo repositories.HandoffRepository
	if config.RedisClient != nil {
		cartRepo = repositories.NewRedisCartRepository(config.RedisClient)
		handoffRepo = repositories.NewRedisHandoffRepository(config.RedisClient)
	} else {
		cartRepo = repositories.NewMemoryCartRepository()
		handoffRepo = repositories.NewMemoryHandoffRepository()
	}

	cartStore := services.NewCartStore(cartRepo)
	cartStore.Subscribe(func(userID int) {
		log.Printf("cart changed for user %d", userID)
	})

	pricing := services.Pricing{
		FreeShippingThreshold: config.AppConfig.FreeShippingThreshold,
		ShippingFee:           config.AppConfig.ShippingFee,
		CODFee:                config.AppConfig.CODFee,
	}

	var mailer services.Mailer
	if emailService, err := models.NewEmailService(); err != nil {
		log.Println("Email disabled:", err)
	} else {
		mailer = emailService
	}

	orderRepo := repositories.NewOrderRepository()
	productRepo := repositories.NewProductRepository()
	gateway := libs.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret)

	authService := services.NewAuthService()
	productService := services.NewProductService()
	checkoutService := services.NewCheckoutService(handoffRepo)
	paymentService := services.NewPaymentService(
		cartStore, pricing, orderRepo, productRepo, gateway, handoffRepo, mailer,
		config.AppConfig.RazorpayKeyID, config.AppConfig.WhatsAppNumber,
	)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, routes.Controllers{
		Auth:     controllers.NewAuthController(authService, cartStore),
		Product:  controllers.NewProductController(productService),
		Cart:     controllers.NewCartController(cartStore, productService),
		Checkout: controllers.NewCheckoutController(checkoutService, cartStore, pricing),
		Payment:  controllers.NewPaymentController(paymentService),
		Order:    controllers.NewOrderController(orderRepo),
	})

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
