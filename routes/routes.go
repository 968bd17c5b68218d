package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"proshop/config"
	"proshop/controllers"
	"proshop/middleware"
	"proshop/models"
	"proshop/repositories"
	"proshop/services"
)

func SetupRoutes(router *gin.Engine) {
	productRepo := repositories.NewProductRepository()
	userRepo := repositories.NewUserRepository()

	var mailer services.Mailer
	if es, err := models.NewEmailService(); err == nil {
		mailer = es
	} else {
		log.Println("Email service disabled:", err)
	}

	productSvc := services.NewProductService(productRepo, userRepo, config.AppConfig.PageSize)
	authSvc := services.NewAuthService(userRepo, mailer)
	userSvc := services.NewUserService(userRepo)

	productCtrl := controllers.NewProductController(productSvc)
	userCtrl := controllers.NewUserController(authSvc, userSvc)
	uploadCtrl := controllers.NewUploadController()
	orderCtrl := controllers.NewOrderController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "API is running...") })
	router.GET("/api/config/paypal", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"clientId": config.AppConfig.PayPalClientID})
	})

	router.GET("/api/products", productCtrl.GetProducts)
	router.GET("/api/products/top", productCtrl.GetTopProducts)
	router.GET("/api/products/:id", productCtrl.GetProductByID)

	router.POST("/api/users", userCtrl.Register)
	router.POST("/api/users/auth", userCtrl.Login)
	router.POST("/api/users/logout", userCtrl.Logout)
	router.POST("/api/users/forgot-password", userCtrl.ForgotPassword)
	router.POST("/api/users/reset-password", userCtrl.ResetPassword)

	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/users/profile", userCtrl.GetProfile)
		auth.PUT("/users/profile", userCtrl.UpdateProfile)

		auth.POST("/products/:id/reviews", productCtrl.CreateReview)

		auth.POST("/orders", orderCtrl.AddOrderItems)
		auth.GET("/orders/myorders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
		auth.PUT("/orders/:id/pay", orderCtrl.UpdateOrderToPaid)
	}

	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PUT("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)
		admin.DELETE("/products/:id/reviews/:reviewId", productCtrl.DeleteReview)
		admin.DELETE("/products/:id/images/:imageName", productCtrl.DeleteProductImage)

		admin.POST("/upload", uploadCtrl.UploadImages)
		admin.DELETE("/upload/*public_id", uploadCtrl.DeleteUploadedImage)

		admin.GET("/users", userCtrl.GetUsers)
		admin.GET("/users/:id", userCtrl.GetUserByID)
		admin.PUT("/users/:id", userCtrl.UpdateUser)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.GET("/orders", orderCtrl.GetOrders)
		admin.PUT("/orders/:id/deliver", orderCtrl.UpdateOrderToDelivered)
	}

	router.Static("/uploads", config.AppConfig.UploadDir)
}
