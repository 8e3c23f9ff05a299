package router

import (
	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/config"
	"github.com/vitrine/vitrine-backend/internal/app/controller"
	"github.com/vitrine/vitrine-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	userController     *controller.UserController
	fileController     *controller.FileController
	segmentController  *controller.SegmentController
	businessController *controller.BusinessController
	categoryController *controller.CategoryController
	productController  *controller.ProductController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	fileController *controller.FileController,
	segmentController *controller.SegmentController,
	businessController *controller.BusinessController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		userController:     userController,
		fileController:     fileController,
		segmentController:  segmentController,
		businessController: businessController,
		categoryController: categoryController,
		productController:  productController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Vitrine API is running",
		})
	})

	sessions := router.Group("/sessions")
	{
		sessions.POST("", r.authController.Login)
		sessions.DELETE("", r.authMiddleware.Authenticate(), r.authController.Logout)
	}

	users := router.Group("/users")
	{
		users.POST("", r.userController.Register)

		users.GET("", r.authMiddleware.Authenticate(), r.userController.Index)
		users.GET("/:id", r.authMiddleware.Authenticate(), r.userController.Show)
		users.PUT("/:id", r.authMiddleware.Authenticate(), r.userController.Update)
	}

	files := router.Group("/files")
	files.Use(r.authMiddleware.Authenticate())
	{
		files.POST("", r.fileController.Store)
	}

	segments := router.Group("/segments")
	{
		segments.GET("", r.segmentController.Index)
		segments.POST("", r.authMiddleware.Authenticate(), r.segmentController.Store)
	}

	business := router.Group("/business")
	{
		business.GET("/:businessId", r.businessController.Show)

		business.GET("", r.authMiddleware.Authenticate(), r.businessController.Index)
		business.POST("", r.authMiddleware.Authenticate(), r.businessController.Store)
		business.PUT("/:businessId", r.authMiddleware.Authenticate(), r.businessController.Update)
		business.DELETE("/:businessId", r.authMiddleware.Authenticate(), r.businessController.Delete)

		categories := business.Group("/:businessId/categories")
		{
			categories.GET("", r.categoryController.Index)
			categories.GET("/:id", r.categoryController.Show)

			categories.POST("", r.authMiddleware.Authenticate(), r.categoryController.Store)
			categories.PUT("/:id", r.authMiddleware.Authenticate(), r.categoryController.Update)
			categories.DELETE("/:id", r.authMiddleware.Authenticate(), r.categoryController.Delete)
		}

		products := business.Group("/:businessId/products")
		{
			products.GET("", r.productController.Index)
			products.GET("/:id", r.productController.Show)

			products.POST("", r.authMiddleware.Authenticate(), r.productController.Store)
			products.PUT("/:id", r.authMiddleware.Authenticate(), r.productController.Update)
			products.DELETE("/:id", r.authMiddleware.Authenticate(), r.productController.Delete)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
