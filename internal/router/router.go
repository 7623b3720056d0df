// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bookloft/bookstore-backend/internal/config"
	"github.com/bookloft/bookstore-backend/internal/handlers"
	"github.com/bookloft/bookstore-backend/internal/middleware"
	"github.com/bookloft/bookstore-backend/internal/services"
	"github.com/bookloft/bookstore-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	checkoutService := services.NewCheckoutService(db, cfg)
	orderService := services.NewOrderService(db)
	contentService := services.NewContentService(db)
	settingsService := services.NewSettingsService(db)
	translationService := services.NewTranslationService(db)
	backupService, err := services.NewBackupService(db, cfg)
	if err != nil {
		logrus.WithError(err).Warn("Backup archiving unavailable")
		backupService, _ = services.NewBackupService(db, &config.Config{})
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	bookHandler := handlers.NewBookHandler(catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, settingsService)
	orderHandler := handlers.NewOrderHandler(orderService)
	blogHandler := handlers.NewBlogHandler(contentService)
	contentHandler := handlers.NewContentHandler(contentService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	translationHandler := handlers.NewTranslationHandler(translationService)
	backupHandler := handlers.NewBackupHandler(backupService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Public storefront API
	v1 := r.Group("/api/v1")
	{
		// Catalog
		v1.GET("/books", bookHandler.ListBooks)
		v1.GET("/books/:id", bookHandler.GetBook)
		v1.GET("/genres", bookHandler.ListGenres)

		// Checkout
		checkout := v1.Group("/books/:id/checkout")
		checkout.Use(middleware.CheckoutRateLimit())
		{
			checkout.GET("", checkoutHandler.StartCheckout)
			checkout.POST("/quote", checkoutHandler.Quote)
			checkout.POST("/review", checkoutHandler.Review)
			checkout.POST("", checkoutHandler.PlaceOrder)
		}

		// Blog
		v1.GET("/blogs", blogHandler.ListBlogs)
		v1.GET("/blogs/:slug", blogHandler.GetBlogBySlug)
		v1.POST("/blogs/:slug/comments", middleware.CommentRateLimit(), blogHandler.SubmitComment)

		// Site content
		v1.GET("/pages/:key", contentHandler.GetPage)
		v1.GET("/carousel", contentHandler.ListSlides)
		v1.GET("/menus", contentHandler.ListMenus)
		v1.GET("/settings", settingsHandler.GetSettings)
		v1.GET("/translations", translationHandler.GetDictionary)
	}

	// Admin console API
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuditLogMiddleware(db))
	{
		// Authentication
		auth := admin.Group("/auth")
		{
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
		}

		// Order desk and comment moderation are open to staff accounts
		desk := admin.Group("")
		desk.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			desk.GET("/dashboard", orderHandler.GetDashboardStats)

			desk.GET("/orders", orderHandler.ListOrders)
			desk.GET("/orders/:id", orderHandler.GetOrder)
			desk.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
			desk.PUT("/orders/:id/payment", orderHandler.UpdatePaymentStatus)
			desk.PUT("/orders/:id/notes", orderHandler.UpdateOrderNotes)

			desk.GET("/comments", blogHandler.ListComments)
			desk.PUT("/comments/:id/approve", blogHandler.ApproveComment)
			desk.DELETE("/comments/:id", blogHandler.DeleteComment)
		}

		// Everything below requires an authenticated admin
		protected := admin.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			// Catalog management
			protected.POST("/books", bookHandler.CreateBook)
			protected.PUT("/books/:id", bookHandler.UpdateBook)
			protected.DELETE("/books/:id", bookHandler.DeleteBook)
			protected.POST("/books/:id/formats", bookHandler.AddFormat)
			protected.PUT("/formats/:id", bookHandler.UpdateFormat)
			protected.DELETE("/formats/:id", bookHandler.DeleteFormat)
			protected.POST("/formats/:id/chapters", bookHandler.AddChapter)
			protected.DELETE("/chapters/:id", bookHandler.DeleteChapter)
			protected.POST("/genres", bookHandler.CreateGenre)
			protected.DELETE("/genres/:id", bookHandler.DeleteGenre)

			// Blog
			protected.GET("/blogs", blogHandler.ListAllBlogs)
			protected.POST("/blogs", blogHandler.CreateBlog)
			protected.PUT("/blogs/:id", blogHandler.UpdateBlog)
			protected.DELETE("/blogs/:id", blogHandler.DeleteBlog)

			// Site content
			protected.GET("/pages", contentHandler.ListPages)
			protected.PUT("/pages/:key", contentHandler.UpsertPage)
			protected.GET("/carousel", contentHandler.ListAllSlides)
			protected.POST("/carousel", contentHandler.CreateSlide)
			protected.PUT("/carousel/:id", contentHandler.UpdateSlide)
			protected.DELETE("/carousel/:id", contentHandler.DeleteSlide)
			protected.GET("/menus", contentHandler.ListAllMenus)
			protected.PUT("/menus/:key", contentHandler.UpdateMenu)
			protected.PUT("/settings", settingsHandler.UpdateSettings)

			// Translations
			protected.GET("/translations", translationHandler.ListTranslations)
			protected.PUT("/translations", translationHandler.UpsertTranslation)
			protected.DELETE("/translations/:id", translationHandler.DeleteTranslation)

			// Backups
			protected.GET("/backups/export", backupHandler.Export)
			protected.POST("/backups/import", backupHandler.Import)
			protected.POST("/backups/archive", backupHandler.Archive)
			protected.GET("/backups/archive", backupHandler.ListArchives)
			protected.POST("/backups/restore", backupHandler.RestoreArchive)
		}
	}

	return r
}
