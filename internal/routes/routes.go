// Package routes defines the API routing configuration.
// It wires repositories, services and handlers, and registers all routes.
package routes

import (
	"hairven/internal/config"
	"hairven/internal/handlers"
	"hairven/internal/middleware"
	"hairven/internal/repositories"
	"hairven/internal/repositories/cache"
	"hairven/internal/services/auth"
	"hairven/internal/services/eft"
	"hairven/internal/services/notification"
	"hairven/internal/services/payment"
	"hairven/internal/services/search"
	stripeprovider "hairven/internal/services/stripe"
	"hairven/internal/services/tax"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.CacheService, logger *zap.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	sessionRepo := repositories.NewPaymentSessionRepository(db)

	// Notification pipeline
	emailClient := notification.NewEmailClient(notification.EmailConfig{
		Enabled:     config.GetBoolEnv("RESEND_ENABLED", false),
		APIKey:      config.GetEnv("RESEND_API_KEY", ""),
		FromAddress: config.GetEnv("RESEND_FROM", "Hairven Beauty <orders@hairven.co.za>"),
		ReplyTo:     config.GetEnv("RESEND_REPLY_TO", ""),
	})
	dispatcher := notification.NewDispatcher(emailClient, logger)

	// Payment providers
	eftProvider := eft.NewService(eft.Options{
		BankDetails: &eft.BankDetails{
			AccountName:   config.GetEnv("EFT_ACCOUNT_NAME", "Hairven Beauty (Pty) Ltd"),
			AccountNumber: config.GetEnv("EFT_ACCOUNT_NUMBER", ""),
			BankName:      config.GetEnv("EFT_BANK_NAME", ""),
			BranchCode:    config.GetEnv("EFT_BRANCH_CODE", ""),
		},
	}, dispatcher, logger)
	stripeProvider := stripeprovider.NewService(stripeprovider.Options{
		APIKey: config.GetEnv("STRIPE_SECRET_KEY", ""),
	}, logger)

	registry := payment.NewRegistry(eftProvider, stripeProvider)
	paymentService := payment.NewService(registry, sessionRepo, logger)

	// Tax provider
	taxProvider := tax.NewProvider(tax.Options{
		EnableProductSpecificTax:       config.GetBoolEnv("TAX_ENABLE_PRODUCT_SPECIFIC", false),
		EnableBeautyDiscounts:          config.GetBoolEnv("TAX_ENABLE_BEAUTY_DISCOUNTS", false),
		EnableVATExemptions:            config.GetBoolEnv("TAX_ENABLE_VAT_EXEMPTIONS", false),
		EnableShippingTaxModifications: config.GetBoolEnv("TAX_ENABLE_SHIPPING_MODIFICATIONS", false),
		HairCareDiscountRate:           config.GetFloatEnv("TAX_HAIR_CARE_DISCOUNT_RATE", 0.1),
		CosmeticsMarkupRate:            config.GetFloatEnv("TAX_COSMETICS_MARKUP_RATE", 0.1),
		FreeShippingThreshold:          config.GetFloatEnv("TAX_FREE_SHIPPING_THRESHOLD", 100000),
	}, logger)
	taxSetup := tax.NewSetupService(db, logger)

	// Search
	searchService := search.NewService(productRepo, cacheService, logger)

	// Auth
	authService := auth.NewService(userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taxHandler := handlers.NewTaxHandler(taxProvider, taxSetup)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	searchHandler := handlers.NewSearchHandler(searchService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/admin/login", authHandler.Login)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminOnly())
	admin.Get("/tax/setup", taxHandler.SetupInfo)
	admin.Post("/tax/setup", taxHandler.SetupTaxes)
	admin.Post("/search/index", searchHandler.Reindex)

	store := api.Group("/store")
	store.Get("/search", searchHandler.Search)
	store.Post("/tax/calculate", taxHandler.CalculateTaxes)
	store.Post("/payment-sessions", paymentHandler.CreateSession)
	store.Get("/payment-sessions/:id", paymentHandler.GetSession)
	store.Put("/payment-sessions/:id", paymentHandler.UpdateSession)
	store.Post("/payment-sessions/:id/authorize", paymentHandler.Authorize)
	store.Post("/payment-sessions/:id/capture", paymentHandler.Capture)
	store.Post("/payment-sessions/:id/cancel", paymentHandler.Cancel)
	store.Post("/payment-sessions/:id/refund", paymentHandler.Refund)
	store.Delete("/payment-sessions/:id", paymentHandler.DeleteSession)
}
