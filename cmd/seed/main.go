// Command seed provisions a development environment: the admin user, a
// starter catalog, the tax regions and rates, and the product search index.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"hairven/internal/config"
	"hairven/internal/models"
	"hairven/internal/repositories"
	"hairven/internal/services/search"
	"hairven/internal/services/tax"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var catalog = []models.Product{
	{Title: "Argan Repair Shampoo", Handle: "argan-repair-shampoo", ProductType: "hair-care", UnitPrice: 24900, CurrencyCode: "zar", Description: "Sulphate-free shampoo for damaged hair."},
	{Title: "Hydrating Conditioner", Handle: "hydrating-conditioner", ProductType: "hair-care", UnitPrice: 21900, CurrencyCode: "zar", Description: "Daily conditioner with marula oil."},
	{Title: "Velvet Matte Lipstick", Handle: "velvet-matte-lipstick", ProductType: "cosmetics", UnitPrice: 32900, CurrencyCode: "zar", Description: "Long-wear matte lipstick."},
	{Title: "Silk Foundation SPF15", Handle: "silk-foundation-spf15", ProductType: "cosmetics", UnitPrice: 54900, CurrencyCode: "zar", Description: "Buildable coverage foundation."},
	{Title: "Daily Sunscreen SPF50", Handle: "daily-sunscreen-spf50", ProductType: "skin-care", UnitPrice: 19900, CurrencyCode: "zar", Description: "Broad spectrum facial sunscreen."},
	{Title: "Ceramide Moisturizer", Handle: "ceramide-moisturizer", ProductType: "skin-care", UnitPrice: 28900, CurrencyCode: "zar", Description: "Barrier repair moisturizer."},
	{Title: "Gentle Foaming Cleanser", Handle: "gentle-foaming-cleanser", ProductType: "skin-care", UnitPrice: 15900, CurrencyCode: "zar", Description: "pH-balanced daily cleanser."},
}

func main() {
	config.LoadEnv()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	ctx := context.Background()

	seedAdmin()
	seedProducts(ctx)

	setupService := tax.NewSetupService(repositories.DB, zapLogger)
	result, err := setupService.Setup(ctx)
	if err != nil {
		log.Fatalf("tax setup failed: %v", err)
	}
	log.Printf("tax setup: %d regions, %d rates", len(result.Regions), len(result.Rates))

	productRepo := repositories.NewProductRepository(repositories.DB)
	searchService := search.NewService(productRepo, repositories.CacheService, zapLogger)
	indexed, err := searchService.IndexProducts(ctx)
	if err != nil {
		log.Fatalf("product indexing failed: %v", err)
	}
	log.Printf("indexed %d products", indexed)
}

func seedAdmin() {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	var existing models.User
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Println("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashed),
		Name:     "Store Admin",
		Role:     "admin",
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	log.Println("admin user created")
}

func seedProducts(ctx context.Context) {
	productRepo := repositories.NewProductRepository(repositories.DB)
	created := 0
	for _, product := range catalog {
		if _, err := productRepo.FindByHandle(ctx, product.Handle); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to look up product %s: %v", product.Handle, err)
		}

		p := product
		if err := productRepo.Create(ctx, &p); err != nil {
			log.Fatalf("failed to create product %s: %v", product.Handle, err)
		}
		created++
	}
	log.Printf("seeded %d products", created)
}
