// Command seed loads a sample catalog into the database for local
// development: an admin seller account plus a dozen products across the
// storefront categories. Existing products are replaced.
package main

import (
	"context"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/utils"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var sampleProducts = []model.Product{
	{
		Name:        "iPhone 15 Pro",
		Description: "Latest Apple iPhone with A17 Pro chip, titanium design, and advanced camera system. Features a 6.1-inch Super Retina XDR display.",
		Price:       999,
		Category:    "Electronics",
		Stock:       25,
		Images: []string{
			"https://images.unsplash.com/photo-1592899677977-9c10ca588bbd?w=500",
			"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500",
		},
	},
	{
		Name:        "Samsung Galaxy S24 Ultra",
		Description: "Flagship Android smartphone with S Pen, 200MP camera, and AI-powered features. 6.8-inch Dynamic AMOLED display.",
		Price:       1199,
		Category:    "Electronics",
		Stock:       18,
		Images: []string{
			"https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=500",
			"https://images.unsplash.com/photo-1580910051074-3eb694886505?w=500",
		},
	},
	{
		Name:        "MacBook Air M3",
		Description: "Ultra-thin laptop powered by Apple M3 chip. Perfect for students and professionals. 13.6-inch Liquid Retina display.",
		Price:       1299,
		Category:    "Electronics",
		Stock:       15,
		Images: []string{
			"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500",
			"https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500",
		},
	},
	{
		Name:        "Sony WH-1000XM5 Headphones",
		Description: "Industry-leading noise canceling wireless headphones with 30-hour battery life and premium sound quality.",
		Price:       399,
		Category:    "Electronics",
		Stock:       32,
		Images: []string{
			"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
			"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=500",
		},
	},
	{
		Name:        "Nike Air Max 270",
		Description: "Comfortable running shoes with Air Max cushioning. Perfect for daily wear and light workouts.",
		Price:       150,
		Category:    "Fashion",
		Stock:       40,
		Images: []string{
			"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500",
			"https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500",
		},
	},
	{
		Name:        "Levi's 501 Original Jeans",
		Description: "Classic straight-leg jeans in authentic indigo denim. Timeless style that never goes out of fashion.",
		Price:       89,
		Category:    "Fashion",
		Stock:       60,
		Images: []string{
			"https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=500",
			"https://images.unsplash.com/photo-1582552938357-32b906df40cb?w=500",
		},
	},
	{
		Name:        "Instant Pot Duo 7-in-1",
		Description: "Multi-functional electric pressure cooker that replaces 7 kitchen appliances. Perfect for busy families.",
		Price:       129,
		Category:    "Home Appliances",
		Stock:       22,
		Images: []string{
			"https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=500",
			"https://images.unsplash.com/photo-1574269909862-7e1d70bb8078?w=500",
		},
	},
	{
		Name:        "Dyson V15 Detect Vacuum",
		Description: "Cordless vacuum cleaner with laser dust detection and powerful suction. Up to 60 minutes runtime.",
		Price:       749,
		Category:    "Home Appliances",
		Stock:       12,
		Images: []string{
			"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500",
			"https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=500",
		},
	},
	{
		Name:        "Wilson Tennis Racket Pro",
		Description: "Professional-grade tennis racket used by tournament players. Lightweight frame with excellent control.",
		Price:       229,
		Category:    "Sports",
		Stock:       28,
		Images: []string{
			"https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=500",
			"https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=500",
		},
	},
	{
		Name:        "The Psychology of Money",
		Description: "Bestselling book by Morgan Housel about the psychology behind financial decisions. A must-read for investors.",
		Price:       16,
		Category:    "Books",
		Stock:       50,
		Images: []string{
			"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500",
			"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=500",
		},
	},
	{
		Name:        "CeraVe Hydrating Cleanser",
		Description: "Gentle face cleanser for normal to dry skin. Contains ceramides and hyaluronic acid for healthy skin barrier.",
		Price:       12,
		Category:    "Beauty",
		Stock:       75,
		Images: []string{
			"https://images.unsplash.com/photo-1556228453-efd6c1ff04f6?w=500",
			"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500",
		},
	},
	{
		Name:        "The Ordinary Niacinamide Serum",
		Description: "High-strength vitamin B3 serum that helps minimize enlarged pores and regulate sebum production.",
		Price:       7,
		Category:    "Beauty",
		Stock:       100,
		Images: []string{
			"https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=500",
			"https://images.unsplash.com/photo-1570194065650-d99fb4bedf0a?w=500",
		},
	},
}

func main() {
	_ = godotenv.Load()
	utils.InitLogger("info")
	defer utils.Logger.Sync()

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		utils.Logger.Fatal("failed to load DB config", zap.Error(err))
	}
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		utils.Logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(dbPool); err != nil {
		utils.Logger.Fatal("failed to auto-migrate database", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)

	// Replace the catalog wholesale
	if _, err := dbPool.Exec(ctx, "DELETE FROM reviews"); err != nil {
		utils.Logger.Fatal("failed to clear reviews", zap.Error(err))
	}
	if _, err := dbPool.Exec(ctx, "DELETE FROM products"); err != nil {
		utils.Logger.Fatal("failed to clear products", zap.Error(err))
	}

	admin, err := userRepo.FindByEmail(ctx, "admin@ecomsphere.com")
	if err != nil {
		utils.Logger.Fatal("failed to look up admin user", zap.Error(err))
	}
	if admin == nil {
		hash, err := utils.HashPassword(adminPassword())
		if err != nil {
			utils.Logger.Fatal("failed to hash admin password", zap.Error(err))
		}
		admin = &model.User{
			ID:            uuid.NewString(),
			Name:          "Admin User",
			Email:         "admin@ecomsphere.com",
			PasswordHash:  hash,
			Role:          model.RoleAdmin,
			Notifications: model.DefaultNotificationSettings(),
			Privacy:       model.DefaultPrivacySettings(),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			utils.Logger.Fatal("failed to create admin user", zap.Error(err))
		}
		utils.Logger.Info("created admin user", zap.String("email", admin.Email))
	}

	for _, p := range sampleProducts {
		p.ID = uuid.NewString()
		p.SellerID = admin.ID
		p.IsActive = true
		if err := productRepo.Create(ctx, &p); err != nil {
			utils.Logger.Fatal("failed to seed product", zap.String("name", p.Name), zap.Error(err))
		}
	}

	utils.Logger.Info("seeded catalog", zap.Int("products", len(sampleProducts)))
}

func adminPassword() string {
	if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" {
		return pw
	}
	return "admin123"
}
