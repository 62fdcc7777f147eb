package main

import (
	"log"
	"os"
	"time"

	"github.com/giftbridge/platform/internal/accessperm"
	"github.com/giftbridge/platform/internal/config"
	"github.com/giftbridge/platform/internal/database"
	"github.com/giftbridge/platform/internal/models"
	"github.com/giftbridge/platform/internal/order"
	"github.com/giftbridge/platform/internal/server"
	"github.com/giftbridge/platform/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("❌ Required environment variable %s is not set", key)
		}
	}
	log.Println("✅ Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== STORAGE SETUP ==========
	if err := utils.InitLocalStorage(); err != nil {
		log.Fatal("❌ Failed to initialize local storage:", err)
	}
	log.Println("✅ Local storage initialized at ./uploads/")

	useS3 := os.Getenv("USE_S3")
	if useS3 == "true" {
		s3Bucket := os.Getenv("S3_BUCKET")
		s3Region := os.Getenv("S3_REGION")
		cloudfrontURL := os.Getenv("CLOUDFRONT_URL")

		if s3Bucket != "" && s3Region != "" {
			if err := utils.InitS3(s3Bucket, s3Region, cloudfrontURL); err != nil {
				log.Println("⚠️  S3 initialization failed:", err)
				log.Println("⚠️  Falling back to local storage")
				utils.SetStorageMode(true)
			} else {
				log.Println("✅ S3 initialized successfully")
				log.Printf("☁️  Using S3: %s (region: %s)", s3Bucket, s3Region)
			}
		} else {
			log.Println("⚠️  USE_S3=true but S3_BUCKET or S3_REGION not configured")
			log.Println("⚠️  Falling back to local storage")
		}
	} else {
		log.Println("💾 Using LOCAL storage mode (./uploads/)")
		utils.SetStorageMode(true)
	}

	// ========== SEED DEFAULT DATA ==========
	if err := accessperm.SeedDefaults(database.DB); err != nil {
		log.Println("⚠️  Failed to seed access permissions:", err)
	} else {
		log.Println("✅ Default access permissions seeded")
	}

	if err := order.SeedOrderTransitions(database.DB); err != nil {
		log.Println("⚠️  Failed to seed order transitions:", err)
	} else {
		log.Println("✅ Order transitions seeded")
	}

	// ========== BACKGROUND JOBS ==========
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			result := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.ResetToken{})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleaned up %d expired reset tokens", result.RowsAffected)
			}

			result = database.DB.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleaned up %d expired refresh tokens", result.RowsAffected)
			}
		}
	}()

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 GiftBridge API starting on %s", cfg.ServerAddr)
	log.Printf("📚 Health check: %s/health", cfg.ServerAddr)
	log.Printf("💾 Storage Mode: %s", utils.GetStorageMode())
	log.Printf("🔐 JWT Authentication: Enabled")

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
