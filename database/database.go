package database

import (
	"fmt"
	"log"
	"os"

	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/coaches"
	"marketplace-app/internal/domain/offers"
	"marketplace-app/internal/domain/payouts"
	"marketplace-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// ✅ Auto-migrate all domain models
	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&coaches.CoachAccount{},
		&coaches.Earnings{},
		&coaches.MonthlyEarnings{},

		// ledger
		&offers.Offer{},
		&offers.Installment{},
		&billing.Transaction{},

		// payouts
		&payouts.PendingPayout{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
