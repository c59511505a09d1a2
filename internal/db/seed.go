package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vpetrenko/ecom_backend/internal/hash"
	"github.com/vpetrenko/ecom_backend/internal/models"
)

// Seed inserts the demo user and catalog so a fresh database is usable
// straight away. Safe to call on every start.
func Seed(db *gorm.DB) error {
	passwordHash, err := hash.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	user := models.User{
		Email:        "test@example.com",
		PasswordHash: passwordHash,
		Name:         "Test User",
	}
	if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		return fmt.Errorf("seeding user: %w", err)
	}

	products := []models.Product{
		{
			Name:        "Smartphone",
			Description: "Latest model with high-resolution camera",
			Price:       699.99,
			ImageURL:    "https://via.placeholder.com/300",
			Stock:       50,
		},
		{
			Name:        "Laptop",
			Description: "Powerful laptop for work and gaming",
			Price:       1299.99,
			ImageURL:    "https://via.placeholder.com/300",
			Stock:       30,
		},
		{
			Name:        "Headphones",
			Description: "Noise-cancelling wireless headphones",
			Price:       199.99,
			ImageURL:    "https://via.placeholder.com/300",
			Stock:       100,
		},
		{
			Name:        "Smartwatch",
			Description: "Track your fitness and stay connected",
			Price:       249.99,
			ImageURL:    "https://via.placeholder.com/300",
			Stock:       45,
		},
	}

	for i := range products {
		if err := db.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error; err != nil {
			return fmt.Errorf("seeding product %q: %w", products[i].Name, err)
		}
	}

	return nil
}
