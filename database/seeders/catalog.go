package seeders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog inserts a few image-less categories, clients and products.
// It does nothing when categories already exist.
func SeedCatalog(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Category{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := []models.Category{
			{CategoryName: "Wholesale"},
			{CategoryName: "Retail"},
			{CategoryName: "Corporate"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("categories: %w", err)
		}

		clients := []models.Client{
			{CategoryID: categories[0].ID, ClientName: "Rahman Traders", ClientPhone: "01711000001"},
			{CategoryID: categories[1].ID, ClientName: "Corner Store", ClientPhone: "01811000002"},
			{CategoryID: categories[2].ID, ClientName: "Delta Group", ClientPhone: "01911000003"},
		}
		if err := tx.Create(&clients).Error; err != nil {
			return fmt.Errorf("clients: %w", err)
		}

		products := []models.Product{
			{Name: "Notebook", Price: decimal.RequireFromString("2.50")},
			{Name: "Desk Lamp", Price: decimal.RequireFromString("19.99")},
			{Name: "Office Chair", Price: decimal.RequireFromString("149.00")},
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("products: %w", err)
		}
		return nil
	})
}
