package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/migration"
)

func init() {
	migration.Register("2024_01_01_000001_create_categories_table", &CreateCategoriesTable{})
	migration.Register("2024_01_01_000002_create_clients_table", &CreateClientsTable{})
	migration.Register("2024_01_01_000003_create_products_table", &CreateProductsTable{})
}

// -------- categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// -------- clients --------

// category_id is indexed but carries no foreign key: clients may outlive
// their category.
type CreateClientsTable struct{}

func (m *CreateClientsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Client{})
}

func (m *CreateClientsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("clients")
}

// -------- products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
