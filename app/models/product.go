package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue.
type Product struct {
	ID        uint            `gorm:"primaryKey"                    json:"id"`
	Name      string          `gorm:"size:255;not null"             json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"   json:"price"`
	Image     *string         `gorm:"size:255"                      json:"image"`
	CreatedAt time.Time       `gorm:"index"                         json:"created_at"`
	UpdatedAt time.Time       `                                     json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) ImagePath() *string { return p.Image }
func (p *Product) SetImage(s *string) { p.Image = s }
