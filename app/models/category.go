package models

import "time"

// Category groups clients. Image is a path on the configured disk.
type Category struct {
	ID           uint      `gorm:"primaryKey"                json:"id"`
	CategoryName string    `gorm:"size:255;not null"         json:"category_name"`
	Image        *string   `gorm:"size:255"                  json:"image"`
	CreatedAt    time.Time `gorm:"index"                     json:"created_at"`
	UpdatedAt    time.Time `                                 json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) ImagePath() *string { return c.Image }
func (c *Category) SetImage(p *string) { c.Image = p }
