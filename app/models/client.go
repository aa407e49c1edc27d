package models

import "time"

// Client belongs to a category by id. The reference is not enforced after
// the category is deleted.
type Client struct {
	ID          uint      `gorm:"primaryKey"        json:"id"`
	CategoryID  uint      `gorm:"not null;index"    json:"category_id"`
	ClientName  string    `gorm:"size:255;not null" json:"client_name"`
	ClientPhone string    `gorm:"size:11;not null"  json:"client_phone"`
	Image       *string   `gorm:"size:255"          json:"image"`
	CreatedAt   time.Time `gorm:"index"             json:"created_at"`
	UpdatedAt   time.Time `                         json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

func (c *Client) ImagePath() *string { return c.Image }
func (c *Client) SetImage(p *string) { c.Image = p }
