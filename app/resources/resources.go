// Package resources renders catalog models as API JSON. Every entity carries
// its stored image path and the public URL for it.
package resources

import (
	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/resource"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

func imageURL(d storage.Disk, p *string) any {
	if p == nil || *p == "" {
		return nil
	}
	return d.URL(*p)
}

type Category struct{ Disk storage.Disk }

func (r Category) ToArray(c models.Category) resource.Map {
	return resource.Map{
		"id":            c.ID,
		"category_name": c.CategoryName,
		"image":         c.Image,
		"image_url":     imageURL(r.Disk, c.Image),
		"created_at":    c.CreatedAt,
		"updated_at":    c.UpdatedAt,
	}
}

type Client struct{ Disk storage.Disk }

func (r Client) ToArray(c models.Client) resource.Map {
	return resource.Map{
		"id":           c.ID,
		"category_id":  c.CategoryID,
		"client_name":  c.ClientName,
		"client_phone": c.ClientPhone,
		"image":        c.Image,
		"image_url":    imageURL(r.Disk, c.Image),
		"created_at":   c.CreatedAt,
		"updated_at":   c.UpdatedAt,
	}
}

// Product renders price as a fixed two-decimal string.
type Product struct{ Disk storage.Disk }

func (r Product) ToArray(p models.Product) resource.Map {
	return resource.Map{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price.StringFixed(2),
		"image":      p.Image,
		"image_url":  imageURL(r.Disk, p.Image),
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}
