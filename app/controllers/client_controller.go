package controllers

import (
	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/resources"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/resource"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

// ClientController also renders the category list, which the client form
// needs for its category picker.
type ClientController struct {
	service    *services.ClientService
	categories *services.CategoryService
	resource   resources.Client
	catRes     resources.Category
	limits     Limits
}

func NewClientController(svc *services.ClientService, categories *services.CategoryService, disk storage.Disk, limits Limits) *ClientController {
	return &ClientController{
		service:    svc,
		categories: categories,
		resource:   resources.Client{Disk: disk},
		catRes:     resources.Category{Disk: disk},
		limits:     limits,
	}
}

// withCategories renders clients next to the fresh category list.
func (cc *ClientController) withCategories(c *ctx.Context, items []models.Client) {
	cats, err := cc.categories.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Map{
		"clients":    resource.Collection[models.Client](cc.resource, items),
		"categories": resource.Collection[models.Category](cc.catRes, cats),
	})
}

// Index GET /client
func (cc *ClientController) Index(c *ctx.Context) {
	items, err := cc.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	cc.withCategories(c, items)
}

// Show GET /client/{id}
func (cc *ClientController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := cc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.One[models.Client](cc.resource, item))
}

// Store POST /client
func (cc *ClientController) Store(c *ctx.Context) {
	var in services.ClientInput
	if !c.BindForm(&in, cc.limits.MaxBodyBytes) {
		return
	}
	img, ok := image(c, cc.limits)
	if !ok {
		return
	}
	in.Image = img

	item, err := cc.service.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.One[models.Client](cc.resource, item))
}

// Update PUT|PATCH|POST /client/{id} and POST /client-update/{id}
func (cc *ClientController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ClientInput
	if !c.BindForm(&in, cc.limits.MaxBodyBytes) {
		return
	}
	img, ok := image(c, cc.limits)
	if !ok {
		return
	}
	in.Image = img

	item, err := cc.service.Update(c.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.One[models.Client](cc.resource, item))
}

// Destroy DELETE /client/{id}
func (cc *ClientController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := cc.service.Delete(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	cc.withCategories(c, items)
}
