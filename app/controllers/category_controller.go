package controllers

import (
	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/resources"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/resource"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

type CategoryController struct {
	service  *services.CategoryService
	resource resources.Category
	limits   Limits
}

func NewCategoryController(svc *services.CategoryService, disk storage.Disk, limits Limits) *CategoryController {
	return &CategoryController{service: svc, resource: resources.Category{Disk: disk}, limits: limits}
}

func (cc *CategoryController) list(items []models.Category) resource.Map {
	return resource.Map{"categories": resource.Collection[models.Category](cc.resource, items)}
}

// Index GET /category
func (cc *CategoryController) Index(c *ctx.Context) {
	items, err := cc.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.list(items))
}

// Show GET /category/{id}
func (cc *CategoryController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := cc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.One[models.Category](cc.resource, item))
}

// Store POST /category
func (cc *CategoryController) Store(c *ctx.Context) {
	var in services.CategoryInput
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
	c.Created(resource.One[models.Category](cc.resource, item))
}

// Update PUT|PATCH|POST /category/{id} and POST /category-update/{id}
func (cc *CategoryController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CategoryInput
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
	c.Success(resource.One[models.Category](cc.resource, item))
}

// Destroy DELETE /category/{id}; answers with the remaining categories.
func (cc *CategoryController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := cc.service.Delete(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.list(items))
}
