package controllers

import (
	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/resources"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/resource"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

type ProductController struct {
	service  *services.ProductService
	resource resources.Product
	limits   Limits
}

func NewProductController(svc *services.ProductService, disk storage.Disk, limits Limits) *ProductController {
	return &ProductController{service: svc, resource: resources.Product{Disk: disk}, limits: limits}
}

func (pc *ProductController) list(items []models.Product) resource.Map {
	return resource.Map{"products": resource.Collection[models.Product](pc.resource, items)}
}

func (pc *ProductController) Index(c *ctx.Context) {
	items, err := pc.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pc.list(items))
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := pc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.One[models.Product](pc.resource, item))
}

func (pc *ProductController) Store(c *ctx.Context) {
	var in services.ProductInput
	if !c.BindForm(&in, pc.limits.MaxBodyBytes) {
		return
	}
	img, ok := image(c, pc.limits)
	if !ok {
		return
	}
	in.Image = img

	item, err := pc.service.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.One[models.Product](pc.resource, item))
}

func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindForm(&in, pc.limits.MaxBodyBytes) {
		return
	}
	img, ok := image(c, pc.limits)
	if !ok {
		return
	}
	in.Image = img

	item, err := pc.service.Update(c.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.One[models.Product](pc.resource, item))
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := pc.service.Delete(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(pc.list(items))
}
