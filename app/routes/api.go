// Package routes declares the catalog endpoints.
package routes

import (
	"github.com/shashiranjanraj/backoffice/app/controllers"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/router"
)

// Controllers is every controller the API routes dispatch to.
type Controllers struct {
	Category *controllers.CategoryController
	Client   *controllers.ClientController
	Product  *controllers.ProductController
}

// actions is the handler set behind one resource's routes.
type actions struct {
	index, show, store, update, destroy ctx.HandlerFunc
}

// RegisterAPI mounts the catalog routes. mw wraps every one of them, e.g.
// the bearer-token guard.
func RegisterAPI(r *router.Router, c Controllers, mw ...router.Middleware) {
	g := r.Group("", mw...)

	resource(g, "category", actions{
		index:   c.Category.Index,
		show:    c.Category.Show,
		store:   c.Category.Store,
		update:  c.Category.Update,
		destroy: c.Category.Destroy,
	})
	resource(g, "client", actions{
		index:   c.Client.Index,
		show:    c.Client.Show,
		store:   c.Client.Store,
		update:  c.Client.Update,
		destroy: c.Client.Destroy,
	})
	resource(g, "products", actions{
		index:   c.Product.Index,
		show:    c.Product.Show,
		store:   c.Product.Store,
		update:  c.Product.Update,
		destroy: c.Product.Destroy,
	})
}

// resource registers the index/store/show/update/destroy routes for name.
// Update answers PUT and PATCH, plus POST for HTML forms that cannot send
// either, and the legacy POST /{name}-update/{id} path.
func resource(g *router.Group, name string, a actions) {
	item := "/" + name + "/{id}"

	g.Get("/"+name, name+".index", ctx.Wrap(a.index))
	g.Post("/"+name, name+".store", ctx.Wrap(a.store))
	g.Get(item, name+".show", ctx.Wrap(a.show))
	g.Put(item, name+".update", ctx.Wrap(a.update))
	g.Patch(item, "", ctx.Wrap(a.update))
	g.Post(item, "", ctx.Wrap(a.update))
	g.Post("/"+name+"-update/{id}", name+".update.legacy", ctx.Wrap(a.update))
	g.Delete(item, name+".destroy", ctx.Wrap(a.destroy))
}
