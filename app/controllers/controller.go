package controllers

import (
	"errors"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/upload"
)

// Limits bounds what a write request may carry.
type Limits struct {
	MaxBodyBytes int64 // whole request body
	ImageMaxKB   int64 // the image part
}

func (l Limits) imageBytes() int64 { return l.ImageMaxKB * upload.KB }

// pathID reads the {id} path parameter. A malformed id answers 404, like an
// id that does not resolve.
func pathID(c *ctx.Context) (uint, bool) {
	n, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
	}
	return n, ok
}

// image reads the optional "image" part.
func image(c *ctx.Context, l Limits) (*upload.File, bool) {
	return c.FormFile("image", l.imageBytes())
}

// fail maps a service error to its response.
func fail(c *ctx.Context, err error) {
	var (
		verr *services.ValidationError
		serr *services.StorageError
	)
	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.As(err, &serr):
		c.Logger().Error("storage failure", "op", serr.Op, "path", serr.Path, "error", serr.Err)
		c.ServerError("Storage failure")
	default:
		c.Logger().Error("request failed", "error", err)
		c.ServerError("Internal Server Error")
	}
}
