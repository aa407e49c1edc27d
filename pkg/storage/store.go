package storage

import (
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/backoffice/pkg/upload"
)

// Store writes f under dir with a generated unique name and returns the
// relative path it was stored at, e.g. "products/5b0e…9a.png".
func Store(ctx context.Context, d Disk, dir string, f *upload.File) (string, error) {
	p := path.Join(dir, uuid.NewString()+f.Ext())
	if err := d.Put(ctx, p, f.Data); err != nil {
		return "", err
	}
	return p, nil
}
