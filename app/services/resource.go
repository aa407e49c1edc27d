package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
	"github.com/shashiranjanraj/backoffice/pkg/upload"
)

// imaged is implemented by models that own at most one stored file.
type imaged[M any] interface {
	*M
	ImagePath() *string
	SetImage(*string)
}

// resource is the image-backed CRUD shared by every catalog service.
type resource[M any, P imaged[M]] struct {
	name string // for errors and metrics
	dir  string // namespace on the disk
	repo *repositories.Repository[M]
	disk storage.Disk
}

func (r *resource[M, P]) list(ctx context.Context) ([]M, error) {
	rows, err := r.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return rows, nil
}

func (r *resource[M, P]) find(ctx context.Context, id uint) (*M, error) {
	m, err := r.repo.Find(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: r.name, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", r.name, id, err)
	}
	return m, nil
}

func (r *resource[M, P]) store(ctx context.Context, f *upload.File) (string, error) {
	p, err := storage.Store(ctx, r.disk, r.dir, f)
	if err != nil {
		return "", &StorageError{Op: "put", Path: r.dir, Err: err}
	}
	return p, nil
}

// create stores the image (if any), then inserts m. A failed insert removes
// the file it just stored.
func (r *resource[M, P]) create(ctx context.Context, m *M, img *upload.File) error {
	var stored string
	if img != nil {
		p, err := r.store(ctx, img)
		if err != nil {
			return err
		}
		stored = p
		P(m).SetImage(&stored)
	}

	if err := r.repo.Create(ctx, m); err != nil {
		if stored != "" {
			_ = r.disk.Delete(ctx, stored)
		}
		return fmt.Errorf("create %s: %w", r.name, err)
	}
	return nil
}

// update loads id, applies the field changes and swaps the image when a new
// one is supplied. The new file is stored first; the row is saved and the old
// file deleted inside one transaction, so a failed save keeps the old file and
// a failed delete rolls the save back. Either way the new file is removed
// again. Without a new image the stored reference is kept.
func (r *resource[M, P]) update(ctx context.Context, id uint, apply func(*M), img *upload.File) (*M, error) {
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var old, stored string
	if p := P(m).ImagePath(); p != nil {
		old = *p
	}
	if img != nil {
		if stored, err = r.store(ctx, img); err != nil {
			return nil, err
		}
	}

	err = r.repo.Transaction(ctx, func(tx *repositories.Repository[M]) error {
		apply(m)
		if stored != "" {
			P(m).SetImage(&stored)
		}
		if err := tx.Save(ctx, m); err != nil {
			return fmt.Errorf("update %s %d: %w", r.name, id, err)
		}
		if stored != "" && old != "" {
			if err := r.disk.Delete(ctx, old); err != nil {
				return &StorageError{Op: "delete", Path: old, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		if stored != "" {
			_ = r.disk.Delete(ctx, stored)
		}
		return nil, err
	}
	return m, nil
}

// destroy deletes the row and its stored image in one transaction and
// returns the fresh list. A failed file delete rolls the row delete back; a
// failed row delete leaves the file alone.
func (r *resource[M, P]) destroy(ctx context.Context, id uint) ([]M, error) {
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.repo.Transaction(ctx, func(tx *repositories.Repository[M]) error {
		if err := tx.Delete(ctx, m); err != nil {
			return fmt.Errorf("delete %s %d: %w", r.name, id, err)
		}
		if old := P(m).ImagePath(); old != nil && *old != "" {
			if err := r.disk.Delete(ctx, *old); err != nil {
				return &StorageError{Op: "delete", Path: *old, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.list(ctx)
}
