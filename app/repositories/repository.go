package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

// ErrNotFound is returned by Find when the id does not resolve.
var ErrNotFound = orm.ErrNotFound

// Repository handles database operations for one model type.
type Repository[M any] struct {
	db *gorm.DB
}

func New[M any](db *gorm.DB) *Repository[M] {
	return &Repository[M]{db: db}
}

func NewCategoryRepository(db *gorm.DB) *Repository[models.Category] {
	return New[models.Category](db)
}

func NewClientRepository(db *gorm.DB) *Repository[models.Client] {
	return New[models.Client](db)
}

func NewProductRepository(db *gorm.DB) *Repository[models.Product] {
	return New[models.Product](db)
}

// Latest returns every row, newest first.
func (r *Repository[M]) Latest(ctx context.Context) ([]M, error) {
	rows := []M{}
	err := orm.New(ctx, r.db).Model(new(M)).Latest().Get(&rows)
	return rows, err
}

// Find looks up a row by primary key.
func (r *Repository[M]) Find(ctx context.Context, id uint) (*M, error) {
	var m M
	if err := orm.New(ctx, r.db).Model(new(M)).Where("id = ?", id).First(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Exists reports whether a row with id is present.
func (r *Repository[M]) Exists(ctx context.Context, id uint) (bool, error) {
	n, err := orm.New(ctx, r.db).Model(new(M)).Where("id = ?", id).Count()
	return n > 0, err
}

// Create persists a new row and fills in its id and timestamps.
func (r *Repository[M]) Create(ctx context.Context, m *M) error {
	return orm.New(ctx, r.db).Create(m)
}

// Save persists every column of an existing row.
func (r *Repository[M]) Save(ctx context.Context, m *M) error {
	return orm.New(ctx, r.db).Save(m)
}

// Delete hard-deletes the row by its primary key.
func (r *Repository[M]) Delete(ctx context.Context, m *M) error {
	return orm.New(ctx, r.db).Delete(m)
}

// Transaction runs fn with a repository whose writes share one transaction.
// The transaction commits only if fn returns nil.
func (r *Repository[M]) Transaction(ctx context.Context, fn func(tx *Repository[M]) error) error {
	return orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&Repository[M]{db: tx})
	})
}
