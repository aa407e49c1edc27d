package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

// CategoryImageDir is where category images are stored on the disk.
const CategoryImageDir = "categoryImage"

type CategoryService struct {
	res   resource[models.Category, *models.Category]
	maxKB int64
}

func NewCategoryService(db *gorm.DB, disk storage.Disk, opts ...Option) *CategoryService {
	o := options(opts)
	return &CategoryService{
		res: resource[models.Category, *models.Category]{
			name: "category",
			dir:  CategoryImageDir,
			repo: repositories.NewCategoryRepository(db),
			disk: disk,
		},
		maxKB: o.imageMaxKB,
	}
}

// List returns every category, newest first.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.res.list(ctx)
}

func (s *CategoryService) Find(ctx context.Context, id uint) (*models.Category, error) {
	return s.res.find(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (_ *models.Category, err error) {
	defer func() { metrics.RecordMutation("category", "create", outcome(err)) }()

	in = in.trimmed()
	if err := in.validate(s.maxKB); err != nil {
		return nil, err
	}
	c := &models.Category{CategoryName: in.CategoryName}
	if err := s.res.create(ctx, c, in.Image); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (_ *models.Category, err error) {
	defer func() { metrics.RecordMutation("category", "update", outcome(err)) }()

	in = in.trimmed()
	if err := in.validate(s.maxKB); err != nil {
		return nil, err
	}
	return s.res.update(ctx, id, func(c *models.Category) {
		c.CategoryName = in.CategoryName
	}, in.Image)
}

// Delete removes the category and its image and returns the remaining list.
// Clients referring to it are left as they are.
func (s *CategoryService) Delete(ctx context.Context, id uint) (_ []models.Category, err error) {
	defer func() { metrics.RecordMutation("category", "delete", outcome(err)) }()
	return s.res.destroy(ctx, id)
}
