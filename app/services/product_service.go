package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

// ProductImageDir is where product images are stored on the disk.
const ProductImageDir = "products"

type ProductService struct {
	res   resource[models.Product, *models.Product]
	maxKB int64
}

func NewProductService(db *gorm.DB, disk storage.Disk, opts ...Option) *ProductService {
	o := options(opts)
	return &ProductService{
		res: resource[models.Product, *models.Product]{
			name: "product",
			dir:  ProductImageDir,
			repo: repositories.NewProductRepository(db),
			disk: disk,
		},
		maxKB: o.imageMaxKB,
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.res.list(ctx)
}

func (s *ProductService) Find(ctx context.Context, id uint) (*models.Product, error) {
	return s.res.find(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (_ *models.Product, err error) {
	defer func() { metrics.RecordMutation("product", "create", outcome(err)) }()

	in = in.trimmed()
	if err := in.validate(s.maxKB); err != nil {
		return nil, err
	}
	price, _ := in.price()
	p := &models.Product{Name: in.Name, Price: price}
	if err := s.res.create(ctx, p, in.Image); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (_ *models.Product, err error) {
	defer func() { metrics.RecordMutation("product", "update", outcome(err)) }()

	in = in.trimmed()
	if err := in.validate(s.maxKB); err != nil {
		return nil, err
	}
	price, _ := in.price()
	return s.res.update(ctx, id, func(p *models.Product) {
		p.Name = in.Name
		p.Price = price
	}, in.Image)
}

func (s *ProductService) Delete(ctx context.Context, id uint) (_ []models.Product, err error) {
	defer func() { metrics.RecordMutation("product", "delete", outcome(err)) }()
	return s.res.destroy(ctx, id)
}
