package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/metrics"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
	"github.com/shashiranjanraj/backoffice/pkg/validate"
)

// ClientImageDir is where client images are stored on the disk.
const ClientImageDir = "clientImage"

type ClientService struct {
	res        resource[models.Client, *models.Client]
	categories *repositories.Repository[models.Category]
	maxKB      int64
}

func NewClientService(db *gorm.DB, disk storage.Disk, opts ...Option) *ClientService {
	o := options(opts)
	return &ClientService{
		res: resource[models.Client, *models.Client]{
			name: "client",
			dir:  ClientImageDir,
			repo: repositories.NewClientRepository(db),
			disk: disk,
		},
		categories: repositories.NewCategoryRepository(db),
		maxKB:      o.imageMaxKB,
	}
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	return s.res.list(ctx)
}

func (s *ClientService) Find(ctx context.Context, id uint) (*models.Client, error) {
	return s.res.find(ctx, id)
}

// check validates in and then confirms its category exists.
func (s *ClientService) check(ctx context.Context, in ClientInput) error {
	if err := in.validate(s.maxKB); err != nil {
		return err
	}
	ok, err := s.categories.Exists(ctx, in.categoryID())
	if err != nil {
		return fmt.Errorf("lookup category %d: %w", in.categoryID(), err)
	}
	if !ok {
		return &ValidationError{Fields: validate.Errors{
			"category_id": "The selected category_id is invalid.",
		}}
	}
	return nil
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (_ *models.Client, err error) {
	defer func() { metrics.RecordMutation("client", "create", outcome(err)) }()

	in = in.trimmed()
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	c := &models.Client{
		CategoryID:  in.categoryID(),
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
	}
	if err := s.res.create(ctx, c, in.Image); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, in ClientInput) (_ *models.Client, err error) {
	defer func() { metrics.RecordMutation("client", "update", outcome(err)) }()

	in = in.trimmed()
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	return s.res.update(ctx, id, func(c *models.Client) {
		c.CategoryID = in.categoryID()
		c.ClientName = in.ClientName
		c.ClientPhone = in.ClientPhone
	}, in.Image)
}

func (s *ClientService) Delete(ctx context.Context, id uint) (_ []models.Client, err error) {
	defer func() { metrics.RecordMutation("client", "delete", outcome(err)) }()
	return s.res.destroy(ctx, id)
}
