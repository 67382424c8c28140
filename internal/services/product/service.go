package product

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"golang.org/x/sync/errgroup"
)

type Store interface {
	GetProduct(ctx context.Context, name string) (models.Product, error)
	ListSpecifications(ctx context.Context, productName string) ([]models.ProductSpecification, error)
	ListFeatures(ctx context.Context, productName string) ([]models.ProductFeature, error)
	ListAdvantages(ctx context.Context, productName string) ([]models.ProductAdvantage, error)
	GetInstallation(ctx context.Context, productName string) (*models.ProductInstallation, error)
	GetDatasheet(ctx context.Context, productName string) (*models.ProductDatasheet, error)
	ListProductCategories(ctx context.Context, productName string) ([]models.ProductCategory, error)
}

type Service struct {
	store  Store
	logger ectologger.Logger
}

func NewService(store Store, logger ectologger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Assemble loads a product and its detail tables. The product lookup runs
// first so a missing product is NotFound; the detail queries then run
// concurrently and the first failure is returned.
func (s *Service) Assemble(ctx context.Context, name string) (models.ProductDetail, error) {
	ctx, span := tracing.StartSpan(ctx, "product.Service.Assemble", tracing.AttrProductName.String(name))
	defer span.End()

	product, err := s.store.GetProduct(ctx, name)
	if err != nil {
		tracing.RecordError(span, err)
		return models.ProductDetail{}, err
	}

	detail := models.ProductDetail{Product: product}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		detail.Specifications, err = s.store.ListSpecifications(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		detail.Features, err = s.store.ListFeatures(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		detail.Advantages, err = s.store.ListAdvantages(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		detail.Installation, err = s.store.GetInstallation(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		detail.Datasheet, err = s.store.GetDatasheet(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		detail.Categories, err = s.store.ListProductCategories(gctx, name)
		return err
	})

	if err := g.Wait(); err != nil {
		tracing.RecordError(span, err)
		s.logger.WithContext(ctx).WithError(err).WithField("product", name).Error("Failed to assemble product details")
		return models.ProductDetail{}, err
	}

	return detail, nil
}
