package resolver

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/errors"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/metrics"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
)

// CatalogLimit caps the catalog-wide fallback.
const CatalogLimit = 50

// Store is the part of the catalog the resolver reads. Every product query
// must already subtract the measure point's exclusions.
type Store interface {
	GetMeasurePoint(ctx context.Context, id int) (models.MeasurePoint, error)
	ListParameterProducts(ctx context.Context, measurePointID int) ([]models.Product, error)
	ListSceneProducts(ctx context.Context, sceneID, measurePointID int) ([]models.Product, error)
	ListCatalogProducts(ctx context.Context, measurePointID, limit int) ([]models.Product, error)
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

// ResolveProducts returns the products to offer at a measure point. A missing
// measure point yields an empty list, not an error.
func (s *Service) ResolveProducts(ctx context.Context, measurePointID int) ([]models.Product, error) {
	resolution, err := s.Resolve(ctx, measurePointID)
	if err != nil {
		return nil, err
	}
	return resolution.Products, nil
}

// Resolve walks parameter, scene and catalog tiers in that order and stops at
// the first one with candidates.
func (s *Service) Resolve(ctx context.Context, measurePointID int) (models.Resolution, error) {
	ctx, span := tracing.StartSpan(ctx, "resolver.Service.Resolve", tracing.AttrMeasurePointID.Int(measurePointID))
	defer span.End()

	log := s.logger.WithContext(ctx).WithField("measure_point_id", measurePointID)
	resolution := models.Resolution{
		MeasurePointID: measurePointID,
		Tier:           models.TierNone,
		Products:       []models.Product{},
	}

	point, err := s.store.GetMeasurePoint(ctx, measurePointID)
	if errors.IsNotFound(err) {
		log.Debug("Measure point not found, nothing to resolve")
		metrics.RecordResolution(string(models.TierNone))
		return resolution, nil
	}
	if err != nil {
		tracing.RecordError(span, err)
		return models.Resolution{}, err
	}

	tiers := []struct {
		tier  models.Tier
		fetch func() ([]models.Product, error)
	}{
		{models.TierParameter, func() ([]models.Product, error) {
			return s.store.ListParameterProducts(ctx, point.ID)
		}},
		{models.TierScene, func() ([]models.Product, error) {
			return s.store.ListSceneProducts(ctx, point.SceneID, point.ID)
		}},
		{models.TierCatalog, func() ([]models.Product, error) {
			return s.store.ListCatalogProducts(ctx, point.ID, CatalogLimit)
		}},
	}

	for _, t := range tiers {
		products, err := t.fetch()
		if err != nil {
			tracing.RecordError(span, err)
			log.WithError(err).WithField("tier", t.tier).Error("Failed to resolve products")
			return models.Resolution{}, err
		}
		if len(products) == 0 {
			continue
		}

		if t.tier == models.TierCatalog && len(products) > CatalogLimit {
			products = products[:CatalogLimit]
		}
		resolution.Tier = t.tier
		resolution.Products = products
		break
	}

	span.SetAttributes(
		tracing.AttrTier.String(string(resolution.Tier)),
		tracing.AttrResultCount.Int(len(resolution.Products)),
	)
	metrics.RecordResolution(string(resolution.Tier))
	log.WithFields(map[string]any{
		"tier":     resolution.Tier,
		"products": len(resolution.Products),
	}).Debug("Resolved products")

	return resolution, nil
}
