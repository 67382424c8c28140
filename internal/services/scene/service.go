package scene

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/metrics"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
)

type Store interface {
	GetScene(ctx context.Context, id int) (models.Scene, error)
	ListMeasurePoints(ctx context.Context, sceneID int) ([]models.MeasurePoint, error)
	ListStaticPlacements(ctx context.Context, sceneID int) ([]models.StaticPlacement, error)
}

type Service struct {
	store      Store
	logger     ectologger.Logger
	defaultURL string
}

// NewService builds an assembler. defaultURL is the object placed in scenes
// without placement data; empty means models.DefaultPlacementURL.
func NewService(store Store, logger ectologger.Logger, defaultURL string) *Service {
	if defaultURL == "" {
		defaultURL = models.DefaultPlacementURL
	}
	return &Service{
		store:      store,
		logger:     logger,
		defaultURL: defaultURL,
	}
}

// Assemble builds the scene descriptor. A missing scene is NotFound and stops
// before any other query. Scene and measure point failures are returned;
// placement failures fall back to the default placement.
func (s *Service) Assemble(ctx context.Context, sceneID int) (models.SceneDescriptor, error) {
	ctx, span := tracing.StartSpan(ctx, "scene.Service.Assemble", tracing.AttrSceneID.Int(sceneID))
	defer span.End()

	scene, err := s.store.GetScene(ctx, sceneID)
	if err != nil {
		tracing.RecordError(span, err)
		return models.SceneDescriptor{}, err
	}

	points, err := s.store.ListMeasurePoints(ctx, sceneID)
	if err != nil {
		tracing.RecordError(span, err)
		s.logger.WithContext(ctx).WithError(err).WithField("scene_id", sceneID).Error("Failed to list measure points")
		return models.SceneDescriptor{}, err
	}

	return models.SceneDescriptor{
		Scene:         scene,
		MeasurePoints: points,
		StaticObjects: s.staticObjects(ctx, sceneID),
	}, nil
}

// staticObjects never fails: errors and panics from the placement lookup are
// logged and replaced by the default placement.
func (s *Service) staticObjects(ctx context.Context, sceneID int) (views []models.PlacementView) {
	ctx, span := tracing.StartSpan(ctx, "scene.Service.staticObjects", tracing.AttrSceneID.Int(sceneID))
	defer span.End()

	log := s.logger.WithContext(ctx).WithField("scene_id", sceneID)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("placement lookup panicked: %v", r)
			tracing.RecordError(span, err)
			log.WithError(err).Warn("Using default placement")
			metrics.RecordPlacementFallback(metrics.FallbackReasonError)
			views = s.defaultObjects()
		}
	}()

	placements, err := s.store.ListStaticPlacements(ctx, sceneID)
	if err != nil {
		tracing.RecordError(span, err)
		log.WithError(err).Warn("Placement lookup failed, using default placement")
		metrics.RecordPlacementFallback(metrics.FallbackReasonError)
		return s.defaultObjects()
	}

	if len(placements) == 0 {
		log.Debug("Scene has no placements, using default placement")
		metrics.RecordPlacementFallback(metrics.FallbackReasonEmpty)
		return s.defaultObjects()
	}

	views = make([]models.PlacementView, 0, len(placements))
	for _, p := range placements {
		views = append(views, p.View())
	}
	return views
}

func (s *Service) defaultObjects() []models.PlacementView {
	return []models.PlacementView{models.DefaultPlacement(s.defaultURL).View()}
}
