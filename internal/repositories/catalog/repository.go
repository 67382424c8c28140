package catalog

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/database"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/errors"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/metrics"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"github.com/huandu/go-sqlbuilder"
)

// Repository is the read side of the showroom catalog.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetMeasurePoint returns NotFound when no measure point has the id.
func (r *Repository) GetMeasurePoint(ctx context.Context, id int) (models.MeasurePoint, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.GetMeasurePoint")
	defer span.End()

	sb := database.NewStruct(measurePointRow{}).SelectFrom("measure_points")
	sb.Where(sb.Equal("measure_points.id", id))
	sb.Limit(1)

	var row measurePointRow
	if err := r.get(ctx, "get measure point", "measure point", id, &row, sb); err != nil {
		return models.MeasurePoint{}, err
	}
	return row.toModel(), nil
}

// ListParameterProducts returns the distinct products linked to any parameter
// of the measure point, minus its exclusions, ordered by name.
func (r *Repository) ListParameterProducts(ctx context.Context, measurePointID int) ([]models.Product, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListParameterProducts")
	defer span.End()

	sb := sqlbuilder.NewSelectBuilder()
	sb.Distinct().Select(productColumns...)
	sb.From("products")
	sb.Join("product_parameters", "product_parameters.product_name = products.name")
	sb.Join("measure_point_parameters", "measure_point_parameters.measure_parameter_id = product_parameters.measure_parameter_id")
	sb.Where(
		sb.Equal("measure_point_parameters.measure_point_id", measurePointID),
		sb.NotIn("products.name", excludedProducts(measurePointID)),
	)
	sb.OrderBy("products.name").Asc()

	var rows []productRow
	if err := r.list(ctx, "list parameter products", &rows, sb); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ListSceneProducts returns the products associated directly with the scene,
// minus the measure point's exclusions, ordered by name.
func (r *Repository) ListSceneProducts(ctx context.Context, sceneID, measurePointID int) ([]models.Product, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListSceneProducts")
	defer span.End()

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(productColumns...)
	sb.From("products")
	sb.Join("scene_products", "scene_products.product_name = products.name")
	sb.Where(
		sb.Equal("scene_products.scene_id", sceneID),
		sb.NotIn("products.name", excludedProducts(measurePointID)),
	)
	sb.OrderBy("products.name").Asc()

	var rows []productRow
	if err := r.list(ctx, "list scene products", &rows, sb); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ListCatalogProducts returns up to limit products from the whole catalog,
// minus the measure point's exclusions, ordered by name.
func (r *Repository) ListCatalogProducts(ctx context.Context, measurePointID, limit int) ([]models.Product, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListCatalogProducts")
	defer span.End()

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(productColumns...)
	sb.From("products")
	sb.Where(sb.NotIn("products.name", excludedProducts(measurePointID)))
	sb.OrderBy("products.name").Asc()
	sb.Limit(limit)

	var rows []productRow
	if err := r.list(ctx, "list catalog products", &rows, sb); err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// excludedProducts selects the exclusion set of a measure point. A NULL
// product name would turn every NOT IN into unknown, so it is coalesced.
func excludedProducts(measurePointID int) *sqlbuilder.SelectBuilder {
	sub := sqlbuilder.NewSelectBuilder()
	sub.Select("COALESCE(measure_point_product_exclusions.product_name, '')")
	sub.From("measure_point_product_exclusions")
	sub.Where(sub.Equal("measure_point_product_exclusions.measure_point_id", measurePointID))
	return sub
}

// GetScene returns NotFound when no scene has the id.
func (r *Repository) GetScene(ctx context.Context, id int) (models.Scene, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.GetScene")
	defer span.End()

	sb := database.NewStruct(sceneRow{}).SelectFrom("scenes")
	sb.Where(sb.Equal("scenes.id", id))
	sb.Limit(1)

	var row sceneRow
	if err := r.get(ctx, "get scene", "scene", id, &row, sb); err != nil {
		return models.Scene{}, err
	}
	return row.toModel(), nil
}

func (r *Repository) ListMeasurePoints(ctx context.Context, sceneID int) ([]models.MeasurePoint, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListMeasurePoints")
	defer span.End()

	sb := database.NewStruct(measurePointRow{}).SelectFrom("measure_points")
	sb.Where(sb.Equal("measure_points.scene_id", sceneID))
	sb.OrderBy("measure_points.id").Asc()

	var rows []measurePointRow
	if err := r.list(ctx, "list measure points", &rows, sb); err != nil {
		return nil, err
	}

	points := make([]models.MeasurePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, row.toModel())
	}
	return points, nil
}

func (r *Repository) ListStaticPlacements(ctx context.Context, sceneID int) ([]models.StaticPlacement, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListStaticPlacements")
	defer span.End()

	sb := database.NewStruct(placementRow{}).SelectFrom("scene_static_placements")
	sb.Where(sb.Equal("scene_static_placements.scene_id", sceneID))
	sb.OrderBy("scene_static_placements.object3d_url").Asc()

	var rows []placementRow
	if err := r.list(ctx, "list static placements", &rows, sb); err != nil {
		return nil, err
	}

	placements := make([]models.StaticPlacement, 0, len(rows))
	for _, row := range rows {
		placements = append(placements, row.toModel())
	}
	return placements, nil
}

// CountProducts reports the catalog size for the health check.
func (r *Repository) CountProducts(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.CountProducts")
	defer span.End()

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("COUNT(*)").From("products")

	var count int
	if err := r.get(ctx, "count products", "products", nil, &count, sb); err != nil {
		return 0, err
	}
	return count, nil
}

// get runs a single-row query. No rows maps to NotFound for entity/id.
func (r *Repository) get(ctx context.Context, op, entity string, id any, dest any, sb sqlbuilder.Builder) error {
	defer metrics.ObserveQuery(op, time.Now())

	query, args := database.Build(r.db, sb)
	if err := r.db.GetContext(ctx, dest, query, args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFound(entity, id)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"op":     op,
			"entity": entity,
			"id":     id,
		}).Error("Catalog query failed")
		tracing.RecordError(tracing.GetActiveSpan(ctx), err)
		return errors.StoreError(op, err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, op string, dest any, sb sqlbuilder.Builder) error {
	defer metrics.ObserveQuery(op, time.Now())

	query, args := database.Build(r.db, sb)
	if err := r.db.SelectContext(ctx, dest, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("op", op).Error("Catalog query failed")
		tracing.RecordError(tracing.GetActiveSpan(ctx), err)
		return errors.StoreError(op, err)
	}
	return nil
}
