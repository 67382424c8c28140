package seeder

import (
	"context"
	"fmt"
	"os"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/database"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"gopkg.in/yaml.v3"
)

// Seeder writes a catalog fixture. Every insert ignores rows that already
// exist, so seeding twice is harmless.
type Seeder struct {
	db     database.DB
	logger ectologger.Logger
}

func NewSeeder(db database.DB, logger ectologger.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// Summary counts the rows submitted per table.
type Summary map[string]int

func (s *Seeder) LoadFile(ctx context.Context, path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	return s.Seed(ctx, fixture)
}

// Seed writes the fixture inside one transaction.
func (s *Seeder) Seed(ctx context.Context, fixture Fixture) (Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "seeder.Seeder.Seed")
	defer span.End()

	ctx, tx, err := s.db.GetTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	summary := Summary{}
	for _, batch := range batches(fixture) {
		if len(batch.rows) == 0 {
			continue
		}

		ib := database.NewInsertBuilder().InsertInto(batch.table).Cols(batch.cols...)
		for _, row := range batch.rows {
			ib = ib.Values(row...)
		}
		ib.OnConflictDoNothing()

		query, args := database.Build(s.db, ib)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithField("table", batch.table).Error("Failed to seed table")
			return nil, fmt.Errorf("failed to seed %s: %w", batch.table, err)
		}
		summary[batch.table] += len(batch.rows)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).WithField("tables", len(summary)).Info("Seeded catalog")
	return summary, nil
}

type batch struct {
	table string
	cols  []string
	rows  [][]any
}

// batches lists the inserts parents first so foreign keys hold.
func batches(f Fixture) []*batch {
	var (
		parameters     = &batch{table: "measure_parameters", cols: []string{"id", "name_en", "name_de"}}
		categories     = &batch{table: "product_categories", cols: []string{"id", "name_en", "name_de"}}
		products       = &batch{table: "products", cols: []string{"name", "html_description_en", "html_description_de", "image_url", "object3d_url"}}
		productParams  = &batch{table: "product_parameters", cols: []string{"product_name", "measure_parameter_id"}}
		categoryLinks  = &batch{table: "product_category_links", cols: []string{"product_name", "category_id"}}
		specifications = &batch{table: "product_specifications", cols: []string{"id", "product_name", "title_en", "title_de", "value_en", "value_de", "sort_order"}}
		features       = &batch{table: "product_features", cols: []string{"id", "product_name", "feature_en", "feature_de", "sort_order"}}
		advantages     = &batch{table: "product_advantages", cols: []string{"id", "product_name", "advantage_en", "advantage_de", "sort_order"}}
		installations  = &batch{table: "product_installations", cols: []string{"id", "product_name", "installation_info_en", "installation_info_de"}}
		datasheets     = &batch{table: "product_datasheets", cols: []string{"id", "product_name", "file_url", "datasheet_name_en", "datasheet_name_de"}}
		scenes         = &batch{table: "scenes", cols: []string{"id", "name_en", "name_de", "camera_start_x", "camera_start_y", "camera_start_z"}}
		sceneProducts  = &batch{table: "scene_products", cols: []string{"scene_id", "product_name"}}
		points         = &batch{table: "measure_points", cols: []string{"id", "scene_id", "name_en", "name_de", "space_pos_x", "space_pos_y", "space_pos_z"}}
		pointParams    = &batch{table: "measure_point_parameters", cols: []string{"measure_point_id", "measure_parameter_id"}}
		exclusions     = &batch{table: "measure_point_product_exclusions", cols: []string{"measure_point_id", "product_name"}}
		placements     = &batch{table: "scene_static_placements", cols: []string{"scene_id", "object3d_url", "x_position", "y_position", "z_position", "x_rotation", "y_rotation", "z_rotation", "scale"}}
	)

	add := func(b *batch, row ...any) {
		b.rows = append(b.rows, row)
	}

	for _, p := range f.Parameters {
		add(parameters, p.ID, p.NameEN, p.NameDE)
	}
	for _, c := range f.Categories {
		add(categories, c.ID, c.NameEN, c.NameDE)
	}

	for _, p := range f.Products {
		add(products, p.Name, p.Description.EN, p.Description.DE, p.ImageURL, p.Object3DURL)
		for _, id := range p.Parameters {
			add(productParams, p.Name, id)
		}
		for _, id := range p.Categories {
			add(categoryLinks, p.Name, id)
		}
		for i, spec := range p.Specifications {
			add(specifications, len(specifications.rows)+1, p.Name, spec.Title.EN, spec.Title.DE, spec.Value.EN, spec.Value.DE, i)
		}
		for i, feature := range p.Features {
			add(features, len(features.rows)+1, p.Name, feature.EN, feature.DE, i)
		}
		for i, advantage := range p.Advantages {
			add(advantages, len(advantages.rows)+1, p.Name, advantage.EN, advantage.DE, i)
		}
		if p.Installation != nil {
			add(installations, len(installations.rows)+1, p.Name, p.Installation.EN, p.Installation.DE)
		}
		if p.Datasheet != nil {
			add(datasheets, len(datasheets.rows)+1, p.Name, p.Datasheet.FileURL, p.Datasheet.Name.EN, p.Datasheet.Name.DE)
		}
	}

	for _, sc := range f.Scenes {
		add(scenes, sc.ID, sc.Name.EN, sc.Name.DE, component(sc.CameraStart, 0), component(sc.CameraStart, 1), component(sc.CameraStart, 2))
		for _, name := range sc.Products {
			add(sceneProducts, sc.ID, name)
		}
		for _, mp := range sc.MeasurePoints {
			add(points, mp.ID, sc.ID, mp.Name.EN, mp.Name.DE, component(mp.Position, 0), component(mp.Position, 1), component(mp.Position, 2))
			for _, id := range mp.Parameters {
				add(pointParams, mp.ID, id)
			}
			for _, name := range mp.Exclusions {
				add(exclusions, mp.ID, name)
			}
		}
		for _, pl := range sc.Placements {
			var scale any
			if pl.Scale != nil {
				scale = *pl.Scale
			}
			add(placements, sc.ID, pl.URL,
				component(pl.Position, 0), component(pl.Position, 1), component(pl.Position, 2),
				component(pl.Rotation, 0), component(pl.Rotation, 1), component(pl.Rotation, 2),
				scale)
		}
	}

	return []*batch{
		parameters, categories, products, productParams, categoryLinks,
		specifications, features, advantages, installations, datasheets,
		scenes, sceneProducts, points, pointParams, exclusions, placements,
	}
}
