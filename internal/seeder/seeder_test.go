package seeder

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/repositories/catalog"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/services/resolver"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/services/scene"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/testdb"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/logging"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "seed", "showroom.yaml")
}

func productNames(products []models.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func TestLoadFileSeedsDemoCatalog(t *testing.T) {
	db := testdb.New(t)
	seeder := NewSeeder(db, logging.Nop())
	ctx := context.Background()

	summary, err := seeder.LoadFile(ctx, fixturePath())
	require.NoError(t, err)
	assert.Equal(t, 5, summary["products"])
	assert.Equal(t, 4, summary["measure_points"])

	// seeding again is a no-op
	_, err = seeder.LoadFile(ctx, fixturePath())
	require.NoError(t, err)

	repo := catalog.NewRepository(db, logging.Nop())
	res := resolver.NewService(repo, logging.Nop())

	products, err := res.ResolveProducts(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"CENTERWAVE 6000/250", "LASER 2010 XY"}, productNames(products))

	resolution, err := res.Resolve(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.TierScene, resolution.Tier)
	assert.Equal(t, []string{"LASER 2010 XY", "SPARK 8000"}, productNames(resolution.Products))

	// X-RAY 6020 PRO shares the parameter but is excluded at this point
	resolution, err = res.Resolve(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, models.TierParameter, resolution.Tier)
	assert.Equal(t, []string{"CENTERWAVE 6000/250"}, productNames(resolution.Products))

	descriptor, err := scene.NewService(repo, logging.Nop(), "").Assemble(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, descriptor.MeasurePoints, 1)
	assert.Equal(t, models.DefaultPlacementURL, descriptor.StaticObjects[0].URL)
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	db := testdb.New(t)
	seeder := NewSeeder(db, logging.Nop())

	fixture := Fixture{
		Parameters: []Named{{ID: 1, NameEN: "Diameter"}},
		// product_parameters references a parameter that does not exist
		Products: []ProductEntry{{Name: "LASER 2010 XY", Parameters: []int{99}}},
	}

	_, err := seeder.Seed(context.Background(), fixture)
	require.Error(t, err)

	var count int
	require.NoError(t, db.GetContext(context.Background(), &count, "SELECT COUNT(*) FROM measure_parameters"))
	assert.Zero(t, count)
}

func TestLoadFileErrors(t *testing.T) {
	seeder := NewSeeder(testdb.New(t), logging.Nop())

	_, err := seeder.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read fixture")
}
