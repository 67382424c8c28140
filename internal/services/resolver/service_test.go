package resolver

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/repositories/catalog"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/testdb"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/errors"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/logging"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	points    map[int]models.MeasurePoint
	parameter []models.Product
	scene     []models.Product
	catalog   []models.Product
	failOn    string
	calls     []string
}

func (f *fakeStore) fail(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn == call {
		return errors.StoreError(call, sql.ErrConnDone)
	}
	return nil
}

func (f *fakeStore) GetMeasurePoint(_ context.Context, id int) (models.MeasurePoint, error) {
	if err := f.fail("point"); err != nil {
		return models.MeasurePoint{}, err
	}
	point, ok := f.points[id]
	if !ok {
		return models.MeasurePoint{}, errors.NotFound("measure point", id)
	}
	return point, nil
}

func (f *fakeStore) ListParameterProducts(context.Context, int) ([]models.Product, error) {
	return f.parameter, f.fail("parameter")
}

func (f *fakeStore) ListSceneProducts(context.Context, int, int) ([]models.Product, error) {
	return f.scene, f.fail("scene")
}

func (f *fakeStore) ListCatalogProducts(_ context.Context, _ int, limit int) ([]models.Product, error) {
	if limit != CatalogLimit {
		return nil, fmt.Errorf("unexpected limit %d", limit)
	}
	return f.catalog, f.fail("catalog")
}

func products(names ...string) []models.Product {
	out := make([]models.Product, 0, len(names))
	for _, name := range names {
		out = append(out, models.Product{Name: name})
	}
	return out
}

func TestResolveTierPrecedence(t *testing.T) {
	point := map[int]models.MeasurePoint{1: {ID: 1, SceneID: 5}}

	tests := []struct {
		name     string
		store    *fakeStore
		tier     models.Tier
		products []string
		calls    []string
	}{
		{
			name:     "parameter tier wins",
			store:    &fakeStore{points: point, parameter: products("A"), scene: products("S"), catalog: products("C")},
			tier:     models.TierParameter,
			products: []string{"A"},
			calls:    []string{"point", "parameter"},
		},
		{
			name:     "scene tier when no parameter products",
			store:    &fakeStore{points: point, scene: products("S"), catalog: products("C")},
			tier:     models.TierScene,
			products: []string{"S"},
			calls:    []string{"point", "parameter", "scene"},
		},
		{
			name:     "catalog tier last",
			store:    &fakeStore{points: point, catalog: products("C")},
			tier:     models.TierCatalog,
			products: []string{"C"},
			calls:    []string{"point", "parameter", "scene", "catalog"},
		},
		{
			name:     "empty catalog",
			store:    &fakeStore{points: point},
			tier:     models.TierNone,
			products: []string{},
			calls:    []string{"point", "parameter", "scene", "catalog"},
		},
		{
			name:     "missing measure point is empty",
			store:    &fakeStore{catalog: products("C")},
			tier:     models.TierNone,
			products: []string{},
			calls:    []string{"point"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.store, logging.Nop())

			resolution, err := svc.Resolve(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.tier, resolution.Tier)
			assert.Equal(t, tt.calls, tt.store.calls)

			names := []string{}
			for _, p := range resolution.Products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.products, names)
		})
	}
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	for _, call := range []string{"point", "parameter", "scene", "catalog"} {
		t.Run(call, func(t *testing.T) {
			store := &fakeStore{points: map[int]models.MeasurePoint{1: {ID: 1, SceneID: 5}}, failOn: call}
			svc := NewService(store, logging.Nop())

			got, err := svc.ResolveProducts(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, errors.IsStoreError(err))
			assert.Nil(t, got)
		})
	}
}

func TestResolveCapsCatalogTier(t *testing.T) {
	many := make([]string, 0, 80)
	for i := 0; i < 80; i++ {
		many = append(many, fmt.Sprintf("P%03d", i))
	}
	store := &fakeStore{points: map[int]models.MeasurePoint{1: {ID: 1}}, catalog: products(many...)}

	got, err := NewService(store, logging.Nop()).ResolveProducts(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got, CatalogLimit)
}

// newCatalogService seeds scene S1 with measure points P1 (parameters A, B) and
// P2 (no parameters), product X on parameter A, product Y on S1, and excludes X from P1.
func newCatalogService(t *testing.T) (*Service, func(...string)) {
	t.Helper()
	db := testdb.New(t)
	testdb.Exec(t, db,
		`INSERT INTO scenes (id, name_en) VALUES (1, 'S1')`,
		`INSERT INTO measure_points (id, scene_id, name_en) VALUES (1, 1, 'P1'), (2, 1, 'P2')`,
		`INSERT INTO measure_parameters (id, name_en) VALUES (1, 'A'), (2, 'B')`,
		`INSERT INTO measure_point_parameters VALUES (1, 1), (1, 2)`,
		`INSERT INTO products (name) VALUES ('X'), ('Y')`,
		`INSERT INTO product_parameters VALUES ('X', 1)`,
		`INSERT INTO scene_products VALUES (1, 'Y')`,
		`INSERT INTO measure_point_product_exclusions VALUES (1, 'X')`,
	)
	exec := func(statements ...string) { testdb.Exec(t, db, statements...) }
	return NewService(catalog.NewRepository(db, logging.Nop()), logging.Nop()), exec
}

func names(t *testing.T, svc *Service, measurePointID int) ([]string, models.Tier) {
	t.Helper()
	resolution, err := svc.Resolve(context.Background(), measurePointID)
	require.NoError(t, err)
	out := []string{}
	for _, p := range resolution.Products {
		out = append(out, p.Name)
	}
	return out, resolution.Tier
}

func TestResolveCatalogScenario(t *testing.T) {
	svc, _ := newCatalogService(t)

	got, tier := names(t, svc, 1)
	assert.Equal(t, []string{"Y"}, got)
	assert.Equal(t, models.TierScene, tier)

	got, tier = names(t, svc, 2)
	assert.Equal(t, []string{"Y"}, got)
	assert.Equal(t, models.TierScene, tier)

	got, tier = names(t, svc, 404)
	assert.Empty(t, got)
	assert.Equal(t, models.TierNone, tier)
}

func TestResolveExclusionsApplyAtEveryTier(t *testing.T) {
	svc, exec := newCatalogService(t)

	// excluding Y from P1 empties the scene tier, so the catalog tier fires without X or Y
	exec(
		`INSERT INTO measure_point_product_exclusions VALUES (1, 'Y')`,
		`INSERT INTO products (name) VALUES ('Z')`,
	)
	got, tier := names(t, svc, 1)
	assert.Equal(t, []string{"Z"}, got)
	assert.Equal(t, models.TierCatalog, tier)

	// P2 is unaffected by P1's exclusions
	got, _ = names(t, svc, 2)
	assert.Equal(t, []string{"Y"}, got)
}

func TestResolveParameterTierIsDistinctAndSorted(t *testing.T) {
	svc, exec := newCatalogService(t)

	exec(
		`INSERT INTO products (name) VALUES ('W'), ('V')`,
		`INSERT INTO product_parameters VALUES ('W', 1), ('W', 2), ('V', 2)`,
	)
	got, tier := names(t, svc, 1)
	assert.Equal(t, []string{"V", "W"}, got)
	assert.Equal(t, models.TierParameter, tier)
}

func TestResolveCatalogTierCap(t *testing.T) {
	svc, exec := newCatalogService(t)

	exec(`DELETE FROM scene_products`)
	for i := 0; i < 60; i++ {
		exec(fmt.Sprintf(`INSERT INTO products (name) VALUES ('Q%02d')`, i))
	}

	got, tier := names(t, svc, 2)
	assert.Equal(t, models.TierCatalog, tier)
	require.Len(t, got, CatalogLimit)
	assert.Equal(t, "Q00", got[0])
	assert.NotContains(t, got, "X")
}

func TestResolveIsIdempotent(t *testing.T) {
	svc, exec := newCatalogService(t)
	exec(`INSERT INTO products (name) VALUES ('M'), ('N')`, `INSERT INTO scene_products VALUES (1, 'N'), (1, 'M')`)

	first, _ := names(t, svc, 2)
	second, _ := names(t, svc, 2)
	assert.Equal(t, []string{"M", "N", "Y"}, first)
	assert.Equal(t, first, second)
}
