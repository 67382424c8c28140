package scene

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/repositories/catalog"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/testdb"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/errors"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/logging"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	scene        *models.Scene
	points       []models.MeasurePoint
	placements   []models.StaticPlacement
	pointsErr    error
	placementErr error
	panicOn      bool
	calls        []string
}

func (f *fakeStore) GetScene(_ context.Context, id int) (models.Scene, error) {
	f.calls = append(f.calls, "scene")
	if f.scene == nil {
		return models.Scene{}, errors.NotFound("scene", id)
	}
	return *f.scene, nil
}

func (f *fakeStore) ListMeasurePoints(context.Context, int) ([]models.MeasurePoint, error) {
	f.calls = append(f.calls, "points")
	return f.points, f.pointsErr
}

func (f *fakeStore) ListStaticPlacements(context.Context, int) ([]models.StaticPlacement, error) {
	f.calls = append(f.calls, "placements")
	if f.panicOn {
		panic("placement table malformed")
	}
	return f.placements, f.placementErr
}

var defaultView = models.PlacementView{
	ID:       models.DefaultPlacementURL,
	URL:      models.DefaultPlacementURL,
	Position: models.Vector3{0, 0, 0},
	Rotation: models.Vector3{0, 0, 0},
	Scale:    models.Vector3{1, 1, 1},
}

func ptr(v float64) *float64 { return &v }

func TestAssembleMissingSceneStopsEarly(t *testing.T) {
	store := &fakeStore{}
	_, err := NewService(store, logging.Nop(), "").Assemble(context.Background(), 3)

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, []string{"scene"}, store.calls)
}

func TestAssembleMissingSceneRunsOneQuery(t *testing.T) {
	db, mock := testdb.NewMock(t)
	mock.ExpectQuery(`FROM scenes WHERE scenes\.id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := NewService(catalog.NewRepository(db, logging.Nop()), logging.Nop(), "")
	_, err := svc.Assemble(context.Background(), 3)

	assert.True(t, errors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssembleMeasurePointFailureIsFatal(t *testing.T) {
	store := &fakeStore{scene: &models.Scene{ID: 1}, pointsErr: errors.StoreError("list measure points", sql.ErrConnDone)}
	_, err := NewService(store, logging.Nop(), "").Assemble(context.Background(), 1)

	assert.True(t, errors.IsStoreError(err))
	assert.Equal(t, []string{"scene", "points"}, store.calls)
}

func TestAssembleDefaultPlacement(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{"no placement rows", &fakeStore{}},
		{"placement query fails", &fakeStore{placementErr: errors.StoreError("list static placements", sql.ErrConnDone)}},
		{"placement lookup panics", &fakeStore{panicOn: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.store.scene = &models.Scene{ID: 1, NameEN: "Line"}
			tt.store.points = []models.MeasurePoint{{ID: 1, SceneID: 1}}

			descriptor, err := NewService(tt.store, logging.Nop(), "").Assemble(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, "Line", descriptor.Scene.NameEN)
			assert.Len(t, descriptor.MeasurePoints, 1)
			assert.Equal(t, []models.PlacementView{defaultView}, descriptor.StaticObjects)
		})
	}
}

func TestAssembleConfiguredDefaultURL(t *testing.T) {
	store := &fakeStore{scene: &models.Scene{ID: 1}}
	descriptor, err := NewService(store, logging.Nop(), "fallback.glb").Assemble(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, descriptor.StaticObjects, 1)
	assert.Equal(t, "fallback.glb", descriptor.StaticObjects[0].URL)
}

func TestAssembleNormalizesPlacements(t *testing.T) {
	store := &fakeStore{
		scene: &models.Scene{ID: 1},
		placements: []models.StaticPlacement{
			{URL: "a.glb", XPosition: ptr(1), YPosition: ptr(2), ZPosition: ptr(3), XRotation: ptr(0.5), Scale: ptr(2.5)},
			{URL: "b.glb", ZRotation: ptr(-1)},
		},
	}

	descriptor, err := NewService(store, logging.Nop(), "").Assemble(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []models.PlacementView{
		{ID: "a.glb", URL: "a.glb", Position: models.Vector3{1, 2, 3}, Rotation: models.Vector3{0.5, 0, 0}, Scale: models.Vector3{2.5, 2.5, 2.5}},
		{ID: "b.glb", URL: "b.glb", Position: models.Vector3{0, 0, 0}, Rotation: models.Vector3{0, 0, -1}, Scale: models.Vector3{1, 1, 1}},
	}, descriptor.StaticObjects)
}

func TestAssembleSQLite(t *testing.T) {
	db := testdb.New(t)
	testdb.Exec(t, db,
		`INSERT INTO scenes (id, name_en, name_de) VALUES (1, 'Line', 'Linie'), (2, 'Empty', 'Leer')`,
		`INSERT INTO measure_points (id, scene_id, name_en) VALUES (3, 1, 'C'), (1, 1, 'A'), (2, 2, 'B')`,
		`INSERT INTO scene_static_placements (scene_id, object3d_url, x_position, scale) VALUES (1, 'line.glb', 4, 0)`,
	)
	svc := NewService(catalog.NewRepository(db, logging.Nop()), logging.Nop(), "")

	descriptor, err := svc.Assemble(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, descriptor.MeasurePoints, 2)
	assert.Equal(t, 1, descriptor.MeasurePoints[0].ID)
	assert.Equal(t, 3, descriptor.MeasurePoints[1].ID)
	assert.Equal(t, []models.PlacementView{{
		ID: "line.glb", URL: "line.glb",
		Position: models.Vector3{4, 0, 0},
		Rotation: models.Vector3{0, 0, 0},
		Scale:    models.Vector3{1, 1, 1},
	}}, descriptor.StaticObjects)

	descriptor, err = svc.Assemble(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []models.PlacementView{defaultView}, descriptor.StaticObjects)

	// a missing placement table degrades to the default instead of failing the scene
	testdb.Exec(t, db, `DROP TABLE scene_static_placements`)
	descriptor, err = svc.Assemble(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, descriptor.MeasurePoints, 2)
	assert.Equal(t, []models.PlacementView{defaultView}, descriptor.StaticObjects)

	_, err = svc.Assemble(context.Background(), 9)
	assert.True(t, errors.IsNotFound(err))
}
