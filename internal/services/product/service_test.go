package product

import (
	"context"
	"database/sql"
	"sync/atomic"
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
	Store
	missing    bool
	failFeats  bool
	detailHits atomic.Int32
}

func (f *fakeStore) GetProduct(_ context.Context, name string) (models.Product, error) {
	if f.missing {
		return models.Product{}, errors.NotFound("product", name)
	}
	return models.Product{Name: name}, nil
}

func (f *fakeStore) ListSpecifications(context.Context, string) ([]models.ProductSpecification, error) {
	f.detailHits.Add(1)
	return []models.ProductSpecification{{ID: 1, TitleEN: "Range"}}, nil
}

func (f *fakeStore) ListFeatures(context.Context, string) ([]models.ProductFeature, error) {
	f.detailHits.Add(1)
	if f.failFeats {
		return nil, errors.StoreError("list features", sql.ErrConnDone)
	}
	return []models.ProductFeature{}, nil
}

func (f *fakeStore) ListAdvantages(context.Context, string) ([]models.ProductAdvantage, error) {
	f.detailHits.Add(1)
	return []models.ProductAdvantage{}, nil
}

func (f *fakeStore) GetInstallation(context.Context, string) (*models.ProductInstallation, error) {
	f.detailHits.Add(1)
	return nil, nil
}

func (f *fakeStore) GetDatasheet(context.Context, string) (*models.ProductDatasheet, error) {
	f.detailHits.Add(1)
	return &models.ProductDatasheet{FileURL: "sheet.pdf"}, nil
}

func (f *fakeStore) ListProductCategories(context.Context, string) ([]models.ProductCategory, error) {
	f.detailHits.Add(1)
	return []models.ProductCategory{{ID: 1}}, nil
}

func TestAssemble(t *testing.T) {
	store := &fakeStore{}
	detail, err := NewService(store, logging.Nop()).Assemble(context.Background(), "LASER 2000")
	require.NoError(t, err)

	assert.Equal(t, "LASER 2000", detail.Name)
	assert.Len(t, detail.Specifications, 1)
	assert.Nil(t, detail.Installation)
	require.NotNil(t, detail.Datasheet)
	assert.Equal(t, "sheet.pdf", detail.Datasheet.FileURL)
	assert.Equal(t, int32(6), store.detailHits.Load())
}

func TestAssembleMissingProduct(t *testing.T) {
	store := &fakeStore{missing: true}
	_, err := NewService(store, logging.Nop()).Assemble(context.Background(), "nope")

	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, int32(0), store.detailHits.Load())
}

func TestAssembleDetailFailure(t *testing.T) {
	_, err := NewService(&fakeStore{failFeats: true}, logging.Nop()).Assemble(context.Background(), "LASER 2000")
	assert.True(t, errors.IsStoreError(err))
}

func TestAssembleSQLite(t *testing.T) {
	db := testdb.New(t)
	testdb.Exec(t, db,
		`INSERT INTO products (name, html_description_en, object3d_url) VALUES ('X-RAY 6000', '<p>X-ray</p>', 'xray.glb')`,
		`INSERT INTO product_features (id, product_name, feature_en, sort_order) VALUES (1, 'X-RAY 6000', 'late', 5), (2, 'X-RAY 6000', 'early', 1)`,
		`INSERT INTO product_installations (id, product_name, installation_info_en) VALUES (1, 'X-RAY 6000', 'inline')`,
	)

	detail, err := NewService(catalog.NewRepository(db, logging.Nop()), logging.Nop()).Assemble(context.Background(), "X-RAY 6000")
	require.NoError(t, err)

	assert.Equal(t, "xray.glb", detail.Object3DURL)
	require.Len(t, detail.Features, 2)
	assert.Equal(t, "early", detail.Features[0].FeatureEN)
	require.NotNil(t, detail.Installation)
	assert.Equal(t, "inline", detail.Installation.InstallationInfoEN)
	assert.Nil(t, detail.Datasheet)
	assert.Empty(t, detail.Specifications)
	assert.Empty(t, detail.Categories)
}
