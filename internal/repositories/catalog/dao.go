package catalog

import (
	"database/sql"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
)

// Row types mirror the catalog tables. Optional columns are nullable so the
// same scans work against rows written by the admin tooling.

type sceneRow struct {
	ID           int             `db:"id"`
	NameEN       string          `db:"name_en"`
	NameDE       string          `db:"name_de"`
	CameraStartX sql.NullFloat64 `db:"camera_start_x"`
	CameraStartY sql.NullFloat64 `db:"camera_start_y"`
	CameraStartZ sql.NullFloat64 `db:"camera_start_z"`
}

func (r sceneRow) toModel() models.Scene {
	return models.Scene{
		ID:           r.ID,
		NameEN:       r.NameEN,
		NameDE:       r.NameDE,
		CameraStartX: floatPtr(r.CameraStartX),
		CameraStartY: floatPtr(r.CameraStartY),
		CameraStartZ: floatPtr(r.CameraStartZ),
	}
}

type measurePointRow struct {
	ID        int             `db:"id"`
	SceneID   int             `db:"scene_id"`
	NameEN    string          `db:"name_en"`
	NameDE    string          `db:"name_de"`
	SpacePosX sql.NullFloat64 `db:"space_pos_x"`
	SpacePosY sql.NullFloat64 `db:"space_pos_y"`
	SpacePosZ sql.NullFloat64 `db:"space_pos_z"`
}

func (r measurePointRow) toModel() models.MeasurePoint {
	return models.MeasurePoint{
		ID:        r.ID,
		SceneID:   r.SceneID,
		NameEN:    r.NameEN,
		NameDE:    r.NameDE,
		SpacePosX: floatPtr(r.SpacePosX),
		SpacePosY: floatPtr(r.SpacePosY),
		SpacePosZ: floatPtr(r.SpacePosZ),
	}
}

type productRow struct {
	Name              string         `db:"name"`
	HTMLDescriptionEN sql.NullString `db:"html_description_en"`
	HTMLDescriptionDE sql.NullString `db:"html_description_de"`
	ImageURL          sql.NullString `db:"image_url"`
	Object3DURL       sql.NullString `db:"object3d_url"`
}

// productColumns are qualified so they survive joins.
var productColumns = []string{
	"products.name",
	"products.html_description_en",
	"products.html_description_de",
	"products.image_url",
	"products.object3d_url",
}

func (r productRow) toModel() models.Product {
	return models.Product{
		Name:              r.Name,
		HTMLDescriptionEN: r.HTMLDescriptionEN.String,
		HTMLDescriptionDE: r.HTMLDescriptionDE.String,
		ImageURL:          r.ImageURL.String,
		Object3DURL:       r.Object3DURL.String,
	}
}

func toProducts(rows []productRow) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products
}

type placementRow struct {
	SceneID   int             `db:"scene_id"`
	URL       string          `db:"object3d_url"`
	XPosition sql.NullFloat64 `db:"x_position"`
	YPosition sql.NullFloat64 `db:"y_position"`
	ZPosition sql.NullFloat64 `db:"z_position"`
	XRotation sql.NullFloat64 `db:"x_rotation"`
	YRotation sql.NullFloat64 `db:"y_rotation"`
	ZRotation sql.NullFloat64 `db:"z_rotation"`
	Scale     sql.NullFloat64 `db:"scale"`
}

func (r placementRow) toModel() models.StaticPlacement {
	return models.StaticPlacement{
		SceneID:   r.SceneID,
		URL:       r.URL,
		XPosition: floatPtr(r.XPosition),
		YPosition: floatPtr(r.YPosition),
		ZPosition: floatPtr(r.ZPosition),
		XRotation: floatPtr(r.XRotation),
		YRotation: floatPtr(r.YRotation),
		ZRotation: floatPtr(r.ZRotation),
		Scale:     floatPtr(r.Scale),
	}
}

type categoryRow struct {
	ID     int    `db:"id"`
	NameEN string `db:"name_en"`
	NameDE string `db:"name_de"`
}

type specificationRow struct {
	ID          int    `db:"id"`
	ProductName string `db:"product_name"`
	TitleEN     string `db:"title_en"`
	TitleDE     string `db:"title_de"`
	ValueEN     string `db:"value_en"`
	ValueDE     string `db:"value_de"`
	SortOrder   int    `db:"sort_order"`
}

type featureRow struct {
	ID          int    `db:"id"`
	ProductName string `db:"product_name"`
	FeatureEN   string `db:"feature_en"`
	FeatureDE   string `db:"feature_de"`
	SortOrder   int    `db:"sort_order"`
}

type advantageRow struct {
	ID          int    `db:"id"`
	ProductName string `db:"product_name"`
	AdvantageEN string `db:"advantage_en"`
	AdvantageDE string `db:"advantage_de"`
	SortOrder   int    `db:"sort_order"`
}

type installationRow struct {
	ID                 int    `db:"id"`
	ProductName        string `db:"product_name"`
	InstallationInfoEN string `db:"installation_info_en"`
	InstallationInfoDE string `db:"installation_info_de"`
}

type datasheetRow struct {
	ID              int    `db:"id"`
	ProductName     string `db:"product_name"`
	FileURL         string `db:"file_url"`
	DatasheetNameEN string `db:"datasheet_name_en"`
	DatasheetNameDE string `db:"datasheet_name_de"`
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
