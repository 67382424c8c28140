package catalog

import (
	"context"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/database"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/errors"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"github.com/huandu/go-sqlbuilder"
)

func (r *Repository) GetProduct(ctx context.Context, name string) (models.Product, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.GetProduct")
	defer span.End()

	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(productColumns...)
	sb.From("products")
	sb.Where(sb.Equal("products.name", name))
	sb.Limit(1)

	var row productRow
	if err := r.get(ctx, "get product", "product", name, &row, sb); err != nil {
		return models.Product{}, err
	}
	return row.toModel(), nil
}

func (r *Repository) ListSpecifications(ctx context.Context, productName string) ([]models.ProductSpecification, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListSpecifications")
	defer span.End()

	var rows []specificationRow
	if err := r.list(ctx, "list specifications", &rows, productDetailQuery(specificationRow{}, "product_specifications", productName)); err != nil {
		return nil, err
	}

	specs := make([]models.ProductSpecification, 0, len(rows))
	for _, row := range rows {
		specs = append(specs, models.ProductSpecification(row))
	}
	return specs, nil
}

func (r *Repository) ListFeatures(ctx context.Context, productName string) ([]models.ProductFeature, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListFeatures")
	defer span.End()

	var rows []featureRow
	if err := r.list(ctx, "list features", &rows, productDetailQuery(featureRow{}, "product_features", productName)); err != nil {
		return nil, err
	}

	features := make([]models.ProductFeature, 0, len(rows))
	for _, row := range rows {
		features = append(features, models.ProductFeature(row))
	}
	return features, nil
}

func (r *Repository) ListAdvantages(ctx context.Context, productName string) ([]models.ProductAdvantage, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListAdvantages")
	defer span.End()

	var rows []advantageRow
	if err := r.list(ctx, "list advantages", &rows, productDetailQuery(advantageRow{}, "product_advantages", productName)); err != nil {
		return nil, err
	}

	advantages := make([]models.ProductAdvantage, 0, len(rows))
	for _, row := range rows {
		advantages = append(advantages, models.ProductAdvantage(row))
	}
	return advantages, nil
}

// GetInstallation returns nil when the product has no installation notes.
func (r *Repository) GetInstallation(ctx context.Context, productName string) (*models.ProductInstallation, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.GetInstallation")
	defer span.End()

	sb := database.NewStruct(installationRow{}).SelectFrom("product_installations")
	sb.Where(sb.Equal("product_installations.product_name", productName))
	sb.OrderBy("product_installations.id").Asc()
	sb.Limit(1)

	var row installationRow
	if err := r.get(ctx, "get installation", "installation", productName, &row, sb); err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	installation := models.ProductInstallation(row)
	return &installation, nil
}

// GetDatasheet returns nil when the product has no datasheet.
func (r *Repository) GetDatasheet(ctx context.Context, productName string) (*models.ProductDatasheet, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.GetDatasheet")
	defer span.End()

	sb := database.NewStruct(datasheetRow{}).SelectFrom("product_datasheets")
	sb.Where(sb.Equal("product_datasheets.product_name", productName))
	sb.OrderBy("product_datasheets.id").Asc()
	sb.Limit(1)

	var row datasheetRow
	if err := r.get(ctx, "get datasheet", "datasheet", productName, &row, sb); err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	datasheet := models.ProductDatasheet(row)
	return &datasheet, nil
}

// ListProductCategories returns the categories linked to the product, ordered by id.
func (r *Repository) ListProductCategories(ctx context.Context, productName string) ([]models.ProductCategory, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Repository.ListProductCategories")
	defer span.End()

	sb := database.NewStruct(categoryRow{}).SelectFrom("product_categories")
	sb.Join("product_category_links", "product_category_links.category_id = product_categories.id")
	sb.Where(sb.Equal("product_category_links.product_name", productName))
	sb.OrderBy("product_categories.id").Asc()

	var rows []categoryRow
	if err := r.list(ctx, "list product categories", &rows, sb); err != nil {
		return nil, err
	}

	categories := make([]models.ProductCategory, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, models.ProductCategory(row))
	}
	return categories, nil
}

// productDetailQuery selects a product's rows from a sort_order'ed detail table.
func productDetailQuery(row any, table, productName string) *database.SelectBuilder {
	sb := database.NewStruct(row).SelectFrom(table)
	sb.Where(sb.Equal(table+".product_name", productName))
	sb.OrderBy(table+".sort_order", table+".id").Asc()
	return sb
}
