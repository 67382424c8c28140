package measurepoint

import (
	"context"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/middleware"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/routes"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/utils"
	"github.com/labstack/echo/v4"
)

type Resolver interface {
	Resolve(ctx context.Context, measurePointID int) (models.Resolution, error)
}

// Handler serves product resolution for measure points
type Handler struct {
	resolver Resolver
}

func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// RegisterRoutes registers the measure point routes
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/measurepoints/:id/products", h.ListProducts)
}

// ListProducts handles GET /measurepoints/:id/products. The tier that
// produced the list is reported in the X-Resolution-Tier header.
func (h *Handler) ListProducts(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "measurepoint.ListProducts")
	defer span.End()

	req, err := utils.BindRequest[routes.IDParam](c)
	if err != nil {
		return err
	}

	resolution, err := h.resolver.Resolve(ctx, req.ID)
	if err != nil {
		return err
	}

	c.Response().Header().Set(middleware.HeaderResolutionTier, string(resolution.Tier))
	return routes.SuccessResponse(c, resolution.Products)
}
