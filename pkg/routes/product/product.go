package product

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/routes"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/utils"
	"github.com/labstack/echo/v4"
)

type Assembler interface {
	Assemble(ctx context.Context, name string) (models.ProductDetail, error)
}

type Handler struct {
	assembler Assembler
}

func NewHandler(assembler Assembler) *Handler {
	return &Handler{assembler: assembler}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/products/:name/details", h.Details)
}

type detailsRequest struct {
	Name string `param:"name" validate:"required"`
}

// Details handles GET /products/:name/details
func (h *Handler) Details(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "product.Details")
	defer span.End()

	req, err := utils.BindRequest[detailsRequest](c)
	if err != nil {
		return err
	}

	// echo routes on the raw path when the name holds an escaped "/", and the
	// param is then still escaped. Otherwise it is already decoded.
	name := req.Name
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "invalid product name")
		}
		name = unescaped
	}

	detail, err := h.assembler.Assemble(ctx, name)
	if err != nil {
		return err
	}

	return routes.SuccessResponse(c, detail)
}
