package scene

import (
	"context"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/models"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/routes"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/utils"
	"github.com/labstack/echo/v4"
)

type Assembler interface {
	Assemble(ctx context.Context, sceneID int) (models.SceneDescriptor, error)
}

type Handler struct {
	assembler Assembler
}

func NewHandler(assembler Assembler) *Handler {
	return &Handler{assembler: assembler}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/scenes/:id/complete", h.Complete)
}

// Complete handles GET /scenes/:id/complete
func (h *Handler) Complete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "scene.Complete")
	defer span.End()

	req, err := utils.BindRequest[routes.IDParam](c)
	if err != nil {
		return err
	}

	descriptor, err := h.assembler.Assemble(ctx, req.ID)
	if err != nil {
		return err
	}

	return routes.SuccessResponse(c, descriptor)
}
