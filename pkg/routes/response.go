package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every successful API response.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// SuccessResponse returns a 200 OK with data in the envelope
func SuccessResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// IDParam binds an integer :id path parameter. Any integer is accepted; ids
// with no row resolve to an empty result or NotFound downstream.
type IDParam struct {
	ID int `param:"id"`
}
