package httpapi

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skylineapp/skyline/internal/view"
	"github.com/skylineapp/skyline/internal/weather"
)

var validate = validator.New()

// userFacingMessage is the single opaque message every non-validation
// failure collapses to. Validation errors surface their own message, inline
// next to the input control.
const userFacingMessage = "forecast not found"

// RegisterRoutes wires the HTTP handlers into the Fiber app. The session
// and service are owned by the caller; handlers only translate between the
// wire and the pipeline.
func RegisterRoutes(app *fiber.App, service *weather.Service, session *weather.Session, tz *time.Location) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var req cityQuery
		req.City = c.Query("city")
		req.Unit = c.Query("unit")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.LookupCity(c.Context(), req.City)
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(view.Render(res, weather.Unit(req.Unit), tz))
	})

	v1.Get("/weather/coords", func(c *fiber.Ctx) error {
		req, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.LookupCoords(c.Context(), req.Lat, req.Lon)
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(view.Render(res, weather.Unit(req.Unit), tz))
	})

	v1.Get("/searches/recent", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"searches": session.RecentSearches(),
		})
	})
}

// lookupError maps pipeline failures onto HTTP responses. Everything except
// a validation rejection is the same opaque not-found to the user.
func lookupError(err error) error {
	if weather.KindOf(err) == weather.FailureValidation {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusNotFound, userFacingMessage)
}

// cityQuery holds query parameters for a city lookup.
type cityQuery struct {
	City string `validate:"required"`
	Unit string `validate:"omitempty,oneof=C F"`
}

// coordsQuery holds query parameters for a coordinate lookup.
type coordsQuery struct {
	Lat  float64 `validate:"gte=-90,lte=90"`
	Lon  float64 `validate:"gte=-180,lte=180"`
	Unit string  `validate:"omitempty,oneof=C F"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "invalid lon")
	}

	q.Lat = lat
	q.Lon = lon
	q.Unit = c.Query("unit")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
