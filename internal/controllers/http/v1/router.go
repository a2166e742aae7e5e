package http

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"stargazer-api/internal/repositories"
	"stargazer-api/internal/services/stars"
	"stargazer-api/internal/services/weather"
	"stargazer-api/pkg/logger"
)

type routes struct {
	weather  *weather.Service
	stars    *stars.Service
	geocoder repositories.Geocoder
	timeout  time.Duration
	l        *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.Service,
	starService *stars.Service,
	geocoder repositories.Geocoder,
	requestTimeout time.Duration,
	l *logger.Logger,
) {
	r := &routes{
		weather:  weatherService,
		stars:    starService,
		geocoder: geocoder,
		timeout:  requestTimeout,
		l:        l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/weather", r.handleWeatherForecast)
	api.Get("/stars", r.handleStarForecast)
	api.Get("/coordinates", r.handleCoordinates)
}
