package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stargazer-api/config"
	v1 "stargazer-api/internal/controllers/http/v1"
	"stargazer-api/internal/repositories"
	"stargazer-api/internal/services/stars"
	"stargazer-api/internal/services/weather"
	"stargazer-api/internal/store"
	"stargazer-api/pkg/httpserver"
	"stargazer-api/pkg/logger"
	"stargazer-api/pkg/observe"
)

// @title Stargazer API
// @version 1.0.0
// @description Star visibility forecasts built on top of cached daily weather data.
// @description Weather is fetched once per coordinate and day, persisted, and scored for stargazing quality.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Daily weather forecast operations
// @tag.name Stars
// @tag.description Star visibility forecast operations
// @tag.name Coordinates
// @tag.description Address resolution operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	_ = godotenv.Load()

	cnf := config.NewConfig()

	sentryHook := observe.NewSentryHook(cnf.AppEnv, cnf.AppName, 0, cnf.IsDevelopment(), cnf.SentryDSN)

	l := logger.NewZapLogger(cnf.AppName, cnf.AppEnv, os.Stdout, sentryHook)
	sentryHook.SetLogger(l)

	forecastStore, err := store.NewPostgresStore(cnf.DatabaseURL, l)
	if err != nil {
		l.Fatal("cannot connect to the forecast store", map[string]any{"err": err})
	}
	if err := forecastStore.Migrate(); err != nil {
		l.Fatal("cannot migrate the forecast store", map[string]any{"err": err})
	}

	provider, err := repositories.NewDarkSkyRepository(
		cnf.DarkSkyBaseURL,
		cnf.DarkSkyAPIKey,
		l,
		&http.Client{Timeout: cnf.RequestTimeout()},
	)
	if err != nil {
		l.Fatal("cannot initialize the weather provider", map[string]any{"err": err})
	}

	geocoder := repositories.NewGoogleGeocoder(cnf.GoogleAPIKey, l)

	weatherService := weather.NewWeatherService(forecastStore, provider, l)
	starService := stars.NewStarService(forecastStore, weatherService, geocoder, l)

	app := httpserver.InitFiberServer(cnf.AppName)

	v1.NewRouter(
		app,
		weatherService,
		starService,
		geocoder,
		cnf.RequestTimeout(),
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = forecastStore.Close()
		sentryHook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
