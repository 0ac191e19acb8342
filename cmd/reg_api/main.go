// Package main Reg Hunter API
// @title Reg Hunter API
// @version 1.0
// @description Summarizes regulatory documents and scores them by topic, severity and probability
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

//go:generate swag init -g main.go -d ./,../../internal -o ../../docs --outputTypes go

import (
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/reg-hunter/docs"
	"github.com/DjordjeVuckovic/reg-hunter/internal/app"
	"github.com/DjordjeVuckovic/reg-hunter/internal/router"
	"github.com/DjordjeVuckovic/reg-hunter/internal/server"
	"github.com/labstack/echo/v4"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Reg Hunter API stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig("cmd/reg_api/.env")
	if err != nil {
		return err
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	s := server.New(sCfg)

	a, err := app.New(s.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	s.SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health", a.Stores.Health).
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Reg Hunter API is running")
	})

	documentRouter := router.NewDocumentRouter(s.Echo, a.Pipeline, a.Stores.Documents, a.Stores.Blobs, a.Aggregator)
	documentRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	return s.Start()
}
