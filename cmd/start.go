package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fleet-report/core/loader"
	"fleet-report/core/logger"
	"fleet-report/core/middleware/auth"
	"fleet-report/core/middleware/rayid"
	"fleet-report/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "fleet-report/docs/swagger"
)

// @title Fleet Report API
// @version 1.0
// @description API for reconciling vessel workbooks against a fleet tracking account.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the fleet report server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		d, err := loadDeps(withWarehouse)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := d.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             d.cfg.Server.BodyLimit(),
			ReadTimeout:           d.cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(d.store, d.cfg.Storage, d.db, d.cfg.Warehouse, d.sink, logg))
		mgr.Register(d.fleetFeature())

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: d.cfg.Server.ApiKey,
			Skip:   []string{"/swagger", "/health"},
		}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server",
				zap.String("port", d.cfg.Server.Port),
				zap.String("sink", d.cfg.Report.Sink),
				zap.Bool("enrich", d.cfg.Fleet.Enrich),
			)
			if err := app.Listen(":" + d.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
