// Command nexusd serves the checker's map, rules and session answers over
// HTTP for embedding hosts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/elektrokombinacija/nexus-checker/internal/bootstrap"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/config"
	"github.com/elektrokombinacija/nexus-checker/internal/pkg/logging"
	"github.com/elektrokombinacija/nexus-checker/internal/server"
)

var version = "dev"

func main() {
	fontPath := flag.String("font", "", "TrueType font for snapshot labels")
	origins := flag.String("cors", "*", "allowed CORS origins")
	flag.Parse()

	cfg, err := config.Load("nexusd")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer env.Close()

	deps := server.NewDependencies(env.Map, env.Store, cfg.Store.Namespace)
	deps.Levels = cfg.Viewport.Levels()
	deps.FontPath = *fontPath
	deps.Version = version
	if env.Events != nil {
		deps.Events = env.Events
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "Nexus Checker API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: *origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	server.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
