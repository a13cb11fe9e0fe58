package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"eventpages_backend/internals/configs"
	database "eventpages_backend/internals/databases"
	helper "eventpages_backend/internals/helpers"
	middlewares "eventpages_backend/internals/middlewares"
	routes "eventpages_backend/internals/route"
	"eventpages_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		runSeed(os.Args[2:])
		return
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.SplitList(configs.GetEnv("TRUSTED_PROXIES", "0.0.0.0/0")),
		ErrorHandler:            helper.FromFiberError,
		BodyLimit:               1 << 20,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + schema + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.AutoMigrate {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("[ERROR] migrate: %v", err)
		}
	}
	database.WarmUpQueries()

	routes.SetupRoutes(app, database.DB)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// runSeed handles `seed [file]`; the target organization comes from
// SEED_ORGANIZATION_ID.
func runSeed(args []string) {
	raw := strings.TrimSpace(configs.GetEnv("SEED_ORGANIZATION_ID"))
	orgID, err := uuid.Parse(raw)
	if err != nil || orgID == uuid.Nil {
		log.Fatalf("[ERROR] SEED_ORGANIZATION_ID must be a UUID, got %q", raw)
	}
	file := ""
	if len(args) > 0 {
		file = args[0]
	}

	database.ConnectDB()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}
	seeds.RunAllSeeds(database.DB, orgID, file)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
