package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"little-lemon/cmd/config"
	migration "little-lemon/cmd/database/migrate"
	"little-lemon/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}

	app, cleanup, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
			log.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
