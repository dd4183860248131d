package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/config"
	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/geocode"
	"github.com/foodcart/backoffice/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Panicf("failed to load configuration, error: %v", err)
	}

	if err := database.ConnectAndMigrate(cfg.Database, "database/migrations"); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	client, err := geocode.NewClient(cfg.Geocoder)
	if err != nil {
		logrus.Panicf("failed to configure geocoder, error: %v", err)
	}
	cache := geocode.NewCache(client)

	svr := server.SetupRoutes(cfg, cache)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Printf("listening on %s", cfg.Port)
		if err := svr.Run(cfg.Port, cfg.CORSOrigins); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Panic("server stopped unexpectedly")
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeout); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly")
	}
	if err := database.Shutdown(); err != nil {
		logrus.WithError(err).Error("failed to close database connection")
	}
	logrus.Info("stopped")
}
