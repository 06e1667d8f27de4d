// main.go
package main

import (
	"log"

	"court-booking/cmd"
	"court-booking/internal/data/repository"
	"court-booking/internal/scheduler"
	"court-booking/internal/wire"
	"court-booking/pkg/database"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Schedule the recurring expiry sweep
	sched, err := scheduler.New(logger)
	if err != nil {
		logger.Fatal("Failed to init scheduler", zap.Error(err))
	}
	if err := sched.AddIntervalJob("expire_bookings", config.Booking.SweepIntervalMinutes, app.SweepExpired); err != nil {
		logger.Fatal("Failed to register expiry sweep job", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
