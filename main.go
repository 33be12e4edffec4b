package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawcal/config"
	"pawcal/cron"
	"pawcal/database"
	calendarRepo "pawcal/database/repository/calendar"
	"pawcal/handlers"
	"pawcal/routes"
	"pawcal/services/calendar"
	"pawcal/utils"
)

func main() {
	// Load configuration before anything else touches it.
	config.LoadConfig()

	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	repo := calendarRepo.NewMongoCalendarRepo()
	if mongoRepo, ok := repo.(*calendarRepo.MongoCalendarRepo); ok {
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Fatal("Failed to create calendar indexes", zap.Error(err))
		}
	}

	calendarService := &calendar.DefaultCalendarService{
		Repo:  repo,
		Cache: utils.GetCacheClient(),
		Expander: calendar.Expander{
			HorizonDays: config.AppConfig.ExpansionHorizonDays,
		},
	}

	worker := cron.NewExpansionWorker(calendarService, repo)
	if err := worker.Start(); err != nil {
		logger.Fatal("Failed to start expansion worker", zap.Error(err))
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	calendarHandler := handlers.NewCalendarHandler(calendarService)
	routes.RegisterRoutes(router, calendarHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Info("Server stopped")
}
