package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/realtime"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)
	utils.UseJSONFieldNames()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if cfg.SeedData {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		users := services.NewUserService(repository.NewUserRepo(db), tokens)
		if _, err := users.EnsureUser(ctx, cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin); err != nil {
			utils.ErrorLogger.Fatalf("Failed to create admin account: %v", err)
		}
	}

	hub := realtime.NewHub()
	if cfg.RedisAddr != "" {
		if client := realtime.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); client != nil {
			relay := realtime.NewRedisRelay(client, cfg.RedisChannel, hub)
			hub.SetRelay(relay)
			go relay.Run(ctx)
			defer client.Close()
		}
	}

	var mailer services.Mailer = services.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	reminders := services.NewReminderService(repository.NewReservationRepo(db), mailer)
	if err := reminders.Start(cfg.ReminderInterval, cfg.Location()); err != nil {
		utils.ErrorLogger.Errorf("Reminders disabled: %v", err)
	}
	defer func() {
		if err := reminders.Stop(); err != nil {
			utils.ErrorLogger.Warnf("stop reminders: %v", err)
		}
	}()

	r := router.SetupRouter(db, hub, tokens, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Location:       cfg.Location(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("graceful shutdown failed: %v", err)
	}
}
