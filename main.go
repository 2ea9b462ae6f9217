package main

import (
	"log"
	"movie_reservation/config"
	"movie_reservation/database"
	"movie_reservation/handler"
	"movie_reservation/helper"
	"movie_reservation/router"
	"movie_reservation/service"
	"movie_reservation/utils"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg := config.Load()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.SeedAccounts(db, cfg); err != nil {
		log.Fatal(err)
	}
	rdb := database.ConnectRedis(cfg)

	cld, err := helper.InitCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Printf("cloudinary disabled: %v", err)
	}

	// One clock for cancellation and the sweeper, so both share the same cutoff.
	clock := clockwork.NewRealClock()
	locks := service.NewShowtimeLocks()
	seats := service.NewSeatCache(rdb)

	h := &handler.Handler{
		DB:       db,
		Settings: cfg,
		Clock:    clock,
		Tokens:   helper.NewTokenIssuer(cfg.TokenSecret, cfg.AdminTokenSecret, cfg.SuperAdminTokenSecret, cfg.AccessTokenTTL),
		Bookings: service.NewBookingService(db, clock, locks, seats),
		Catalog:  service.NewCatalogService(db, clock, locks, seats),
		Roles:    service.NewRoleService(db),
		Seats:    seats,
		Codes:    service.NewResetCodes(rdb),
		Mailer: &helper.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		},
		Cloud: cld,
	}

	sweeper := service.NewShowtimeSweeper(db, clock, seats, cfg.SweepSchedule, 0)
	if err := sweeper.Start(); err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.FiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	router.SetupRoutes(app, h)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		if err := sweeper.Stop(); err != nil {
			log.Printf("sweeper stop: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
