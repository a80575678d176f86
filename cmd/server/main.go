package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/metrics"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/router"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unreachable; cache and rate limiting disabled")
	}

	metrics.Register()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	bookingSvc := service.NewBookingService(bookings)

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens, hotels),
		Public:    handler.NewPublicHandler(hotels, rooms, reviews),
		Bookings:  handler.NewBookingHandler(bookingSvc, bookings, hotels),
		Hotel:     handler.NewHotelHandler(hotels),
		Rooms:     handler.NewRoomHandler(rooms, hotels),
		Reviews:   handler.NewReviewHandler(reviews, hotels),
		Favorites: handler.NewFavoriteHandler(favorites, hotels),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	router.Register(e, h, cfg, db, rdb)

	// Booking event consumer runs for the life of the process.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Error().Err(err).Msg("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
