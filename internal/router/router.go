// Package router registers the HTTP routes and attaches the middleware
// chain for each route group.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/metrics"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Public    *handler.PublicHandler
	Bookings  *handler.BookingHandler
	Hotel     *handler.HotelHandler
	Rooms     *handler.RoomHandler
	Reviews   *handler.ReviewHandler
	Favorites *handler.FavoriteHandler
}

// Register wires every route group onto the Echo instance.  Public
// browse routes sit behind the Redis cache and rate limiter; guest and
// owner groups require a JWT plus the matching role.
func Register(e *echo.Echo, h Handlers, cfg config.Config, db *sql.DB, rdb *redis.Client) {
	e.Use(countRequests)

	// Ops.
	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public browse, cached and rate limited.
	pub := e.Group("/v1")
	pub.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	pub.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	pub.GET("/hotels", h.Public.ListHotels)
	pub.GET("/hotels/:id", h.Public.GetHotel)
	pub.GET("/hotels/:id/reviews", h.Public.ListReviews)

	// Auth.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	me := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	me.GET("/me", h.Auth.Me)

	// Guest endpoints.
	guest := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(model.RoleGuest))
	guest.POST("/bookings", h.Bookings.Create)
	guest.GET("/my-bookings", h.Bookings.MyBookings)
	guest.POST("/bookings/:id/reschedule", h.Bookings.Reschedule)
	guest.DELETE("/bookings/:id", h.Bookings.Cancel)
	guest.POST("/reviews", h.Reviews.Upsert)
	guest.GET("/favorites", h.Favorites.List)
	guest.POST("/favorites", h.Favorites.Create)
	guest.DELETE("/favorites/:id", h.Favorites.Delete)

	// Hotel owner endpoints.
	owner := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(model.RoleHotel))
	owner.GET("/my-hotel", h.Hotel.MyHotel)
	owner.PUT("/my-hotel", h.Hotel.UpdateMyHotel)
	owner.GET("/my-hotel/bookings", h.Bookings.HotelBookings)
	owner.POST("/rooms", h.Rooms.Create)
	owner.GET("/rooms", h.Rooms.List)
	owner.PUT("/rooms/:id", h.Rooms.Update)
	owner.PATCH("/rooms/:id", h.Rooms.Update)
	owner.DELETE("/rooms/:id", h.Rooms.Delete)
	owner.PATCH("/bookings/:id", h.Bookings.UpdateStatus)
}

func countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.IncHTTP(c.Request().Method, c.Path())
		return next(c)
	}
}
