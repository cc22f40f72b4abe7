package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gearshare/gearshare-backend/internal/api"
	"github.com/gearshare/gearshare-backend/internal/booking"
	bookingHttp "github.com/gearshare/gearshare-backend/internal/booking/http"
	"github.com/gearshare/gearshare-backend/internal/item"
	itemHttp "github.com/gearshare/gearshare-backend/internal/item/http"
	"github.com/gearshare/gearshare-backend/internal/pkg/clock"
	"github.com/gearshare/gearshare-backend/internal/request"
	requestHttp "github.com/gearshare/gearshare-backend/internal/request/http"
	"github.com/gearshare/gearshare-backend/internal/user"
	userHttp "github.com/gearshare/gearshare-backend/internal/user/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger
	Clock        clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	if cfg.Clock == nil {
		cfg.Clock = clock.System()
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking repository is created first: the item module reads booking
	// data through the lookup port it backs.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService,
		booking.NewItemBookingLookup(bookingRepo), cfg.Clock)

	// Booking module
	bookingService := booking.NewService(bookingRepo, userService, itemService, cfg.Clock)

	// Item request module
	requestRepo := request.NewPgxRepository(cfg.DBPool)
	requestService := request.NewService(requestRepo, userService, itemService, cfg.Clock)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserHandler:    userHttp.NewHandler(userService),
		ItemHandler:    itemHttp.NewHandler(itemService),
		BookingHandler: bookingHttp.NewHandler(bookingService),
		RequestHandler: requestHttp.NewHandler(requestService),
	})

	return &Container{Router: router}
}
