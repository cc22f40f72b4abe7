package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	bookingHttp "github.com/gearshare/gearshare-backend/internal/booking/http"
	"github.com/gearshare/gearshare-backend/internal/identity"
	itemHttp "github.com/gearshare/gearshare-backend/internal/item/http"
	"github.com/gearshare/gearshare-backend/internal/metrics"
	requestHttp "github.com/gearshare/gearshare-backend/internal/request/http"
	userHttp "github.com/gearshare/gearshare-backend/internal/user/http"
)

// Config holds everything NewRouter needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger

	UserHandler    *userHttp.Handler
	ItemHandler    *itemHttp.Handler
	BookingHandler *bookingHttp.Handler
	RequestHandler *requestHttp.Handler
}

// NewRouter initializes the HTTP router engine: middleware (request ids,
// logging, metrics, CORS) and the routes of every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Logger))

	metrics.Register()
	r.Use(metrics.Handler())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsCfg := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsCfg.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	identityMiddleware := identity.Required()

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, cfg.UserHandler)
		itemHttp.RegisterRoutes(root, cfg.ItemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, cfg.BookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, cfg.RequestHandler, identityMiddleware)
	}

	return r
}
