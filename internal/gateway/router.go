package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gearshare/gearshare-backend/internal/api"
	"github.com/gearshare/gearshare-backend/internal/identity"
)

// NewRouter mirrors the core server route table. Handlers either validate
// then forward, or forward untouched.
func NewRouter(h *Handler, isProduction bool, logger zerolog.Logger) *gin.Engine {
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	identityMiddleware := identity.Required()

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.Passthrough)
		users.GET("/:id", h.Passthrough)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.Passthrough)
	}

	items := r.Group("/items", identityMiddleware)
	{
		items.POST("", h.CreateItem)
		items.GET("", h.Passthrough)
		items.GET("/search", h.Passthrough)
		items.GET("/:id", h.Passthrough)
		items.PATCH("/:id", h.Passthrough)
		items.DELETE("/:id", h.Passthrough)
		items.POST("/:id/comment", h.CreateComment)
	}

	bookings := r.Group("/bookings", identityMiddleware)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/owner", h.ListBookings)
		bookings.GET("/:id", h.Passthrough)
		bookings.PATCH("/:id", h.ApproveBooking)
	}

	requests := r.Group("/requests", identityMiddleware)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.Passthrough)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:id", h.Passthrough)
	}

	return r
}
