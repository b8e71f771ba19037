package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/handlers"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/auth"
)

type Deps struct {
	DB             *gorm.DB
	JWTSecret      []byte
	AuthHandler    *handlers.AuthHandler
	MenuHandler    *handlers.MenuHandler
	OrderHandler   *handlers.OrderHandler
	PaymentHandler *handlers.PaymentHandler
	OfferHandler   *handlers.OfferHandler
	UpdatesHandler *handlers.UpdatesHandler
	UserHandler    *handlers.UserHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/token", d.AuthHandler.Token)

	v1.GET("/menu", d.MenuHandler.ListAvailable)
	v1.GET("/menu/:id", d.MenuHandler.Get)
	v1.GET("/offers", d.OfferHandler.ListActive)
	v1.GET("/updates/daily", d.UpdatesHandler.List)
	v1.GET("/updates/daily/:id", d.UpdatesHandler.Get)
	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	// Payment status lookups stay public so shared payment links work.
	v1.GET("/payments/:id/status", d.PaymentHandler.GetStatus)

	authed := v1.Group("", auth.RequireAuth(d.JWTSecret))

	authed.POST("/orders", d.OrderHandler.Create)
	authed.GET("/orders/me", d.OrderHandler.ListMine)
	authed.GET("/orders/:id", d.OrderHandler.Get)
	authed.POST("/payments/initiate", d.PaymentHandler.Initiate)

	authed.GET("/users/me", d.UserHandler.Me)
	authed.GET("/users/:id", d.UserHandler.Get)
	authed.PUT("/users/:id", d.UserHandler.Update)

	authed.GET("/employee/orders", d.OrderHandler.ListAll)
	authed.PUT("/employee/orders/:id/status", d.OrderHandler.UpdateStatus)
	authed.POST("/employee/payments/record_cash", d.PaymentHandler.RecordCash)
	authed.PUT("/employee/payments/:id/status", d.PaymentHandler.UpdateStatus)
	authed.GET("/employee/offers/all", d.OfferHandler.ListAll)

	authed.DELETE("/admin/orders/:id", d.OrderHandler.Delete)
	authed.GET("/admin/payments", d.PaymentHandler.ListAll)

	authed.GET("/admin/menu/all", d.MenuHandler.ListAll)
	authed.POST("/admin/menu", d.MenuHandler.Create)
	authed.PUT("/admin/menu/:id", d.MenuHandler.Update)
	authed.PUT("/admin/menu/:id/availability", d.MenuHandler.UpdateAvailability)
	authed.DELETE("/admin/menu/:id", d.MenuHandler.Delete)

	authed.POST("/admin/offers", d.OfferHandler.Create)
	authed.PUT("/admin/offers/:id", d.OfferHandler.Update)
	authed.DELETE("/admin/offers/:id", d.OfferHandler.Delete)

	authed.POST("/admin/updates/daily", d.UpdatesHandler.Create)
	authed.PUT("/admin/updates/daily/:id", d.UpdatesHandler.Update)
	authed.DELETE("/admin/updates/daily/:id", d.UpdatesHandler.Delete)
}
