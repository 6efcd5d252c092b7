package http

import (
	"log/slog"
	"net/http"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/ports"
	"logistics/internal/telemetry"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

type RouterConfig struct {
	Server   *Server
	Verifier ports.TokenVerifier
	Metrics  *telemetry.OperationMetrics
	Logger   *slog.Logger

	// Document is served at /api/openapi.json and, once registered with swag, under /swagger.
	Document *openapi3.T

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter builds the echo instance with every route of the API.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	if cfg.Document != nil {
		e.GET("/api/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, cfg.Document)
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	s := cfg.Server
	v1 := e.Group(BasePath, RecordOperations(cfg.Metrics))

	v1.POST("/customers/signup", s.RegisterCustomer)
	v1.POST("/customers/login", s.Login(identity.RoleCustomer))
	v1.POST("/riders/signup", s.RegisterRider)
	v1.POST("/riders/login", s.Login(identity.RoleRider))
	v1.POST("/logistics/signup", s.RegisterThirdParty)
	v1.POST("/logistics/login", s.Login(identity.RoleThirdParty))

	protected := v1.Group("", Authenticate(cfg.Verifier))

	protected.POST("/orders", s.CreateOrder)
	protected.GET("/orders", s.FetchOrders)
	protected.GET("/orders/count", s.CountOrders)
	protected.POST("/orders/:orderId/cancel", s.CancelOrder)
	protected.PUT("/orders/:orderId/accept", s.AcceptOrder)
	protected.PUT("/orders/:orderId/status", s.UpdateOrderStatus)

	protected.GET("/customers/:customerId/orders", s.FetchCustomerOrders)

	protected.GET("/riders/:riderId/orders", s.FetchRiderOrders)
	protected.PATCH("/riders/:riderId/availability", s.SetRiderAvailability)

	protected.GET("/logistics/orders", s.FetchCompanyOrders)
	protected.GET("/logistics/orders/:orderId", s.FetchCompanyOrder)

	return e
}
