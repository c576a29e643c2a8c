package api

import (
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/todoapp/todo-service/docs"
	"github.com/todoapp/todo-service/internal/api/handler"
	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/api/middleware"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/service"
	"github.com/todoapp/todo-service/internal/infrastructure/config"
)

// Deps are the collaborators the router wires into handlers and middleware.
type Deps struct {
	Logger    zerolog.Logger
	Auth      ports.AuthService
	Access    ports.AccessResolver
	Users     ports.UserService
	Todos     ports.TodoService
	Checks    map[string]handler.Checker
	RateLimit config.RateLimitConfig

	// TrustedProxies are the peers whose X-Forwarded-For header names the
	// client. With none, the socket address is used.
	TrustedProxies []*net.IPNet

	// Registry receives the HTTP and domain collectors and is served on
	// /metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.IPExtractor = clientIP(d.TrustedProxies)

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Logger))
	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:          "todo",
		Subsystem:          "http",
		Registerer:         reg,
		StatusCodeResolver: statusOf,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}
	e.Use(httpMetrics)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	todoHandler := handler.NewTodoHandler(d.Todos)

	authenticated := []echo.MiddlewareFunc{
		middleware.Auth(d.Access),
		middleware.Active(d.Access),
	}
	withRole := func(allow middleware.RolePredicate) []echo.MiddlewareFunc {
		chain := make([]echo.MiddlewareFunc, 0, len(authenticated)+1)
		chain = append(chain, authenticated...)
		return append(chain, middleware.RBAC(allow))
	}

	// --- Auth routes ---
	auth := e.Group("/auth", authRateLimiter(d.RateLimit))
	auth.POST("/token/", authHandler.Token)
	auth.POST("/token/refresh/", authHandler.Refresh)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/create/", userHandler.Create)
	users.POST("/change_password/", userHandler.ChangePassword)
	users.GET("/me/", userHandler.Me, authenticated...)
	users.GET("/", userHandler.List, withRole(service.RequireAdmin)...)

	// --- Todo routes ---
	todos := e.Group("/todos", withRole(service.RequireUserOrAdmin)...)
	todos.POST("/", todoHandler.Create)
	todos.GET("/", todoHandler.List)
	todos.GET("/:id/", todoHandler.Get)
	todos.PUT("/:id/", todoHandler.Update)
	todos.DELETE("/:id/", todoHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health/", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger writes one zerolog event per request. Errors are rendered
// by the error handler first so the logged status is the one sent.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		HandleError:  true,
		LogLatency:   true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogStatus:    true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// clientIP decides where c.RealIP comes from. Forwarding headers are only
// honoured when the direct peer is one of the trusted proxies.
func clientIP(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// authRateLimiter limits requests per client IP on the token endpoints. A
// non-positive rate disables it.
func authRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RPS <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RPS),
			Burst:     cfg.Burst,
			ExpiresIn: 3 * time.Minute,
		}),
	})
}
