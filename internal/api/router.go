package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ideaforge/portal-shell/docs"
	"github.com/ideaforge/portal-shell/internal/api/handler"
	"github.com/ideaforge/portal-shell/internal/api/middleware"
	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Sessions     ports.SessionService
	Shell        ports.ShellService
	Preferences  ports.PreferenceService
	Dispatcher   handler.SignalDispatcher
	Subscriber   handler.SignalSubscriber
	HealthChecks map[string]handler.Check
	Cookie       handler.CookieConfig
	Log          zerolog.Logger
	// Registry receives the HTTP request metrics; nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(deps.Log))
	e.Use(prometheusMiddleware(deps.Registry))
	e.Use(middleware.Session(deps.Sessions, deps.Cookie.Name))

	// --- Handlers ---
	shellHandler := handler.NewShellHandler(deps.Shell)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Cookie)
	signalHandler := handler.NewSignalHandler(deps.Dispatcher, deps.Subscriber, deps.Log)
	preferenceHandler := handler.NewPreferenceHandler(deps.Preferences)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	// --- Health probes, metrics and docs (no session required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", prometheusHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session ---
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/register", sessionHandler.Register)
	e.POST("/session", sessionHandler.Adopt)
	e.DELETE("/session", sessionHandler.Logout)
	e.GET("/logout", sessionHandler.LogoutPage)

	// --- JSON API ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/shell", shellHandler.Shell)
	apiGroup.GET("/session", shellHandler.Session)
	apiGroup.GET("/routes", shellHandler.Routes)

	requireAPI := middleware.RequireSessionAPI()
	apiGroup.GET("/preferences/theme", preferenceHandler.GetTheme, requireAPI)
	apiGroup.PUT("/preferences/theme", preferenceHandler.PutTheme, requireAPI)
	apiGroup.POST("/preferences/theme/toggle", preferenceHandler.ToggleTheme, requireAPI)
	apiGroup.POST("/signals/mentor-connection", signalHandler.Publish, requireAPI)
	apiGroup.GET("/signals/mentor-connection/stream", signalHandler.Stream, requireAPI)

	// --- Client routes ---
	requireSession := middleware.RequireSession(domain.PathLogin)
	for _, route := range domain.Routes {
		if route.Gated {
			e.GET(route.Path, shellHandler.Page, requireSession)
			continue
		}
		e.GET(route.Path, shellHandler.Page)
	}
	// Unknown paths land on home, after the session check.
	e.GET("/*", shellHandler.Page, requireSession)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "portal_shell_http"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func prometheusHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
