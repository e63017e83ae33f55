package api

import (
	"database/sql"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/johnstonks-git/klimata/internal/api/handler"
	"github.com/johnstonks-git/klimata/internal/api/middleware"
	"github.com/johnstonks-git/klimata/internal/api/render"
	"github.com/johnstonks-git/klimata/internal/core/service"
	mongodb "github.com/johnstonks-git/klimata/internal/infrastructure/db/mongo"
	"github.com/johnstonks-git/klimata/internal/infrastructure/db/postgres"
	redisdb "github.com/johnstonks-git/klimata/internal/infrastructure/db/redis"
	"github.com/johnstonks-git/klimata/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; login throttling is then disabled.
func NewRouter(db *sql.DB, mdb *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	e.Renderer = renderer

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("klimata"))

	// --- Dependencies ---
	credentials := postgres.NewCredentialRepository(db)
	authService := service.NewAuthService(credentials, cfg.Auth.MinPasswordLen, log)

	var throttle service.LoginThrottle
	if rdb != nil {
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Auth.LoginAttemptLimit, cfg.Auth.LoginAttemptWindow)
	}
	machine := service.NewSessionMachine(authService, throttle, log)

	dataset := mongodb.NewBarangayRepository(mdb)
	viewRouter := service.NewViewRouter(dataset)

	authHandler := handler.NewAuthHandler(machine)
	dashboardHandler := handler.NewDashboardHandler(machine, viewRouter)

	// --- Routes ---
	e.GET("/", dashboardHandler.Home)

	anonymous := e.Group("", middleware.RequireAnonymous(machine))
	anonymous.GET("/login", authHandler.ShowLogin)
	anonymous.POST("/login", authHandler.Login)
	anonymous.GET("/signup", authHandler.ShowSignUp)
	anonymous.POST("/signup", authHandler.SignUp)

	authenticated := e.Group("", middleware.RequireAuthenticated(machine))
	authenticated.GET("/dashboard", dashboardHandler.Show)
	authenticated.POST("/dashboard/view", dashboardHandler.SelectView)
	authenticated.POST("/dashboard/layer", dashboardHandler.SelectLayer)
	authenticated.POST("/dashboard/barangay", dashboardHandler.SelectBarangay)
	authenticated.POST("/account/password", authHandler.ChangePassword)
	authenticated.POST("/logout", authHandler.LogOut)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
