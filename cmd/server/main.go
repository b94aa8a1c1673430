package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/config"
	"github.com/imhyunho99/bar-menu/pkg/database/postgres"
	"github.com/imhyunho99/bar-menu/pkg/logger"

	adminH "github.com/imhyunho99/bar-menu/internal/admin/handler"
	"github.com/imhyunho99/bar-menu/internal/auth"
	authRepoPkg "github.com/imhyunho99/bar-menu/internal/auth/repository"
	authUCPkg "github.com/imhyunho99/bar-menu/internal/auth/usecase"
	catRepoPkg "github.com/imhyunho99/bar-menu/internal/category/repository"
	catUCPkg "github.com/imhyunho99/bar-menu/internal/category/usecase"
	menuRepoPkg "github.com/imhyunho99/bar-menu/internal/menu/repository"
	menuUCPkg "github.com/imhyunho99/bar-menu/internal/menu/usecase"
	"github.com/imhyunho99/bar-menu/internal/restaurant"
	restRepoPkg "github.com/imhyunho99/bar-menu/internal/restaurant/repository"
	searchUCPkg "github.com/imhyunho99/bar-menu/internal/search/usecase"
	settingsRepoPkg "github.com/imhyunho99/bar-menu/internal/settings/repository"
	webH "github.com/imhyunho99/bar-menu/internal/web/handler"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis (sessions + flash messages)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	sessions := auth.NewSessionStore(redisClient, cfg.Session.TTL)

	// 5. Initialize Repositories
	restRepo := restRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	menuRepo := menuRepoPkg.NewPGRepository(db)
	staffRepo := authRepoPkg.NewPGRepository(db)
	settingsRepo := settingsRepoPkg.NewPGRepository(db)

	// 6. Initialize UseCases
	authUC := authUCPkg.NewAuthUseCase(staffRepo, restRepo, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	menuUC := menuUCPkg.NewMenuUseCase(menuRepo, catRepo, appLogger)
	searchUC := searchUCPkg.NewSearchUseCase(menuRepo, catRepo, appLogger)

	// 7. Initialize Handlers
	public := webH.NewHandler(restRepo, catUC, menuUC, searchUC, settingsRepo, sessions, appLogger)
	admin := adminH.NewHandler(authUC, sessions, catUC, menuUC, appLogger)

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(auth.SessionMiddleware(sessions, authUC, cfg.Session.CookieName, appLogger))

	r.Get("/", public.Index)

	r.Route("/{restaurantSlug}", func(r chi.Router) {
		r.Use(restaurant.Resolver(restRepo, appLogger))

		r.Get("/", public.MainPage)
		r.Get("/category/{categoryID}/", public.CategoryPage)
		r.Get("/category/{categoryID}", public.CategoryPage)
		r.Get("/search/", public.SearchRedirect)
		r.Get("/api/search/", public.SearchSuggest)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/login/", admin.LoginPage)
			r.Post("/login/", admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(admin.RequireStaff)
				r.Post("/logout/", admin.Logout)
				r.Get("/dashboard/", admin.Dashboard)
				r.Get("/category/add/", admin.CategoryForm)
				r.Post("/category/add/", admin.AddCategory)
				r.Post("/category/delete/{categoryID}/", admin.DeleteCategory)
				r.Get("/menu/add/", admin.MenuForm)
				r.Post("/menu/add/", admin.AddMenu)
				r.Get("/menu/edit/{menuID}/", admin.MenuForm)
				r.Post("/menu/edit/{menuID}/", admin.EditMenu)
				r.Post("/menu/delete/{menuID}/", admin.DeleteMenu)
			})
		})
	})

	// 9. Start HTTP Server
	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: r,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
