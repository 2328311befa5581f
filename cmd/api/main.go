package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bookstack/bookstack-api/internal/config"
	"github.com/bookstack/bookstack-api/internal/handler"
	"github.com/bookstack/bookstack-api/internal/middleware"
	"github.com/bookstack/bookstack-api/internal/repository"
	"github.com/bookstack/bookstack-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessExpiry, cfg.RefreshExpiry)
	userService := service.NewUserService(userRepo, bookRepo)
	bookService := service.NewBookService(bookRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/refresh", authHandler.HandleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecret, userRepo))

			r.Get("/users", userHandler.HandleList)
			r.Get("/users/{user_id}", userHandler.HandleGet)
			r.Put("/users/{user_id}", userHandler.HandleUpdate)
			r.Delete("/users/{user_id}", userHandler.HandleDelete)

			r.Post("/users/{user_id}/books", bookHandler.HandleCreateForUser)
			r.Get("/users/{user_id}/books", bookHandler.HandleListForUser)

			r.Get("/books", bookHandler.HandleList)
			r.Get("/books/{book_id}", bookHandler.HandleGet)
			r.Put("/books/{book_id}", bookHandler.HandleUpdate)
			r.Delete("/books/{book_id}", bookHandler.HandleDelete)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
