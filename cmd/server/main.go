package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/workviyo/taskboard-api/internal/auth"
	"github.com/workviyo/taskboard-api/internal/config"
	"github.com/workviyo/taskboard-api/internal/database"
	"github.com/workviyo/taskboard-api/internal/server"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to the store and prepare its schema
	openCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
	conn, err := database.Open(openCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sessionStore, err := server.NewSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	router := server.SetupRouter(server.Dependencies{
		Repos:    conn.Repositories(),
		Store:    conn,
		Tokens:   auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Sessions: sessionStore,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Handler:      c.Handler(router),
		Addr:         ":" + cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := conn.Close(ctx); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
	log.Println("Server exited")
}
