package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ZakiuC/websocket-chat/api/handlers"
	"github.com/ZakiuC/websocket-chat/internal/relay"
	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := getEnv("PORT", "8080")
	opts := relay.Options{
		IdleTimeout:    getEnvDuration("IDLE_TIMEOUT", 0),
		WriteTimeout:   getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		MaxMessageSize: getEnvInt64("MAX_MESSAGE_SIZE", 8192),
	}

	// Initialize the relay core
	hub := relay.NewHub(opts)
	relayHandler := relay.NewHandler(hub)

	// Initialize handlers
	wsHandler := handlers.NewWebSocketHandler(relayHandler)
	statusHandler := handlers.NewStatusHandler(hub)

	// Initialize Gin router
	r := gin.Default()

	wsHandler.RegisterRoutes(r)
	statusHandler.RegisterRoutes(r)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down server...")
		hub.Close()
		os.Exit(0)
	}()

	// Start server
	log.Printf("WebSocket server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvInt64 returns an integer environment variable or a default value.
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
