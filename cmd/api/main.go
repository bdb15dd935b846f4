package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/googlebooks"
	"bookshelf/internal/shelf"
	"bookshelf/internal/store"

	"github.com/joho/godotenv"
)

const maxRequestBytes = 1 << 20 // 1 MiB

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	dataDir := getEnv("DATA_DIR", "data")
	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",")
	apiKey := os.Getenv("GOOGLE_BOOKS_API_KEY")
	rateLimitRPS := getEnvFloat("RATE_LIMIT_RPS", 20)

	catalogStore, err := store.New(dataDir)
	if err != nil {
		log.Fatalf("cannot open data dir %s: %v", dataDir, err)
	}

	booksClient := googlebooks.NewClient(apiKey, "bookshelf/1.0")

	catalogService := catalog.NewService(catalogStore, booksClient)
	shelfService := shelf.NewService(catalogStore)

	// Fetch metadata for tracked ISBNs missing from the catalog before the
	// server starts accepting requests.
	log.Println("reconciling catalog against tracked ISBN list")
	if err := catalogService.Reconcile(context.Background()); err != nil {
		log.Fatalf("startup reconciliation failed: %v", err)
	}

	catalogHandler := catalog.NewHTTPHandler(catalogService)
	shelfHandler := shelf.NewHTTPHandler(shelfService)

	router := newRouter(catalogHandler, shelfHandler)

	rateLimit := httpx.NewRateLimitMiddleware(rateLimitRPS, int(rateLimitRPS)*2)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(corsOrigins),
		httpx.RequestSizeLimitMiddleware(maxRequestBytes),
		rateLimit.Middleware,
	)

	// No WriteTimeout: POST /books/reset holds its response open while it
	// refetches metadata for the whole tracked list.
	httpServer := &http.Server{
		Addr:        serverAddress,
		Handler:     handler,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v", key, v, def)
		return def
	}
	return f
}
