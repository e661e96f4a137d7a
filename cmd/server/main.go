/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Chai Wallet server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Pick a plan cache (Redis if -redis given, in-process otherwise)
  4. Create API handler, rate limiter, and router
  5. Start the recurring-transaction scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: wallet.db)
           Use ":memory:" for an in-memory database
  -redis   Redis address for the plan cache (default: none, in-process)
  -rate    Requests per minute per client IP (default: 120)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler and rate limiter
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/wallet.db"

  # Run with a shared Redis plan cache
  ./server -redis="localhost:6379"

ENVIRONMENT:
  No environment variables currently. All config via flags.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raimal54/chai-wallet/api"
	"github.com/Raimal54/chai-wallet/cache"
	"github.com/Raimal54/chai-wallet/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "wallet.db", "SQLite database path")
	redisAddr := flag.String("redis", "", "Redis address for the plan cache (empty: in-process cache)")
	ratePerMin := flag.Int("rate", 120, "Requests per minute per client IP")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Plan cache
	var planCache cache.Cache
	if *redisAddr != "" {
		redisCache := cache.NewRedis(*redisAddr)
		defer redisCache.Close()
		planCache = redisCache
		log.Printf("Plan cache: redis at %s", *redisAddr)
	} else {
		planCache = cache.NewMemory()
		log.Println("Plan cache: in-process")
	}

	// Initialize handler and router
	handler := api.NewHandler(store, nil, planCache)
	limiter := api.NewRateLimiter(*ratePerMin, time.Minute)
	defer limiter.Stop()
	router := api.NewRouter(handler, limiter)

	// Recurring-transaction scheduler
	scheduler := api.NewRecurringScheduler(store)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
