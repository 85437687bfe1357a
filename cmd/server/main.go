/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the seller costing engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Build the ledger configuration
  3. Create API handler with dependencies
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port               HTTP server port (default: 8080)
  -costing            fifo | lifo | weighted_average (default: fifo)
  -cash               Opening cash, decimal string (default: 0)
  -enforce-cash-limit Fail buys/expenses that would drive cash negative
  -permissive-sell    Legacy mode: failed sells silently no-op
  -code-length        Issued catalog code length (default: 4)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Strict FIFO trader with 250.00 opening cash
  ./server -cash=250.00 -enforce-cash-limit

  # Weighted-average costing on a different port
  ./server -port=3000 -costing=weighted_average

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/epogrebnyak/seller"
	"github.com/epogrebnyak/seller/api"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	costing := flag.String("costing", "fifo", "costing method: fifo, lifo or weighted_average")
	cash := flag.String("cash", "0", "opening cash (decimal string)")
	enforceCash := flag.Bool("enforce-cash-limit", false, "fail operations that would drive cash negative")
	permissiveSell := flag.Bool("permissive-sell", false, "legacy mode: failed sells silently no-op")
	codeLength := flag.Int("code-length", 4, "issued catalog code length")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	openingCash, err := decimal.NewFromString(*cash)
	if err != nil {
		log.Fatal().Err(err).Str("cash", *cash).Msg("invalid -cash flag")
	}

	cfg := seller.Config{
		Costing:          seller.CostingMethod(*costing),
		OpeningCash:      openingCash,
		EnforceCashLimit: *enforceCash,
		PermissiveSell:   *permissiveSell,
	}

	// Initialize handler
	handler, err := api.NewHandler(cfg, *codeLength, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ledger")
	}

	// Create router
	router := api.NewRouter(handler)

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
		log.Info().
			Int("port", *port).
			Str("costing", string(cfg.Costing)).
			Str("opening_cash", openingCash.String()).
			Bool("enforce_cash_limit", cfg.EnforceCashLimit).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
