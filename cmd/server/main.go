/*
main.go - HTTP service entry point

PURPOSE:
  Starts the reimbursement service: load settings, wire the handler and
  router, serve until interrupted, then shut down gracefully.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load and validate settings from .env / environment (fail fast)
  3. Create API handler and router
  4. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -workbook  Roster workbook path (overrides WORKBOOK_PATH)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, exit. Nothing to persist - runs hold no server-side state.

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
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

	"github.com/sirupsen/logrus"

	"github.com/phoenix/reimburse-engine/api"
	"github.com/phoenix/reimburse-engine/config"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	workbook := flag.String("workbook", "", "roster workbook path (overrides WORKBOOK_PATH)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	if *workbook != "" {
		settings.WorkbookPath = *workbook
	}

	handler := api.NewHandler(settings, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":     server.Addr,
			"workbook": settings.WorkbookPath,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Info("server stopped")
}
