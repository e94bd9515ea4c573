package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nmezel/stockledger/internal/branding"
	"github.com/nmezel/stockledger/internal/config"
	"github.com/nmezel/stockledger/internal/db"
	"github.com/nmezel/stockledger/internal/export"
	"github.com/nmezel/stockledger/internal/server"
)

// simple middleware chain
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(cfg.DatabasePath); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Println("migrations completed; exiting as requested")
		return
	}
	dbConn, err := db.ConnectAndMigrate(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	log.Printf("Starting server env=%s port=%s db=%s", cfg.Env, cfg.Port, cfg.DatabasePath)

	exporter := export.NewExporter(branding.Load(cfg.BrandingPath), cfg.ExportDir)
	appHandler := server.New(dbConn, cfg, exporter)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: withLogging(appHandler)}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
