package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wealth-projections/internal/api"
	"wealth-projections/internal/config"
	"wealth-projections/internal/contact"
	"wealth-projections/internal/metrics"
	"wealth-projections/internal/projection"
	"wealth-projections/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Contact.Endpoint == "" {
		log.Printf("CONTACT_ENDPOINT not set, contact form submissions will be refused")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := projection.New()
	board := session.NewBoard(engine, cfg.BaseYear(time.Now()), cfg.Sessions.TTL)
	go board.Run(ctx, cfg.Sessions.SweepInterval)

	metrics.Init(nil, board.Len)

	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Engine:  engine,
		Board:   board,
		Contact: contact.NewClient(cfg.Contact.Endpoint, cfg.Contact.Timeout),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Starting API server on %s (env=%s)", addr, cfg.Server.Env)
	if err := serve(ctx, &http.Server{Handler: router}, ln, 10*time.Second); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serve runs srv on ln until ctx is done, then drains in-flight requests for
// at most grace.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
