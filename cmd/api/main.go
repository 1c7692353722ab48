package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"atvtours/internal/config"
	"atvtours/internal/database"
	"atvtours/internal/middleware"
	"atvtours/internal/modules/booking"
	"atvtours/internal/modules/catalog"
	"atvtours/internal/modules/checkout"
	"atvtours/internal/modules/payment"
	"atvtours/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}

	historyRepo := repository.NewFinalizedBookingRepository(db)
	if err := historyRepo.Migrate(); err != nil {
		log.Fatal(err)
	}

	cat := catalog.Seed()
	sessions := repository.NewSessionRegistry()

	var gateway checkout.GatewayClient
	switch cfg.GatewayMode {
	case config.GatewayHTTP:
		gateway = payment.NewHTTPClient(cfg.GatewayURL, log.Printf)
	default:
		gateway = payment.NewSimulatedGateway(cfg.GatewayLatency)
	}

	catalogHandler := catalog.NewHandler(catalog.NewService(cat))
	bookingHandler := booking.NewHandler(sessions, cat)
	checkoutService := checkout.NewService(gateway, historyRepo, cfg.GatewayTimeout, log.Printf)
	checkoutHandler := checkout.NewHandler(checkoutService, sessions)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		checkoutHandler.RegisterRoutes(v1)
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Reap sessions a user walked away from. Abandoning bumps the session
	// generation, so an in-flight payment resolution for a reaped session is
	// discarded when it lands.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.ReaperInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := sessions.ReapExpired(cfg.SessionTTL, time.Now()); n > 0 {
					log.Printf("session reaper: abandoned %d idle sessions", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
