package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/whatsdish-gateway/internal/config"
	"github.com/whatsdish-gateway/internal/infrastructure/ipaddr"
	"github.com/whatsdish-gateway/internal/infrastructure/supabase"
	"github.com/whatsdish-gateway/internal/infrastructure/whatsdish"
	transporthttp "github.com/whatsdish-gateway/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	// Serving without a valid upstream target is meaningless, so a missing
	// variable ends the process before a listener is bound.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	deps := &transporthttp.Deps{
		Upstream: whatsdish.New(cfg.WhatsDishBaseURL),
		Store:    supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey),
		IPs:      ipaddr.NewResolver(ipaddr.NewHTTPLookup(ipaddr.DefaultLookupURL)),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Gateway starting on :%s (env=%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
