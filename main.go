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

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eco2-team/backend/domains/env-report/internal/auth"
	"github.com/eco2-team/backend/domains/env-report/internal/config"
	"github.com/eco2-team/backend/domains/env-report/internal/constants"
	"github.com/eco2-team/backend/domains/env-report/internal/envsource"
	"github.com/eco2-team/backend/domains/env-report/internal/filter"
	"github.com/eco2-team/backend/domains/env-report/internal/logging"
	"github.com/eco2-team/backend/domains/env-report/internal/mq"
	"github.com/eco2-team/backend/domains/env-report/internal/props"
	"github.com/eco2-team/backend/domains/env-report/internal/server"
	"github.com/eco2-team/backend/domains/env-report/internal/store"
	"github.com/eco2-team/backend/domains/env-report/internal/tracing"
)

func main() {
	cfg := config.Load()
	logging.Init(nil)
	logger := logging.Default()

	ctx, cancel := context.WithTimeout(context.Background(), constants.InitTimeout)
	defer cancel()

	tp, err := tracing.Init(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	registry := envsource.NewRegistry(cfg.ActiveEnvironments, cfg.Packages)

	if cfg.YAMLPath != "" {
		src, err := envsource.NewYAMLSource("application", cfg.YAMLPath)
		if err != nil {
			log.Fatalf("Failed to load YAML source: %v", err)
		}
		registry.Add(src)
	}

	if cfg.DotenvPath != "" {
		src, err := envsource.NewDotenvSource("dotenv", cfg.DotenvPath)
		if err != nil {
			log.Fatalf("Failed to load dotenv source: %v", err)
		}
		registry.Add(src)
	}

	registry.Add(envsource.NewEnvironmentSource())

	var consumer *mq.ConfigConsumer
	if cfg.RedisURL != "" {
		poolOpts := &store.PoolOptions{
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
			PoolTimeout:  time.Duration(cfg.RedisPoolTimeoutMs) * time.Millisecond,
			ReadTimeout:  time.Duration(cfg.RedisReadTimeoutMs) * time.Millisecond,
			WriteTimeout: time.Duration(cfg.RedisWriteTimeoutMs) * time.Millisecond,
		}

		redisStore, err := store.New(ctx, cfg.RedisURL, poolOpts)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()

		remote, err := envsource.NewRemoteSource(ctx, "redis", redisStore, cfg.RedisHashKey)
		if err != nil {
			log.Fatalf("Failed to load remote source: %v", err)
		}
		registry.Add(remote)

		if cfg.AMQPURL != "" {
			consumer = mq.NewConfigConsumer(cfg.AMQPURL, remote, logger)
			consumer.Start()
			defer consumer.Stop()
		}
	}

	// Settings held by the property sources themselves override the
	// static environment variables.
	cfg.Refine(props.NewResolver(registry))

	configurer, err := filter.NewModeConfigurer(cfg.FilterMode, cfg.FilterPatterns)
	if err != nil {
		log.Fatalf("Invalid masking configuration: %v", err)
	}

	var verifier server.TokenVerifier
	if cfg.AuthRequired {
		v, err := auth.NewVerifier(
			cfg.JWTSecretKey,
			cfg.JWTAlgorithm,
			cfg.JWTIssuer,
			cfg.JWTAudience,
			time.Duration(cfg.JWTClockSkewSec)*time.Second,
		)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}
		verifier = v
	}

	srv, err := server.New(registry, server.Options{
		Enabled:      cfg.EndpointEnabled,
		AuthRequired: cfg.AuthRequired,
		Configurer:   configurer,
		Verifier:     verifier,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle(constants.PathMetrics, promhttp.Handler())
		mux.HandleFunc(constants.PathHealth, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(constants.HealthOK))
		})
		mux.HandleFunc(constants.PathReady, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(constants.HealthOK))
		})
		metricsAddr := fmt.Sprintf(":%d", cfg.MetricsPort)
		log.Printf("📊 Starting metrics server on %s", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	go func() {
		log.Printf("🚀 Starting env-report HTTP server on :%d (endpoint enabled=%v)", cfg.HTTPPort, cfg.EndpointEnabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.GracefulShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Printf("Tracer shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
