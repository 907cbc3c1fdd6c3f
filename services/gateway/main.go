// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/linuxfoundation/lfx-pcc/pkg/extensions"
	"github.com/linuxfoundation/lfx-pcc/pkg/logging"
	"github.com/linuxfoundation/lfx-pcc/services/flags"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/attachments"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/audit"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/clients"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/config"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/live"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/middleware"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/routes"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/store"
)

const serviceName = "pcc-gateway"

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// buildDownstreams selects the backend: real REST clients when service
// URLs are configured, the seeded demo store when none are.
func buildDownstreams(cfg config.Config, logger *slog.Logger) (routes.Deps, func(), error) {
	var deps routes.Deps

	if cfg.DemoMode() {
		storeCfg := store.InMemoryConfig()
		if cfg.DemoDataDir != "" {
			storeCfg = store.DefaultConfig(cfg.DemoDataDir)
		}
		st, err := store.Open(storeCfg)
		if err != nil {
			return deps, nil, fmt.Errorf("failed to open demo store: %w", err)
		}
		if err := st.Seed(); err != nil {
			st.Close()
			return deps, nil, fmt.Errorf("failed to seed demo store: %w", err)
		}
		logger.Info("running in demo mode with seeded fixtures",
			"persistent", cfg.DemoDataDir != "")

		deps.Projects = st
		deps.Meetings = st
		deps.Identity = st
		deps.Organizations = st
		return deps, func() { st.Close() }, nil
	}

	for name, url := range map[string]string{
		"project":      cfg.ProjectServiceURL,
		"meeting":      cfg.MeetingServiceURL,
		"identity":     cfg.IdentityURL,
		"organization": cfg.OrganizationURL,
	} {
		if url == "" {
			return deps, nil, fmt.Errorf("downstream %s service URL is not set; configure all four or none", name)
		}
	}

	mk := func(base string) clients.Config {
		return clients.Config{BaseURL: base, Token: cfg.M2MToken, Logger: logger}
	}
	projects, err := clients.NewProjectClient(mk(cfg.ProjectServiceURL))
	if err != nil {
		return deps, nil, err
	}
	meetings, err := clients.NewMeetingClient(mk(cfg.MeetingServiceURL))
	if err != nil {
		return deps, nil, err
	}
	identity, err := clients.NewIdentityClient(mk(cfg.IdentityURL))
	if err != nil {
		return deps, nil, err
	}
	orgs, err := clients.NewOrganizationClient(mk(cfg.OrganizationURL))
	if err != nil {
		return deps, nil, err
	}

	deps.Projects = projects
	deps.Meetings = meetings
	deps.Identity = identity
	deps.Organizations = orgs
	return deps, func() {}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Service: "gateway",
		JSON:    true,
	})
	defer appLogger.Close()
	logger := appLogger.Slog()
	slog.SetDefault(logger)

	var tracing bool
	if cfg.OTLPEndpoint != "" {
		cleanup, err := initTracer(cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to setup the OTLP tracer: %v", err)
		}
		defer cleanup(context.Background())
		tracing = true
	}

	deps, closeDownstreams, err := buildDownstreams(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build downstream services: %v", err)
	}
	defer closeDownstreams()

	options := extensions.DefaultOptions()
	var sink extensions.AuditLogger = &audit.SlogLogger{Log: logger}
	if cfg.InfluxURL != "" {
		influx := audit.NewInfluxLogger(audit.InfluxConfig{
			URL:    cfg.InfluxURL,
			Token:  cfg.InfluxToken,
			Org:    cfg.InfluxOrg,
			Bucket: cfg.InfluxBucket,
		}, logger)
		defer influx.Close()
		sink = influx
	}
	// Dashboard sessions refresh off the audit stream: the hub sees
	// every successful write alongside the durable sink.
	hub := live.NewHub()
	options.AuditLogger = extensions.MultiAuditLogger{sink, hub}
	deps.Options = options
	deps.Hub = hub

	if cfg.AttachmentBucket != "" {
		gcs, err := attachments.NewGCSStore(context.Background(), cfg.AttachmentBucket, cfg.GCSKeyFile)
		if err != nil {
			log.Fatalf("failed to open attachment bucket %q: %v", cfg.AttachmentBucket, err)
		}
		deps.Attachments = gcs
	} else {
		local, err := attachments.NewLocalStore(cfg.AttachmentDir)
		if err != nil {
			log.Fatalf("failed to open attachment directory %q: %v", cfg.AttachmentDir, err)
		}
		deps.Attachments = local
	}

	if cfg.FlagsFile != "" {
		provider, err := flags.Open(cfg.FlagsFile, logger)
		if err != nil {
			log.Fatalf("failed to load feature flags from %q: %v", cfg.FlagsFile, err)
		}
		defer provider.Close()
		deps.Flags = provider
	}

	registry := prometheus.NewRegistry()
	deps.Registry = registry
	deps.Metrics = middleware.NewRequestMetrics(registry)
	deps.RateLimit = middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	deps.Log = logger

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if tracing {
		router.Use(otelgin.Middleware(serviceName))
	}
	routes.Setup(router, deps)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", "addr", cfg.Addr, "demo_mode", cfg.DemoMode())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
