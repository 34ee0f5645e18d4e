package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	bootstrapv1 "ringquorum/internal/api/bootstrap/v1"
	"ringquorum/internal/bootstrapcoord"
	"ringquorum/internal/config"
	"ringquorum/internal/identifier"
	"ringquorum/internal/logger"
	zapfactory "ringquorum/internal/logger/zap"
	"ringquorum/internal/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

var defaultConfigPath = "config/ring/config.json"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadRingConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", *configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var lgr logger.Logger
	if cfg.Logger.Active {
		zapLog, err := zapfactory.New(cfg.Logger)
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() { _ = zapLog.Sync() }()
		lgr = zapfactory.NewZapAdapter(zapLog)
	} else {
		lgr = logger.NopLogger{}
	}
	cfg.LogConfig(lgr)

	space, err := identifier.NewSpace(cfg.NumBits)
	if err != nil {
		lgr.Error("failed to initialize identifier space", logger.F("err", err))
		os.Exit(1)
	}

	lis, advertised, err := config.Listen(cfg.Mode, cfg.SuperNode.Bind, cfg.SuperNode.IP, cfg.SuperNode.Port)
	if err != nil {
		lgr.Error("failed to initialize listener", logger.F("err", err))
		os.Exit(1)
	}
	defer func() { _ = lis.Close() }()
	lgr = lgr.Named("bootstrapnode")
	lgr.Info("bootstrap coordinator listening", logger.F("addr", advertised))

	shutdown := telemetry.InitTracer(cfg.Telemetry, "ringquorum-bootstrapnode", advertised)
	defer func() { _ = shutdown(context.Background()) }()

	coord := bootstrapcoord.New(space, lgr.Named("coordinator"))
	svc := bootstrapcoord.NewService(coord)

	var serverOpts []grpc.ServerOption
	if cfg.Telemetry.Tracing.Enabled {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	grpcServer := grpc.NewServer(serverOpts...)
	bootstrapv1.RegisterBootstrapServer(grpcServer, svc)

	serveErr := make(chan error, 1)
	go func() { serveErr <- grpcServer.Serve(lis) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		lgr.Info("shutdown signal received, stopping gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
			lgr.Info("server stopped gracefully")
		case <-shutdownCtx.Done():
			lgr.Warn("graceful stop timed out, forcing shutdown")
			grpcServer.Stop()
		}
	case err := <-serveErr:
		lgr.Error("gRPC server terminated unexpectedly", logger.F("err", err))
		os.Exit(1)
	}
}
