package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	fileserverv1 "ringquorum/internal/api/fileserver/v1"
	quorumv1 "ringquorum/internal/api/quorum/v1"
	"ringquorum/internal/config"
	"ringquorum/internal/fileserver"
	"ringquorum/internal/logger"
	zapfactory "ringquorum/internal/logger/zap"
	"ringquorum/internal/quorumcoord"
	"ringquorum/internal/rpcclient"
	"ringquorum/internal/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

var defaultConfigPath = "config/quorum/config.json"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: storageserver <server_index> [-config path]")
	}
	serverIndex, err := strconv.Atoi(os.Args[1])
	if err != nil {
		log.Fatalf("invalid server_index %q: %v", os.Args[1], err)
	}
	fs := flag.NewFlagSet("storageserver", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.LoadQuorumConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", *configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if serverIndex < 0 || serverIndex >= len(cfg.Servers) {
		log.Fatalf("server_index %d out of range [0,%d)", serverIndex, len(cfg.Servers))
	}
	entry := cfg.Servers[serverIndex]

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
	lgr = lgr.Named("storageserver").With(logger.F("index", serverIndex))

	shutdown := telemetry.InitTracer(cfg.Telemetry, "ringquorum-storageserver", strconv.Itoa(serverIndex))
	defer func() { _ = shutdown(context.Background()) }()

	servers := make([]string, len(cfg.Servers))
	var coordHost string
	for i, s := range cfg.Servers {
		servers[i] = fmt.Sprintf("%s:%d", s.Host, s.Port)
		if s.Coordinator {
			coordHost = s.Host
		}
	}
	if coordHost == "" {
		log.Fatal("no coordinator entry found in configuration")
	}
	coordAddr := fmt.Sprintf("%s:%d", coordHost, cfg.CoordinatorPort)

	var dialOpts []grpc.DialOption
	var serverOpts []grpc.ServerOption
	if cfg.Telemetry.Tracing.Enabled {
		dialOpts = append(dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}

	pool := rpcclient.New(5*time.Second, 2*time.Minute, dialOpts...)
	defer pool.Close()

	storagePath := filepath.Join(cfg.StoragePath, strconv.Itoa(serverIndex))
	store, err := fileserver.NewStore(storagePath, lgr.Named("store"))
	if err != nil {
		lgr.Error("failed to initialize storage", logger.F("err", err))
		os.Exit(1)
	}

	srv := fileserver.New(store, pool, coordAddr, lgr.Named("server"))
	fsSvc := fileserver.NewService(srv)

	fsLis, fsAddr, err := config.Listen(cfg.Mode, entry.Bind, entry.Host, entry.Port)
	if err != nil {
		lgr.Error("failed to initialize file-server listener", logger.F("err", err))
		os.Exit(1)
	}
	defer func() { _ = fsLis.Close() }()
	lgr.Info("file server listening", logger.F("addr", fsAddr))

	fsGRPC := grpc.NewServer(serverOpts...)
	fileserverv1.RegisterFileServerServer(fsGRPC, fsSvc)

	serveErr := make(chan error, 2)
	go func() { serveErr <- fsGRPC.Serve(fsLis) }()

	var coordGRPC *grpc.Server
	if entry.Coordinator {
		coord := quorumcoord.New(servers, cfg.WriteQuorum, cfg.ReadQuorum, cfg.LockingScheme, pool, lgr.Named("coordinator"))
		coordSvc := quorumcoord.NewService(coord)

		coordLis, coordAdvertised, err := config.Listen(cfg.Mode, entry.Bind, entry.Host, cfg.CoordinatorPort)
		if err != nil {
			lgr.Error("failed to initialize coordinator listener", logger.F("err", err))
			os.Exit(1)
		}
		defer func() { _ = coordLis.Close() }()
		lgr.Info("quorum coordinator listening", logger.F("addr", coordAdvertised))

		coordGRPC = grpc.NewServer(serverOpts...)
		quorumv1.RegisterQuorumServer(coordGRPC, coordSvc)
		go func() { serveErr <- coordGRPC.Serve(coordLis) }()
	} else {
		lgr.Debug("waiting for coordinator to start", logger.F("delay", cfg.CoordinatorSleepDelayDuration().String()))
		time.Sleep(cfg.CoordinatorSleepDelayDuration())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		lgr.Info("shutdown signal received, stopping gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done := make(chan struct{})
		go func() {
			fsGRPC.GracefulStop()
			if coordGRPC != nil {
				coordGRPC.GracefulStop()
			}
			close(done)
		}()
		select {
		case <-done:
			lgr.Info("server stopped gracefully")
		case <-shutdownCtx.Done():
			lgr.Warn("graceful stop timed out, forcing shutdown")
			fsGRPC.Stop()
			if coordGRPC != nil {
				coordGRPC.Stop()
			}
		}
	case err := <-serveErr:
		lgr.Error("gRPC server terminated unexpectedly", logger.F("err", err))
		os.Exit(1)
	}
}
