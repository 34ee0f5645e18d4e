package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	ringv1 "ringquorum/internal/api/ring/v1"
	"ringquorum/internal/config"
	"ringquorum/internal/identifier"
	"ringquorum/internal/logger"
	zapfactory "ringquorum/internal/logger/zap"
	"ringquorum/internal/ringnode"
	"ringquorum/internal/rpcclient"
	"ringquorum/internal/telemetry"
	"ringquorum/internal/telemetry/hoptrace"

	"google.golang.org/grpc"
)

var defaultConfigPath = "config/ring/config.json"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: ringnode <node_index> [-config path]")
	}
	nodeIndex, err := strconv.Atoi(os.Args[1])
	if err != nil {
		log.Fatalf("invalid node_index %q: %v", os.Args[1], err)
	}
	fs := flag.NewFlagSet("ringnode", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to configuration file")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.LoadRingConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", *configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if nodeIndex < 0 || nodeIndex >= len(cfg.ChordNodes) {
		log.Fatalf("node_index %d out of range [0,%d)", nodeIndex, len(cfg.ChordNodes))
	}
	entry := cfg.ChordNodes[nodeIndex]

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

	lis, advertised, err := config.Listen(cfg.Mode, entry.Bind, entry.IP, entry.Port)
	if err != nil {
		lgr.Error("failed to initialize listener", logger.F("err", err))
		os.Exit(1)
	}
	defer func() { _ = lis.Close() }()

	var id identifier.ID
	if entry.ID == "" {
		id = space.HashString(advertised)
	} else {
		id, err = space.FromHexString(entry.ID)
		if err != nil {
			lgr.Error("invalid node id in configuration", logger.F("err", err))
			os.Exit(1)
		}
	}
	self := identifier.NodeInfo{ID: id, Addr: advertised}
	lgr = lgr.Named("ringnode").With(logger.FNode("self", self))
	lgr.Info("ring node initializing")

	shutdown := telemetry.InitTracer(cfg.Telemetry, "ringquorum-ringnode", self.ID.String())
	defer func() { _ = shutdown(context.Background()) }()

	var dialOpts []grpc.DialOption
	var serverOpts []grpc.ServerOption
	if cfg.Telemetry.Tracing.Enabled {
		dialOpts = append(dialOpts, grpc.WithChainUnaryInterceptor(hoptrace.ClientInterceptor()))
		serverOpts = append(serverOpts, grpc.ChainUnaryInterceptor(hoptrace.ServerInterceptor("FindSuccessor", "FindPredecessor")))
	}

	pool := rpcclient.New(5*time.Second, 2*time.Minute, dialOpts...)
	defer pool.Close()

	node := ringnode.NewNode(self, space, cfg.Caching, pool, lgr.Named("node"))
	svc := ringnode.NewService(node)

	grpcServer := grpc.NewServer(serverOpts...)
	ringv1.RegisterRingServer(grpcServer, svc)

	serveErr := make(chan error, 1)
	go func() { serveErr <- grpcServer.Serve(lis) }()

	joinCtx, joinCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = node.Join(joinCtx, cfg.SuperNode.Addr(), cfg.SleepDelayDuration())
	joinCancel()
	if err != nil {
		lgr.Error("failed to join ring", logger.F("err", err))
		grpcServer.Stop()
		os.Exit(1)
	}
	lgr.Info("joined ring successfully")

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
