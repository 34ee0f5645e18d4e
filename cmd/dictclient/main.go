package main

import (
	"context"
	"flag"
	"log"
	"time"

	"ringquorum/internal/config"
	"ringquorum/internal/dictclient"
	"ringquorum/internal/logger"
	zapfactory "ringquorum/internal/logger/zap"
	"ringquorum/internal/rpcclient"
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
	lgr = lgr.Named("dictclient")

	if cfg.SuperNode.IP == "" || cfg.SuperNode.Port == 0 {
		log.Fatal("super_node is required in the ring configuration")
	}

	pool := rpcclient.New(5*time.Second, time.Minute)
	defer pool.Close()

	client := dictclient.New(pool, cfg.SuperNode.Addr(), cfg.ReuseConnection, lgr.Named("client"))
	runner := dictclient.NewRunner(client, lgr.Named("runner"))

	ctx := context.Background()
	if err := runner.Run(ctx, cfg.ClientCommands); err != nil {
		lgr.Error("command run failed", logger.F("err", err))
		log.Fatalf("dictclient: %v", err)
	}
	lgr.Info("finished executing all commands")
}
