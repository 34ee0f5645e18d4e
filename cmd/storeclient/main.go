package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ringquorum/internal/config"
	"ringquorum/internal/fileclient"
	"ringquorum/internal/logger"
	zapfactory "ringquorum/internal/logger/zap"
	"ringquorum/internal/rpcclient"
)

var defaultConfigPath = "config/quorum/config.json"

func main() {
	gen := flag.Bool("gen", false, "generate a command script instead of running one")
	numFiles := flag.Int("num-files", 0, "number of distinct files to write, with -gen")
	numWrites := flag.Int("num-writes", 0, "additional write commands to generate, with -gen")
	numReads := flag.Int("num-reads", 0, "read commands to generate, with -gen")
	out := flag.String("out", "", "output path for the generated command script, with -gen")
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	if *gen {
		runGenerate(*numFiles, *numWrites, *numReads, *out)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("usage: storeclient [-config path] <client_index>")
	}
	clientIndex, err := strconv.Atoi(args[0])
	if err != nil {
		log.Fatalf("invalid client_index %q: %v", args[0], err)
	}
	runClient(clientIndex, *configPath)
}

func runGenerate(numFiles, numWrites, numReads int, out string) {
	if out == "" {
		log.Fatal("-out is required with -gen")
	}
	clientNum := 0
	if v := os.Getenv("STORECLIENT_GEN_NUM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			clientNum = n
		}
	}
	commands := fileclient.GenerateCommands(numFiles, numWrites, numReads, clientNum, nil)
	if err := os.WriteFile(out, []byte(fileclient.WriteCommands(commands)), 0o644); err != nil {
		log.Fatalf("storeclient: writing %s: %v", out, err)
	}
}

func runClient(clientIndex int, configPath string) {
	cfg, err := config.LoadQuorumConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if clientIndex < 0 || clientIndex >= len(cfg.Clients) {
		log.Fatalf("client_index %d out of range [0,%d)", clientIndex, len(cfg.Clients))
	}
	entry := cfg.Clients[clientIndex]

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
	lgr = lgr.Named("storeclient").With(logger.F("index", clientIndex), logger.F("host", entry.Host))

	data, err := os.ReadFile(entry.CommandsFile)
	if err != nil {
		log.Fatalf("storeclient: reading %s: %v", entry.CommandsFile, err)
	}
	commands := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	servers := make([]string, len(cfg.Servers))
	for i, s := range cfg.Servers {
		servers[i] = s.Host + ":" + strconv.Itoa(s.Port)
	}

	pool := rpcclient.New(5*time.Second, time.Minute)
	defer pool.Close()

	client := fileclient.New(pool, servers, lgr.Named("client"))
	runner := fileclient.NewRunner(client, lgr.Named("runner"))

	start := time.Now()
	if err := runner.Run(context.Background(), commands); err != nil {
		lgr.Error("command run failed", logger.F("err", err))
		log.Fatalf("storeclient: %v", err)
	}
	lgr.Info("finished executing all commands", logger.F("elapsed", time.Since(start).String()))
}
