// Package config loads and validates the JSON configuration documents for
// the ring (DHT) and quorum (file store) subsystems.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"ringquorum/internal/logger"
)

// TracingConfig controls the OpenTelemetry tracer.
type TracingConfig struct {
	Enabled  bool   `json:"enabled"`
	Exporter string `json:"exporter"`           // "stdout" or "otlp"; ignored when Enabled is false
	Endpoint string `json:"endpoint,omitempty"` // OTLP collector address, required when exporter=otlp
}

// TelemetryConfig is shared by all five processes.
type TelemetryConfig struct {
	Tracing TracingConfig `json:"tracing"`
}

// FileLoggerConfig configures lumberjack file rotation.
type FileLoggerConfig struct {
	Path       string `json:"path"`
	MaxSize    int    `json:"max_size"`
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"`
	Compress   bool   `json:"compress"`
}

// LoggerConfig is shared by all five processes.
type LoggerConfig struct {
	Active   bool             `json:"active"`
	Level    string           `json:"level"`
	Encoding string           `json:"encoding"` // "console" or "json"
	Mode     string           `json:"mode"`     // "stdout" or "file"
	File     FileLoggerConfig `json:"file"`
}

// NodeEntry is one ring node's listen configuration, addressed by index
// from the command line (the "<role_index> <config_path>" convention).
// id and bind are optional extras: a hex ID override and a listen-address
// override for multi-homed hosts.
type NodeEntry struct {
	ID   string `json:"id,omitempty"` // optional hex override; derived from address if empty
	Bind string `json:"bind,omitempty"`
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// SuperNodeConfig is the super_node address block: the Bootstrap
// Coordinator's address every other role dials. Bind is an optional
// listen override for the coordinator process itself.
type SuperNodeConfig struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
	Bind string `json:"bind,omitempty"`
}

// Addr returns the "ip:port" dial string other roles use to reach the
// Bootstrap Coordinator.
func (s SuperNodeConfig) Addr() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// RingFileConfig is the JSON configuration shared by the bootstrap
// coordinator, every ring node, and the dictionary client. "mode"
// controls the private/public listen-address selection in
// internal/config.Listen.
type RingFileConfig struct {
	Mode            string          `json:"mode"` // "private" or "public"
	NumBits         int             `json:"num_bits"`
	Caching         bool            `json:"caching"`
	SuperNode       SuperNodeConfig `json:"super_node"`
	ChordNodes      []NodeEntry     `json:"chord_nodes"`
	SleepDelay      int             `json:"sleep_delay"` // seconds between DHTBusy retries
	ClientCommands  []string        `json:"client_commands"`
	ReuseConnection bool            `json:"reuse_connection"`
	Debug           bool            `json:"debug"`
	Logger          LoggerConfig    `json:"logger"`
	Telemetry       TelemetryConfig `json:"telemetry"`
}

// SleepDelayDuration returns SleepDelay as a time.Duration, defaulting to
// one second when unset or non-positive.
func (cfg *RingFileConfig) SleepDelayDuration() time.Duration {
	if cfg.SleepDelay <= 0 {
		return time.Second
	}
	return time.Duration(cfg.SleepDelay) * time.Second
}

// LoadRingConfig reads and parses a ring configuration file. Call
// ValidateConfig afterward.
func LoadRingConfig(path string) (*RingFileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg RingFileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = "private"
	}
	applyLoggerDefaults(&cfg.Logger)
	return &cfg, nil
}

// ApplyEnvOverrides applies deployment-specific environment overrides.
//
// Supported variables:
//
//	RING_MODE              -> cfg.Mode
//	RING_SUPER_NODE_ADDR   -> cfg.SuperNode.{IP,Port} (parsed as "ip:port")
//	RING_LOGGER_ACTIVE     -> cfg.Logger.Active
//	RING_LOGGER_LEVEL      -> cfg.Logger.Level
//	RING_TRACE_ENABLED     -> cfg.Telemetry.Tracing.Enabled
func (cfg *RingFileConfig) ApplyEnvOverrides() {
	if v := os.Getenv("RING_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("RING_SUPER_NODE_ADDR"); v != "" {
		if host, portStr, err := net.SplitHostPort(v); err == nil {
			if port, err := strconv.Atoi(portStr); err == nil {
				cfg.SuperNode.IP = host
				cfg.SuperNode.Port = port
			}
		}
	}
	if v := os.Getenv("RING_LOGGER_ACTIVE"); v != "" {
		cfg.Logger.Active = parseBool(v)
	}
	if v := os.Getenv("RING_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("RING_TRACE_ENABLED"); v != "" {
		cfg.Telemetry.Tracing.Enabled = parseBool(v)
	}
}

// ValidateConfig checks structural correctness of a RingFileConfig.
func (cfg *RingFileConfig) ValidateConfig() error {
	var errs []string
	if cfg.NumBits <= 0 {
		errs = append(errs, "num_bits must be > 0")
	}
	switch cfg.Mode {
	case "public", "private":
	default:
		errs = append(errs, fmt.Sprintf("invalid mode: %s", cfg.Mode))
	}
	if cfg.SuperNode.IP == "" || cfg.SuperNode.Port <= 0 {
		errs = append(errs, "super_node.ip and super_node.port are required")
	}
	errs = append(errs, validateLogger(cfg.Logger)...)
	errs = append(errs, validateTelemetry(cfg.Telemetry)...)
	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LogConfig emits the loaded configuration at DEBUG level.
func (cfg *RingFileConfig) LogConfig(lgr logger.Logger) {
	lgr.Debug("loaded ring configuration",
		logger.F("mode", cfg.Mode),
		logger.F("num_bits", cfg.NumBits),
		logger.F("super_node", cfg.SuperNode.Addr()),
		logger.F("node_count", len(cfg.ChordNodes)),
		logger.F("logger.active", cfg.Logger.Active),
		logger.F("telemetry.tracing.enabled", cfg.Telemetry.Tracing.Enabled),
	)
}

// ServerEntry is one file server's listen configuration and whether it
// also hosts the quorum coordinator in the same process.
type ServerEntry struct {
	Bind        string `json:"bind"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Coordinator bool   `json:"coordinator"`
}

// ClientEntry is one file client's command-script configuration,
// addressed by index from the command line.
type ClientEntry struct {
	Host         string `json:"host"`
	CommandsFile string `json:"commands_file"`
}

// QuorumFileConfig is the JSON configuration shared by every file server
// and (implicitly, via ServerEntry.Coordinator) the quorum coordinator.
type QuorumFileConfig struct {
	Mode                  string          `json:"mode"`
	Servers               []ServerEntry   `json:"servers"`
	WriteQuorum           int             `json:"q_write"`
	ReadQuorum            int             `json:"q_read"`
	LockingScheme         string          `json:"locking_scheme"` // "default" or "readwrite"
	CoordinatorPort       int             `json:"coordinator_port"`
	CoordinatorSleepDelay int             `json:"coordinator_sleep_delay"` // seconds a non-coordinator server sleeps after its file server starts serving
	StoragePath           string          `json:"storage_path"`
	Clients               []ClientEntry   `json:"clients"`
	Debug                 bool            `json:"debug"`
	Logger                LoggerConfig    `json:"logger"`
	Telemetry             TelemetryConfig `json:"telemetry"`
}

// CoordinatorSleepDelayDuration returns CoordinatorSleepDelay as a
// time.Duration, defaulting to three seconds when unset or non-positive.
func (cfg *QuorumFileConfig) CoordinatorSleepDelayDuration() time.Duration {
	if cfg.CoordinatorSleepDelay <= 0 {
		return 3 * time.Second
	}
	return time.Duration(cfg.CoordinatorSleepDelay) * time.Second
}

// LoadQuorumConfig reads and parses a quorum configuration file. Call
// ValidateConfig afterward.
func LoadQuorumConfig(path string) (*QuorumFileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg QuorumFileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = "private"
	}
	if cfg.LockingScheme == "" {
		cfg.LockingScheme = "default"
	}
	applyLoggerDefaults(&cfg.Logger)
	return &cfg, nil
}

// ApplyEnvOverrides applies deployment-specific environment overrides.
func (cfg *QuorumFileConfig) ApplyEnvOverrides() {
	if v := os.Getenv("QUORUM_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("QUORUM_STORAGE_PATH"); v != "" {
		cfg.StoragePath = v
	}
	if v := os.Getenv("QUORUM_LOCKING_SCHEME"); v != "" {
		cfg.LockingScheme = v
	}
	if v := os.Getenv("QUORUM_LOGGER_ACTIVE"); v != "" {
		cfg.Logger.Active = parseBool(v)
	}
}

// ValidateConfig checks structural correctness of a QuorumFileConfig.
func (cfg *QuorumFileConfig) ValidateConfig() error {
	var errs []string
	n := len(cfg.Servers)
	if n == 0 {
		errs = append(errs, "servers must be non-empty")
	}
	if cfg.ReadQuorum <= 0 || cfg.ReadQuorum > n {
		errs = append(errs, fmt.Sprintf("q_read must be in [1,%d]", n))
	}
	if cfg.WriteQuorum <= 0 || cfg.WriteQuorum > n {
		errs = append(errs, fmt.Sprintf("q_write must be in [1,%d]", n))
	}
	if cfg.ReadQuorum+cfg.WriteQuorum <= n {
		errs = append(errs, "q_read + q_write must be > len(servers) to guarantee intersection")
	}
	switch cfg.LockingScheme {
	case "default", "readwrite":
	default:
		errs = append(errs, fmt.Sprintf("invalid locking_scheme: %s", cfg.LockingScheme))
	}
	if cfg.StoragePath == "" {
		errs = append(errs, "storage_path is required")
	}
	coordCount := 0
	for _, s := range cfg.Servers {
		if s.Coordinator {
			coordCount++
		}
	}
	if coordCount != 1 {
		errs = append(errs, fmt.Sprintf("exactly one server entry must set coordinator=true, found %d", coordCount))
	}
	if cfg.CoordinatorPort <= 0 {
		errs = append(errs, "coordinator_port must be > 0")
	}
	for i, c := range cfg.Clients {
		if c.CommandsFile == "" {
			errs = append(errs, fmt.Sprintf("clients[%d].commands_file is required", i))
		}
	}
	errs = append(errs, validateLogger(cfg.Logger)...)
	errs = append(errs, validateTelemetry(cfg.Telemetry)...)
	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LogConfig emits the loaded configuration at DEBUG level.
func (cfg *QuorumFileConfig) LogConfig(lgr logger.Logger) {
	lgr.Debug("loaded quorum configuration",
		logger.F("mode", cfg.Mode),
		logger.F("server_count", len(cfg.Servers)),
		logger.F("q_read", cfg.ReadQuorum),
		logger.F("q_write", cfg.WriteQuorum),
		logger.F("locking_scheme", cfg.LockingScheme),
		logger.F("storage_path", cfg.StoragePath),
	)
}

// applyLoggerDefaults fills the logger fields a minimal configuration
// document is allowed to omit.
func applyLoggerDefaults(cfg *LoggerConfig) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "json"
	}
	if cfg.Mode == "" {
		cfg.Mode = "stdout"
	}
}

func validateLogger(cfg LoggerConfig) []string {
	var errs []string
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.level: %s", cfg.Level))
	}
	switch cfg.Encoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.encoding: %s", cfg.Encoding))
	}
	switch cfg.Mode {
	case "stdout":
	case "file":
		if cfg.File.Path == "" {
			errs = append(errs, "logger.file.path is required when mode=file")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid logger.mode: %s", cfg.Mode))
	}
	return errs
}

func validateTelemetry(cfg TelemetryConfig) []string {
	var errs []string
	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Exporter {
		case "stdout":
		case "otlp":
			if cfg.Tracing.Endpoint == "" {
				errs = append(errs, "telemetry.tracing.endpoint is required when exporter=otlp")
			}
		default:
			errs = append(errs, fmt.Sprintf("invalid telemetry.tracing.exporter: %s", cfg.Tracing.Exporter))
		}
	}
	return errs
}

func parseBool(v string) bool {
	v = strings.ToLower(v)
	return v == "true" || v == "1" || v == "yes"
}
