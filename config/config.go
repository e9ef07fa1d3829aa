package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mezonai/svmharness/logx"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadHarnessConfig reads and parses a harness.yml file
func LoadHarnessConfig(path string) (*HarnessConfig, error) {
	logx.Debug("CONFIG", "LoadHarnessConfig called with path: ", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg := &cfgFile.Config
	if cfg.EpochSchedule != nil {
		if err := cfg.EpochSchedule.Schedule().Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	logx.Info("CONFIG", fmt.Sprintf("Loaded harness config %s: fixtures=%d", path, len(cfg.Fixtures)))
	return cfg, nil
}

func DefaultRPCConfig() *RPCConfig {
	return &RPCConfig{
		URL:               DefaultRPCURL,
		Commitment:        DefaultCommitment,
		TimeoutMs:         DefaultRPCTimeoutMs,
		BatchSize:         MaxBatchSize,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Concurrency:       DefaultConcurrency,
	}
}

// Timeout is the per-request deadline.
func (c *RPCConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Validate rejects settings the fetcher cannot run with.
func (c *RPCConfig) Validate() error {
	switch {
	case c.URL == "":
		return fmt.Errorf("rpc url is required")
	case c.BatchSize <= 0 || c.BatchSize > MaxBatchSize:
		return fmt.Errorf("rpc batch_size must be in 1..%d, got %d", MaxBatchSize, c.BatchSize)
	case c.TimeoutMs <= 0:
		return fmt.Errorf("rpc timeout_ms must be positive, got %d", c.TimeoutMs)
	case c.Concurrency <= 0:
		return fmt.Errorf("rpc concurrency must be positive, got %d", c.Concurrency)
	case c.RequestsPerSecond < 0:
		return fmt.Errorf("rpc requests_per_second must not be negative")
	}
	return nil
}

// LoadRPCConfig reads the [rpc] section of an .ini file. Missing keys keep
// their defaults.
func LoadRPCConfig(path string) (*RPCConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	rpcCfg := DefaultRPCConfig()
	if err := cfg.Section("rpc").MapTo(rpcCfg); err != nil {
		return nil, err
	}
	if err := rpcCfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rpcCfg, nil
}

func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		MaxSizeMB:  DefaultLogMaxSizeMB,
		MaxAgeDays: DefaultLogMaxAgeDays,
		Level:      DefaultLogLevel,
	}
}

func LoadLogConfig(path string) (*LogConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	logCfg := DefaultLogConfig()
	if err := cfg.Section("log").MapTo(logCfg); err != nil {
		return nil, err
	}
	return logCfg, nil
}

func (c *LogConfig) Options() logx.Options {
	return logx.Options{
		Filename:   c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxAgeDays: c.MaxAgeDays,
		Level:      c.Level,
	}
}
