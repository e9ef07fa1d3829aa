package config

import "github.com/mezonai/svmharness/sysvar"

// EpochScheduleConfig holds the inputs of an epoch schedule. The first
// normal epoch and slot are always derived.
type EpochScheduleConfig struct {
	SlotsPerEpoch            uint64 `yaml:"slots_per_epoch"`
	LeaderScheduleSlotOffset uint64 `yaml:"leader_schedule_slot_offset"`
	Warmup                   bool   `yaml:"warmup"`
}

func (e EpochScheduleConfig) Schedule() sysvar.EpochSchedule {
	return sysvar.NewEpochSchedule(e.SlotsPerEpoch, e.LeaderScheduleSlotOffset, e.Warmup)
}

// HarnessConfig overrides the default sysvars of a new harness. Nil
// sections keep the defaults.
type HarnessConfig struct {
	Clock           *sysvar.Clock        `yaml:"clock"`
	EpochSchedule   *EpochScheduleConfig `yaml:"epoch_schedule"`
	Rent            *sysvar.Rent         `yaml:"rent"`
	LastRestartSlot *uint64              `yaml:"last_restart_slot"`
	Fixtures        []string             `yaml:"fixtures"`
}

// ConfigFile is the top-level structure for harness.yml
type ConfigFile struct {
	Config HarnessConfig `yaml:"config"`
}

// RPCConfig is the [rpc] section used by the account fetcher.
type RPCConfig struct {
	URL               string  `ini:"url"`
	Commitment        string  `ini:"commitment"`
	TimeoutMs         int     `ini:"timeout_ms"`
	BatchSize         int     `ini:"batch_size"`
	RequestsPerSecond float64 `ini:"requests_per_second"`
	Concurrency       int     `ini:"concurrency"`
}

// LogConfig is the [log] section.
type LogConfig struct {
	File       string `ini:"file"`
	MaxSizeMB  int    `ini:"max_size_mb"`
	MaxAgeDays int    `ini:"max_age_days"`
	Level      string `ini:"level"`
}
