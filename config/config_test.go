package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mezonai/svmharness/sysvar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadHarnessConfig(t *testing.T) {
	path := writeTemp(t, "harness.yml", `
config:
  clock:
    slot: 100
    unix_timestamp: 1700000000
  epoch_schedule:
    slots_per_epoch: 8192
    leader_schedule_slot_offset: 8192
    warmup: false
  rent:
    lamports_per_byte_year: 1
    exemption_threshold: 1.0
    burn_percent: 0
  last_restart_slot: 42
  fixtures:
    - ./fixtures
`)
	cfg, err := LoadHarnessConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Clock)
	assert.Equal(t, uint64(100), cfg.Clock.Slot)
	assert.Equal(t, int64(1700000000), cfg.Clock.UnixTimestamp)

	require.NotNil(t, cfg.EpochSchedule)
	assert.Equal(t, sysvar.EpochSchedule{
		SlotsPerEpoch:            8192,
		LeaderScheduleSlotOffset: 8192,
	}, cfg.EpochSchedule.Schedule())

	require.NotNil(t, cfg.Rent)
	assert.Equal(t, 1.0, cfg.Rent.ExemptionThreshold)
	require.NotNil(t, cfg.LastRestartSlot)
	assert.Equal(t, uint64(42), *cfg.LastRestartSlot)
	assert.Equal(t, []string{"./fixtures"}, cfg.Fixtures)
}

func TestLoadHarnessConfigEmptySections(t *testing.T) {
	path := writeTemp(t, "harness.yml", "config:\n  fixtures: []\n")
	cfg, err := LoadHarnessConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Clock)
	assert.Nil(t, cfg.EpochSchedule)
	assert.Nil(t, cfg.Rent)
	assert.Nil(t, cfg.LastRestartSlot)
}

func TestLoadHarnessConfigRejects(t *testing.T) {
	_, err := LoadHarnessConfig(writeTemp(t, "unknown.yml", "config:\n  bogus: 1\n"))
	require.Error(t, err)

	_, err = LoadHarnessConfig(writeTemp(t, "zero.yml", "config:\n  epoch_schedule:\n    slots_per_epoch: 0\n"))
	require.ErrorIs(t, err, sysvar.ErrInvalidEpochSchedule)

	_, err = LoadHarnessConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoadRPCConfig(t *testing.T) {
	path := writeTemp(t, "harness.ini", `
[rpc]
url = http://127.0.0.1:8899
batch_size = 50
requests_per_second = 2.5
`)
	cfg, err := LoadRPCConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8899", cfg.URL)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	// untouched keys keep defaults
	assert.Equal(t, DefaultCommitment, cfg.Commitment)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoadRPCConfigInvalidBatch(t *testing.T) {
	path := writeTemp(t, "harness.ini", "[rpc]\nbatch_size = 101\n")
	_, err := LoadRPCConfig(path)
	require.Error(t, err)
}

func TestLoadLogConfig(t *testing.T) {
	path := writeTemp(t, "harness.ini", "[log]\nfile = ./logs/harness.log\nlevel = debug\n")
	cfg, err := LoadLogConfig(path)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, "./logs/harness.log", opts.Filename)
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, DefaultLogMaxSizeMB, opts.MaxSizeMB)
	assert.Equal(t, DefaultLogMaxAgeDays, opts.MaxAgeDays)
}
