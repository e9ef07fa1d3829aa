package config

const (
	DefaultRPCURL            = "https://api.mainnet-beta.solana.com"
	DefaultCommitment        = "confirmed"
	DefaultRPCTimeoutMs      = 30_000
	DefaultRequestsPerSecond = 10
	DefaultConcurrency       = 4

	// MaxBatchSize is the most addresses getMultipleAccounts accepts per call.
	MaxBatchSize = 100

	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxAgeDays = 7
	DefaultLogLevel      = "info"
)
