package sysvar

import (
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
)

// EpochRewards tracks partitioned reward distribution. TotalPoints is a u128
// on the wire; values wider than 128 bits fail to encode.
type EpochRewards struct {
	DistributionStartingBlockHeight uint64      `json:"distribution_starting_block_height"`
	NumPartitions                   uint64      `json:"num_partitions"`
	ParentBlockhash                 solana.Hash `json:"parent_blockhash"`
	TotalPoints                     uint256.Int `json:"total_points"`
	TotalRewards                    uint64      `json:"total_rewards"`
	DistributedRewards              uint64      `json:"distributed_rewards"`
	Active                          bool        `json:"active"`
}

const EpochRewardsSize = 81

func DefaultEpochRewards() EpochRewards {
	return EpochRewards{}
}

func (EpochRewards) Kind() Kind { return KindEpochRewards }

func (e EpochRewards) clone() Sysvar { return e }
