package sysvar

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Kind identifies one of the sysvars tracked by a Store.
type Kind uint8

const (
	KindClock Kind = iota
	KindEpochSchedule
	KindEpochRewards
	KindLastRestartSlot
	KindRent
	KindSlotHashes
	KindStakeHistory

	kindCount
)

// Owner is the program that owns every sysvar account.
var Owner = solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111")

var kindIDs = [kindCount]solana.PublicKey{
	KindClock:           solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111"),
	KindEpochSchedule:   solana.MustPublicKeyFromBase58("SysvarEpochSchedu1e111111111111111111111111"),
	KindEpochRewards:    solana.MustPublicKeyFromBase58("SysvarEpochRewards1111111111111111111111111"),
	KindLastRestartSlot: solana.MustPublicKeyFromBase58("SysvarLastRestartS1ot1111111111111111111111"),
	KindRent:            solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111"),
	KindSlotHashes:      solana.MustPublicKeyFromBase58("SysvarS1otHashes111111111111111111111111111"),
	KindStakeHistory:    solana.MustPublicKeyFromBase58("SysvarStakeHistory1111111111111111111111111"),
}

var kindNames = [kindCount]string{
	KindClock:           "clock",
	KindEpochSchedule:   "epoch_schedule",
	KindEpochRewards:    "epoch_rewards",
	KindLastRestartSlot: "last_restart_slot",
	KindRent:            "rent",
	KindSlotHashes:      "slot_hashes",
	KindStakeHistory:    "stake_history",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ID returns the well-known sysvar address.
func (k Kind) ID() solana.PublicKey {
	if !k.Valid() {
		return solana.PublicKey{}
	}
	return kindIDs[k]
}

// Default returns the canonical initial value for the kind, or nil for an unknown kind.
func (k Kind) Default() Sysvar {
	switch k {
	case KindClock:
		return DefaultClock()
	case KindEpochSchedule:
		return DefaultEpochSchedule()
	case KindEpochRewards:
		return DefaultEpochRewards()
	case KindLastRestartSlot:
		return DefaultLastRestartSlot()
	case KindRent:
		return DefaultRent()
	case KindSlotHashes:
		return DefaultSlotHashes()
	case KindStakeHistory:
		return DefaultStakeHistory()
	default:
		return nil
	}
}

// KindFromID maps a sysvar address back to its kind.
func KindFromID(id solana.PublicKey) (Kind, bool) {
	for k, kid := range kindIDs {
		if kid == id {
			return Kind(k), true
		}
	}
	return 0, false
}

// KindFromName accepts the snake_case names returned by String.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
