package sysvar

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// MinimumSlotsPerEpoch is the length of the first warmup epoch.
	MinimumSlotsPerEpoch uint64 = 32

	DefaultSlotsPerEpoch            uint64 = 432_000
	DefaultLeaderScheduleSlotOffset uint64 = DefaultSlotsPerEpoch

	EpochScheduleSize = 33
)

var minimumSlotsPerEpochExp = uint64(bits.TrailingZeros64(MinimumSlotsPerEpoch))

// EpochSchedule maps slots to epochs. With warmup the first epochs start at
// MinimumSlotsPerEpoch slots and double until they reach SlotsPerEpoch.
type EpochSchedule struct {
	SlotsPerEpoch            uint64 `json:"slots_per_epoch" yaml:"slots_per_epoch"`
	LeaderScheduleSlotOffset uint64 `json:"leader_schedule_slot_offset" yaml:"leader_schedule_slot_offset"`
	Warmup                   bool   `json:"warmup" yaml:"warmup"`
	FirstNormalEpoch         uint64 `json:"first_normal_epoch" yaml:"first_normal_epoch"`
	FirstNormalSlot          uint64 `json:"first_normal_slot" yaml:"first_normal_slot"`
}

func DefaultEpochSchedule() EpochSchedule {
	return NewEpochSchedule(DefaultSlotsPerEpoch, DefaultLeaderScheduleSlotOffset, true)
}

// NewEpochSchedule derives FirstNormalEpoch and FirstNormalSlot. Warmup
// schedules are clamped to at least MinimumSlotsPerEpoch slots per epoch.
func NewEpochSchedule(slotsPerEpoch, leaderScheduleSlotOffset uint64, warmup bool) EpochSchedule {
	s := EpochSchedule{
		SlotsPerEpoch:            slotsPerEpoch,
		LeaderScheduleSlotOffset: leaderScheduleSlotOffset,
		Warmup:                   warmup,
	}
	if !warmup {
		return s
	}
	if s.SlotsPerEpoch < MinimumSlotsPerEpoch {
		s.SlotsPerEpoch = MinimumSlotsPerEpoch
	}
	s.FirstNormalEpoch = uint64(bits.TrailingZeros64(nextPowerOfTwo(s.SlotsPerEpoch))) - minimumSlotsPerEpochExp
	s.FirstNormalSlot = (uint64(1)<<s.FirstNormalEpoch - 1) * MinimumSlotsPerEpoch
	return s
}

func (EpochSchedule) Kind() Kind { return KindEpochSchedule }

func (e EpochSchedule) clone() Sysvar { return e }

// Validate reports schedules that cannot map slots past FirstNormalSlot or
// whose first normal fields disagree with the warmup flag.
func (e EpochSchedule) Validate() error {
	if e.SlotsPerEpoch == 0 {
		return fmt.Errorf("%w: slots_per_epoch is zero", ErrInvalidEpochSchedule)
	}
	if !e.Warmup {
		if e.FirstNormalEpoch != 0 || e.FirstNormalSlot != 0 {
			return fmt.Errorf("%w: first_normal_epoch %d and first_normal_slot %d must be zero without warmup",
				ErrInvalidEpochSchedule, e.FirstNormalEpoch, e.FirstNormalSlot)
		}
		return nil
	}
	if e.FirstNormalEpoch >= 64-minimumSlotsPerEpochExp {
		return fmt.Errorf("%w: first_normal_epoch %d too large", ErrInvalidEpochSchedule, e.FirstNormalEpoch)
	}
	if want := (uint64(1)<<e.FirstNormalEpoch - 1) * MinimumSlotsPerEpoch; e.FirstNormalSlot != want {
		return fmt.Errorf("%w: first_normal_slot %d does not match first_normal_epoch %d (want %d)",
			ErrInvalidEpochSchedule, e.FirstNormalSlot, e.FirstNormalEpoch, want)
	}
	return nil
}

func (e EpochSchedule) GetSlotsInEpoch(epoch uint64) uint64 {
	if epoch < e.FirstNormalEpoch {
		return uint64(1) << (epoch + minimumSlotsPerEpochExp)
	}
	return e.SlotsPerEpoch
}

func (e EpochSchedule) GetEpoch(slot uint64) uint64 {
	epoch, _ := e.GetEpochAndSlotIndex(slot)
	return epoch
}

// GetEpochAndSlotIndex returns the epoch containing slot and the offset of
// slot within that epoch.
func (e EpochSchedule) GetEpochAndSlotIndex(slot uint64) (uint64, uint64) {
	if slot < e.FirstNormalSlot {
		epoch := uint64(bits.TrailingZeros64(nextPowerOfTwo(saturatingAdd(slot, MinimumSlotsPerEpoch+1)))) - minimumSlotsPerEpochExp - 1
		epochLen := uint64(1) << (epoch + minimumSlotsPerEpochExp)
		return epoch, slot - (epochLen - MinimumSlotsPerEpoch)
	}
	normalSlotIndex := slot - e.FirstNormalSlot
	if e.SlotsPerEpoch == 0 {
		return e.FirstNormalEpoch, normalSlotIndex
	}
	return e.FirstNormalEpoch + normalSlotIndex/e.SlotsPerEpoch, normalSlotIndex % e.SlotsPerEpoch
}

func (e EpochSchedule) GetFirstSlotInEpoch(epoch uint64) uint64 {
	if epoch <= e.FirstNormalEpoch {
		return (uint64(1)<<epoch - 1) * MinimumSlotsPerEpoch
	}
	return (epoch-e.FirstNormalEpoch)*e.SlotsPerEpoch + e.FirstNormalSlot
}

func (e EpochSchedule) GetLastSlotInEpoch(epoch uint64) uint64 {
	return e.GetFirstSlotInEpoch(epoch) + e.GetSlotsInEpoch(epoch) - 1
}

// GetLeaderScheduleEpoch is the epoch whose leader schedule is known at slot.
func (e EpochSchedule) GetLeaderScheduleEpoch(slot uint64) uint64 {
	if slot < e.FirstNormalSlot {
		epoch, _ := e.GetEpochAndSlotIndex(slot)
		return epoch + 1
	}
	if e.SlotsPerEpoch == 0 {
		return e.FirstNormalEpoch
	}
	newSlotsSinceFirstNormalSlot := slot - e.FirstNormalSlot
	offset := saturatingAdd(newSlotsSinceFirstNormalSlot, e.LeaderScheduleSlotOffset)
	return e.FirstNormalEpoch + offset/e.SlotsPerEpoch
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return uint64(1) << bits.Len64(n-1)
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
