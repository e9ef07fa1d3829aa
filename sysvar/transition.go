package sysvar

import (
	"fmt"
	"math"

	"github.com/mezonai/svmharness/blockhash"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/monitoring"
)

// ExpireBlockhash advances the chain by one slot: the clock moves to the next
// slot and a fresh hash for that slot is pushed onto the slot hash history,
// so the previously newest hash ages by one position. On error the store is
// left unchanged.
func (s *Store) ExpireBlockhash() error {
	clock := Get[Clock](s)
	if clock.Slot == math.MaxUint64 {
		return fmt.Errorf("%w: clock is at slot %d", ErrSlotOverflow, clock.Slot)
	}
	return s.advance(clock, clock.Slot+1)
}

// WarpToSlot moves the clock straight to slot and records hashes for the
// skipped slots that still fit in the history. Warping to the current slot
// is a no-op.
func (s *Store) WarpToSlot(slot uint64) error {
	clock := Get[Clock](s)
	switch {
	case slot < clock.Slot:
		return fmt.Errorf("%w: at slot %d, requested %d", ErrWarpBackwards, clock.Slot, slot)
	case slot == clock.Slot:
		return nil
	}
	return s.advance(clock, slot)
}

func (s *Store) advance(clock Clock, target uint64) error {
	schedule := Get[EpochSchedule](s)
	if err := schedule.Validate(); err != nil {
		return err
	}

	start := clock.Slot + 1
	if target-clock.Slot > MaxEntries {
		start = target - MaxEntries + 1
	}

	hashes := Get[SlotHashes](s)
	evicted := 0
	for slot := start; ; slot++ {
		if hashes.Full() {
			evicted++
		}
		if err := hashes.InsertFront(SlotHashEntry{Slot: slot, Hash: blockhash.ForSlot(slot)}); err != nil {
			return err
		}
		if slot == target {
			break
		}
	}

	next := clock.advanceTo(target, schedule)
	s.Set(next)
	s.Set(hashes)

	monitoring.IncreaseBlockhashExpirations(int(target - start + 1))
	monitoring.IncreaseSlotHashEvictions(evicted)
	logx.Debug("SYSVAR", fmt.Sprintf("advanced clock %d -> %d (epoch %d), %d slot hashes", clock.Slot, next.Slot, next.Epoch, hashes.Len()))
	return nil
}
