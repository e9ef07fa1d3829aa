package sysvar

import (
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/gagliardetto/solana-go"
)

const (
	// MaxEntries is the number of recent slots retained, matching the
	// production blockhash expiry window.
	MaxEntries = 512

	SlotHashesAccountSize = 8 + MaxEntries*40
)

// SlotHashEntry represents a slot and its corresponding hash
type SlotHashEntry struct {
	Slot uint64      `json:"slot"`
	Hash solana.Hash `json:"hash"`
}

// SlotHashes is a newest-first history holding at most MaxEntries entries
// with strictly decreasing slots. Inserts never write into storage shared
// with an earlier copy, so plain copies stay independent.
type SlotHashes struct {
	entries []SlotHashEntry
}

// DefaultSlotHashes is seeded with slot 0 and the zero hash.
func DefaultSlotHashes() SlotHashes {
	return SlotHashes{entries: []SlotHashEntry{{Slot: 0}}}
}

// NewSlotHashes builds a history from arbitrary entries: newest first,
// duplicate slots collapsed to their first occurrence, truncated to MaxEntries.
func NewSlotHashes(entries []SlotHashEntry) SlotHashes {
	if len(entries) == 0 {
		return SlotHashes{}
	}
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b SlotHashEntry) int {
		return cmp.Compare(b.Slot, a.Slot)
	})
	sorted = slices.CompactFunc(sorted, func(a, b SlotHashEntry) bool {
		return a.Slot == b.Slot
	})
	if len(sorted) > MaxEntries {
		sorted = sorted[:MaxEntries]
	}
	return SlotHashes{entries: slices.Clip(sorted)}
}

func (SlotHashes) Kind() Kind { return KindSlotHashes }

func (h SlotHashes) clone() Sysvar { return h.Clone() }

func (h SlotHashes) Clone() SlotHashes {
	return SlotHashes{entries: slices.Clone(h.entries)}
}

func (h SlotHashes) Len() int { return len(h.entries) }

func (h SlotHashes) Full() bool { return len(h.entries) == MaxEntries }

// First returns the newest entry.
func (h SlotHashes) First() (SlotHashEntry, bool) {
	if len(h.entries) == 0 {
		return SlotHashEntry{}, false
	}
	return h.entries[0], true
}

// Last returns the oldest entry, the next one to be evicted.
func (h SlotHashes) Last() (SlotHashEntry, bool) {
	if len(h.entries) == 0 {
		return SlotHashEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries copies the history out, newest first.
func (h SlotHashes) Entries() []SlotHashEntry {
	return slices.Clone(h.entries)
}

func (h SlotHashes) GetHash(slot uint64) (solana.Hash, bool) {
	i := sort.Search(len(h.entries), func(i int) bool { return h.entries[i].Slot <= slot })
	if i < len(h.entries) && h.entries[i].Slot == slot {
		return h.entries[i].Hash, true
	}
	return solana.Hash{}, false
}

// InsertFront prepends entry. The slot must be newer than the current front;
// once the history is full the oldest entry is dropped.
func (h *SlotHashes) InsertFront(entry SlotHashEntry) error {
	if front, ok := h.First(); ok && front.Slot >= entry.Slot {
		return fmt.Errorf("%w: slot %d is not newer than %d", ErrOutOfOrderSlot, entry.Slot, front.Slot)
	}
	keep := min(len(h.entries), MaxEntries-1)
	next := make([]SlotHashEntry, 0, keep+1)
	next = append(next, entry)
	h.entries = append(next, h.entries[:keep]...)
	return nil
}
