package sysvar

import (
	"slices"
	"sort"
)

const (
	MaxStakeHistoryEntries  = 512
	StakeHistoryAccountSize = 8 + MaxStakeHistoryEntries*32
)

type StakeHistoryEntry struct {
	Effective    uint64 `json:"effective"`
	Activating   uint64 `json:"activating"`
	Deactivating uint64 `json:"deactivating"`
}

type EpochStakeHistory struct {
	Epoch uint64 `json:"epoch"`
	StakeHistoryEntry
}

// StakeHistory is kept newest epoch first.
type StakeHistory []EpochStakeHistory

func DefaultStakeHistory() StakeHistory {
	return StakeHistory{}
}

func (StakeHistory) Kind() Kind { return KindStakeHistory }

func (h StakeHistory) clone() Sysvar {
	if h == nil {
		return StakeHistory{}
	}
	return slices.Clone(h)
}

// Add records entry for epoch, replacing an existing record for the same
// epoch, and drops the oldest records beyond MaxStakeHistoryEntries.
func (h *StakeHistory) Add(epoch uint64, entry StakeHistoryEntry) {
	items := *h
	i := sort.Search(len(items), func(i int) bool { return items[i].Epoch <= epoch })
	rec := EpochStakeHistory{Epoch: epoch, StakeHistoryEntry: entry}
	if i < len(items) && items[i].Epoch == epoch {
		items[i] = rec
	} else {
		items = slices.Insert(items, i, rec)
	}
	if len(items) > MaxStakeHistoryEntries {
		items = items[:MaxStakeHistoryEntries]
	}
	*h = items
}

func (h StakeHistory) Get(epoch uint64) (StakeHistoryEntry, bool) {
	i := sort.Search(len(h), func(i int) bool { return h[i].Epoch <= epoch })
	if i < len(h) && h[i].Epoch == epoch {
		return h[i].StakeHistoryEntry, true
	}
	return StakeHistoryEntry{}, false
}
