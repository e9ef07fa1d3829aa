package sysvar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mezonai/svmharness/blockhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillSlotHashes(t *testing.T, from, to uint64) SlotHashes {
	t.Helper()
	var h SlotHashes
	for slot := from; slot <= to; slot++ {
		require.NoError(t, h.InsertFront(SlotHashEntry{Slot: slot, Hash: blockhash.ForSlot(slot)}))
	}
	return h
}

func TestInsertFrontLength(t *testing.T) {
	for _, calls := range []uint64{1, 10, MaxEntries - 1, MaxEntries, MaxEntries + 1, 1500} {
		h := fillSlotHashes(t, 1, calls)
		assert.Equal(t, int(min(calls, MaxEntries)), h.Len(), "calls=%d", calls)

		first, ok := h.First()
		require.True(t, ok)
		assert.Equal(t, calls, first.Slot)
	}
}

func TestInsertFrontRejectsOutOfOrder(t *testing.T) {
	h := fillSlotHashes(t, 1, 5)
	before := h.Entries()

	for _, slot := range []uint64{5, 3, 0} {
		err := h.InsertFront(SlotHashEntry{Slot: slot})
		require.ErrorIs(t, err, ErrOutOfOrderSlot)
	}

	if diff := cmp.Diff(before, h.Entries()); diff != "" {
		t.Fatalf("history changed after rejected inserts (-before +after):\n%s", diff)
	}
}

func TestEvictionDropsOldest(t *testing.T) {
	h := fillSlotHashes(t, 1, 600)

	require.True(t, h.Full())
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, uint64(600-MaxEntries+1), last.Slot)

	_, ok = h.GetHash(88)
	assert.False(t, ok)
	hash, ok := h.GetHash(89)
	require.True(t, ok)
	assert.Equal(t, blockhash.ForSlot(89), hash)

	entries := h.Entries()
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].Slot-1, entries[i].Slot)
	}
}

func TestGetHashWithGaps(t *testing.T) {
	h := NewSlotHashes([]SlotHashEntry{
		{Slot: 10, Hash: blockhash.ForSlot(10)},
		{Slot: 3, Hash: blockhash.ForSlot(3)},
		{Slot: 7, Hash: blockhash.ForSlot(7)},
		{Slot: 7, Hash: blockhash.ForSlot(70)},
		{Slot: 1, Hash: blockhash.ForSlot(1)},
	})

	slots := make([]uint64, 0, h.Len())
	for _, e := range h.Entries() {
		slots = append(slots, e.Slot)
	}
	assert.Equal(t, []uint64{10, 7, 3, 1}, slots)

	hash, ok := h.GetHash(7)
	require.True(t, ok)
	assert.Equal(t, blockhash.ForSlot(7), hash, "first duplicate should win")

	for _, missing := range []uint64{0, 2, 5, 11} {
		_, ok := h.GetHash(missing)
		assert.False(t, ok, "slot %d", missing)
	}
}

func TestNewSlotHashesTruncatesToNewest(t *testing.T) {
	entries := make([]SlotHashEntry, 0, 700)
	for slot := uint64(1); slot <= 700; slot++ {
		entries = append(entries, SlotHashEntry{Slot: slot})
	}
	h := NewSlotHashes(entries)

	assert.Equal(t, MaxEntries, h.Len())
	first, _ := h.First()
	last, _ := h.Last()
	assert.Equal(t, uint64(700), first.Slot)
	assert.Equal(t, uint64(700-MaxEntries+1), last.Slot)
}

func TestEmptySlotHashes(t *testing.T) {
	var h SlotHashes
	assert.Zero(t, h.Len())
	_, ok := h.First()
	assert.False(t, ok)
	_, ok = h.GetHash(0)
	assert.False(t, ok)
	assert.Empty(t, h.Entries())
}

func TestCloneIsIndependent(t *testing.T) {
	h := fillSlotHashes(t, 1, 3)
	c := h.Clone()
	require.NoError(t, c.InsertFront(SlotHashEntry{Slot: 4}))

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 4, c.Len())
}

func TestPlainCopySurvivesInsertOnFullHistory(t *testing.T) {
	h := fillSlotHashes(t, 1, MaxEntries)
	require.True(t, h.Full())

	saved := h
	want := h.Entries()
	require.NoError(t, h.InsertFront(SlotHashEntry{Slot: MaxEntries + 1, Hash: blockhash.ForSlot(MaxEntries + 1)}))

	assert.Equal(t, want, saved.Entries())
	hash, ok := saved.GetHash(1)
	require.True(t, ok)
	assert.Equal(t, blockhash.ForSlot(1), hash)
	first, _ := saved.First()
	assert.Equal(t, uint64(MaxEntries), first.Slot)

	_, ok = h.GetHash(1)
	assert.False(t, ok)
}

func TestEqualHistoriesCompareEqual(t *testing.T) {
	h := fillSlotHashes(t, 1, 600)
	assert.Equal(t, NewSlotHashes(h.Entries()), h)
	assert.Equal(t, h.Clone(), h)

	assert.Equal(t, NewSlotHashes(nil), SlotHashes{})
	assert.Equal(t, DefaultSlotHashes(), NewSlotHashes([]SlotHashEntry{{Slot: 0}}))
}
