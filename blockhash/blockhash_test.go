package blockhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSlotDeterministic(t *testing.T) {
	assert.Equal(t, ForSlot(42), ForSlot(42))
	assert.False(t, ForSlot(0).IsZero())
}

func TestForSlotDistinct(t *testing.T) {
	seen := make(map[[32]byte]uint64)
	for slot := uint64(0); slot < 2048; slot++ {
		h := ForSlot(slot)
		if prev, ok := seen[h]; ok {
			t.Fatalf("slot %d collides with slot %d", slot, prev)
		}
		seen[h] = slot
	}
}
