package blockhash

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

var domain = []byte("svmharness/blockhash")

// ForSlot derives the synthetic block hash recorded for slot. The same slot
// always yields the same hash.
func ForSlot(slot uint64) solana.Hash {
	h := sha256.New()
	h.Write(domain)
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, slot)
	h.Write(buf)
	var out solana.Hash
	copy(out[:], h.Sum(nil))
	return out
}
