package sysvar

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
)

var le = binary.LittleEndian

type encoder struct {
	enc *bin.Encoder
	err error
}

func (w *encoder) u64(v uint64) {
	if w.err == nil {
		w.err = w.enc.WriteUint64(v, le)
	}
}

func (w *encoder) i64(v int64) { w.u64(uint64(v)) }

func (w *encoder) u8(v uint8) {
	if w.err == nil {
		w.err = w.enc.WriteUint8(v)
	}
}

func (w *encoder) boolean(v bool) {
	if w.err == nil {
		w.err = w.enc.WriteBool(v)
	}
}

func (w *encoder) hash(h solana.Hash) {
	if w.err == nil {
		w.err = w.enc.WriteBytes(h[:], false)
	}
}

func (w *encoder) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

type decoder struct {
	dec *bin.Decoder
	err error
}

func (r *decoder) u64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(le)
	r.err = err
	return v
}

func (r *decoder) i64() int64 { return int64(r.u64()) }

func (r *decoder) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	r.err = err
	return v
}

func (r *decoder) boolean() bool {
	if r.err != nil {
		return false
	}
	v, err := r.dec.ReadBool()
	r.err = err
	return v
}

func (r *decoder) hash() solana.Hash {
	if r.err != nil {
		return solana.Hash{}
	}
	b, err := r.dec.ReadNBytes(32)
	r.err = err
	var h solana.Hash
	copy(h[:], b)
	return h
}

func (c Clock) marshal(w *encoder) {
	w.u64(c.Slot)
	w.i64(c.EpochStartTimestamp)
	w.u64(c.Epoch)
	w.u64(c.LeaderScheduleEpoch)
	w.i64(c.UnixTimestamp)
}

func (e EpochSchedule) marshal(w *encoder) {
	w.u64(e.SlotsPerEpoch)
	w.u64(e.LeaderScheduleSlotOffset)
	w.boolean(e.Warmup)
	w.u64(e.FirstNormalEpoch)
	w.u64(e.FirstNormalSlot)
}

func (e EpochRewards) marshal(w *encoder) {
	if e.TotalPoints.BitLen() > 128 {
		w.fail(fmt.Errorf("epoch rewards total points %s exceed u128", e.TotalPoints.Dec()))
		return
	}
	w.u64(e.DistributionStartingBlockHeight)
	w.u64(e.NumPartitions)
	w.hash(e.ParentBlockhash)
	// u128 little endian: low limb then high limb
	w.u64(e.TotalPoints[0])
	w.u64(e.TotalPoints[1])
	w.u64(e.TotalRewards)
	w.u64(e.DistributedRewards)
	w.boolean(e.Active)
}

func (l LastRestartSlot) marshal(w *encoder) {
	w.u64(l.LastRestartSlot)
}

func (r Rent) marshal(w *encoder) {
	w.u64(r.LamportsPerByteYear)
	w.u64(math.Float64bits(r.ExemptionThreshold))
	w.u8(r.BurnPercent)
}

func (h SlotHashes) marshal(w *encoder) {
	w.u64(uint64(len(h.entries)))
	for _, e := range h.entries {
		w.u64(e.Slot)
		w.hash(e.Hash)
	}
}

func (h StakeHistory) marshal(w *encoder) {
	w.u64(uint64(len(h)))
	for _, e := range h {
		w.u64(e.Epoch)
		w.u64(e.Effective)
		w.u64(e.Activating)
		w.u64(e.Deactivating)
	}
}

// AccountSize is the data length of the sysvar account for kind. Variable
// length sysvars are padded to their maximum size.
func AccountSize(kind Kind) int {
	switch kind {
	case KindClock:
		return ClockSize
	case KindEpochSchedule:
		return EpochScheduleSize
	case KindEpochRewards:
		return EpochRewardsSize
	case KindLastRestartSlot:
		return LastRestartSlotSize
	case KindRent:
		return RentSize
	case KindSlotHashes:
		return SlotHashesAccountSize
	case KindStakeHistory:
		return StakeHistoryAccountSize
	default:
		return 0
	}
}

// Encode renders v in the runtime's canonical sysvar account layout.
func Encode(v Sysvar) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := &encoder{enc: bin.NewBinEncoder(buf)}
	v.marshal(w)
	if w.err != nil {
		return nil, fmt.Errorf("encode %s: %w", v.Kind(), w.err)
	}
	if pad := AccountSize(v.Kind()) - buf.Len(); pad > 0 {
		buf.Write(make([]byte, pad))
	}
	return buf.Bytes(), nil
}

// Decode parses sysvar account data for kind. Trailing padding is ignored.
func Decode(kind Kind, data []byte) (Sysvar, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("decode: unknown sysvar %s", kind)
	}
	need := AccountSize(kind)
	if kind == KindSlotHashes || kind == KindStakeHistory {
		need = 8
	}
	if len(data) < need {
		return nil, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrUnexpectedLength, kind, need, len(data))
	}
	r := &decoder{dec: bin.NewBinDecoder(data)}
	var out Sysvar
	switch kind {
	case KindClock:
		out = Clock{
			Slot:                r.u64(),
			EpochStartTimestamp: r.i64(),
			Epoch:               r.u64(),
			LeaderScheduleEpoch: r.u64(),
			UnixTimestamp:       r.i64(),
		}
	case KindEpochSchedule:
		out = EpochSchedule{
			SlotsPerEpoch:            r.u64(),
			LeaderScheduleSlotOffset: r.u64(),
			Warmup:                   r.boolean(),
			FirstNormalEpoch:         r.u64(),
			FirstNormalSlot:          r.u64(),
		}
	case KindEpochRewards:
		e := EpochRewards{
			DistributionStartingBlockHeight: r.u64(),
			NumPartitions:                   r.u64(),
			ParentBlockhash:                 r.hash(),
		}
		var points uint256.Int
		points[0] = r.u64()
		points[1] = r.u64()
		e.TotalPoints = points
		e.TotalRewards = r.u64()
		e.DistributedRewards = r.u64()
		e.Active = r.boolean()
		out = e
	case KindLastRestartSlot:
		out = LastRestartSlot{LastRestartSlot: r.u64()}
	case KindRent:
		out = Rent{
			LamportsPerByteYear: r.u64(),
			ExemptionThreshold:  math.Float64frombits(r.u64()),
			BurnPercent:         r.u8(),
		}
	case KindSlotHashes:
		n := r.u64()
		if n > MaxEntries {
			return nil, fmt.Errorf("%w: slot_hashes length %d exceeds %d", ErrUnexpectedLength, n, MaxEntries)
		}
		entries := make([]SlotHashEntry, 0, n)
		for i := uint64(0); i < n && r.err == nil; i++ {
			entries = append(entries, SlotHashEntry{Slot: r.u64(), Hash: r.hash()})
		}
		out = NewSlotHashes(entries)
	case KindStakeHistory:
		n := r.u64()
		if n > MaxStakeHistoryEntries {
			return nil, fmt.Errorf("%w: stake_history length %d exceeds %d", ErrUnexpectedLength, n, MaxStakeHistoryEntries)
		}
		h := make(StakeHistory, 0, n)
		for i := uint64(0); i < n && r.err == nil; i++ {
			var e EpochStakeHistory
			e.Epoch = r.u64()
			e.Effective = r.u64()
			e.Activating = r.u64()
			e.Deactivating = r.u64()
			h = append(h, e)
		}
		out = h
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnexpectedLength, kind, r.err)
	}
	return out, nil
}
