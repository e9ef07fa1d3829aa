package sysvar

import "errors"

var (
	// ErrOutOfOrderSlot is returned when a slot hash is not newer than the current front entry.
	ErrOutOfOrderSlot = errors.New("slot hash entry out of order")
	// ErrSlotOverflow means the clock cannot advance any further.
	ErrSlotOverflow         = errors.New("slot counter overflow")
	ErrWarpBackwards        = errors.New("cannot warp to an earlier slot")
	ErrInvalidEpochSchedule = errors.New("invalid epoch schedule")
	ErrUnexpectedLength     = errors.New("unexpected sysvar data length")
)
