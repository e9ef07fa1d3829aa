// Package sysvar holds the simulated sysvar state of one test harness: a
// typed store with one current value per kind, the bounded slot hash
// history and the slot transitions that advance the clock.
package sysvar

// Sysvar is implemented by the seven sysvar value types of this package and
// by nothing else.
type Sysvar interface {
	Kind() Kind
	clone() Sysvar
	marshal(w *encoder)
}

// Value constrains the generic accessors to the concrete sysvar types.
type Value interface {
	Clock | EpochSchedule | EpochRewards | LastRestartSlot | Rent | SlotHashes | StakeHistory
	Sysvar
}
