package sysvar

type LastRestartSlot struct {
	LastRestartSlot uint64 `json:"last_restart_slot" yaml:"last_restart_slot"`
}

const LastRestartSlotSize = 8

func DefaultLastRestartSlot() LastRestartSlot {
	return LastRestartSlot{}
}

func (LastRestartSlot) Kind() Kind { return KindLastRestartSlot }

func (l LastRestartSlot) clone() Sysvar { return l }
