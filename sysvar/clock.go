package sysvar

// Clock mirrors the runtime clock sysvar. Field order is the wire order.
type Clock struct {
	Slot                uint64 `json:"slot" yaml:"slot"`
	EpochStartTimestamp int64  `json:"epoch_start_timestamp" yaml:"epoch_start_timestamp"`
	Epoch               uint64 `json:"epoch" yaml:"epoch"`
	LeaderScheduleEpoch uint64 `json:"leader_schedule_epoch" yaml:"leader_schedule_epoch"`
	UnixTimestamp       int64  `json:"unix_timestamp" yaml:"unix_timestamp"`
}

const ClockSize = 40

func DefaultClock() Clock {
	return Clock{}
}

func (Clock) Kind() Kind { return KindClock }

func (c Clock) clone() Sysvar { return c }

// advanceTo moves the clock to slot under schedule. Timestamps are kept,
// except that crossing into another epoch restarts the epoch at the current
// unix timestamp.
func (c Clock) advanceTo(slot uint64, schedule EpochSchedule) Clock {
	next := c
	next.Slot = slot
	next.Epoch = schedule.GetEpoch(slot)
	next.LeaderScheduleEpoch = schedule.GetLeaderScheduleEpoch(slot)
	if next.Epoch != schedule.GetEpoch(c.Slot) {
		next.EpochStartTimestamp = c.UnixTimestamp
	}
	return next
}
