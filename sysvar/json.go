package sysvar

import "github.com/mezonai/svmharness/jsonx"

// MarshalJSON renders the history as its newest-first entry list.
func (h SlotHashes) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(h.Entries())
}

func (h *SlotHashes) UnmarshalJSON(data []byte) error {
	var entries []SlotHashEntry
	if err := jsonx.Unmarshal(data, &entries); err != nil {
		return err
	}
	*h = NewSlotHashes(entries)
	return nil
}

// MarshalJSON writes TotalPoints as a decimal string.
func (e EpochRewards) MarshalJSON() ([]byte, error) {
	type plain EpochRewards
	return jsonx.Marshal(struct {
		plain
		TotalPoints string `json:"total_points"`
	}{plain(e), e.TotalPoints.Dec()})
}
