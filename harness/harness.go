// Package harness is the test environment programs run against: the sysvar
// store plus a flat account set.
package harness

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/mezonai/svmharness/config"
	"github.com/mezonai/svmharness/fixture"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/stringutil"
	"github.com/mezonai/svmharness/sysvar"
	"github.com/mezonai/svmharness/types"
)

// Harness is not safe for concurrent use.
type Harness struct {
	sysvars  *sysvar.Store
	accounts map[solana.PublicKey]types.Account
}

func New() *Harness {
	return &Harness{
		sysvars:  sysvar.NewStore(),
		accounts: make(map[solana.PublicKey]types.Account),
	}
}

// NewFromConfig applies the configured sysvar overrides to a default
// harness and loads the configured fixtures.
func NewFromConfig(cfg *config.HarnessConfig) (*Harness, error) {
	h := New()
	if cfg == nil {
		return h, nil
	}
	if cfg.EpochSchedule != nil {
		schedule := cfg.EpochSchedule.Schedule()
		if err := schedule.Validate(); err != nil {
			return nil, err
		}
		SetSysvar(h, schedule)
	}
	if cfg.Clock != nil {
		SetSysvar(h, *cfg.Clock)
	}
	if cfg.Rent != nil {
		SetSysvar(h, *cfg.Rent)
	}
	if cfg.LastRestartSlot != nil {
		SetSysvar(h, sysvar.LastRestartSlot{LastRestartSlot: *cfg.LastRestartSlot})
	}
	if len(cfg.Fixtures) > 0 {
		if err := h.LoadFixtures(cfg.Fixtures...); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// GetSysvar returns a copy of the current sysvar of type T.
func GetSysvar[T sysvar.Value](h *Harness) T {
	return sysvar.Get[T](h.sysvars)
}

// SetSysvar replaces the sysvar of type T.
func SetSysvar[T sysvar.Value](h *Harness, v T) {
	sysvar.Set(h.sysvars, v)
}

func (h *Harness) Sysvars() *sysvar.Store {
	return h.sysvars
}

func (h *Harness) Slot() uint64 {
	return GetSysvar[sysvar.Clock](h).Slot
}

// ExpireBlockhash advances one slot so the previous blockhash ages out.
func (h *Harness) ExpireBlockhash() error {
	return h.sysvars.ExpireBlockhash()
}

func (h *Harness) WarpToSlot(slot uint64) error {
	return h.sysvars.WarpToSlot(slot)
}

// MinimumBalanceForRentExemption never returns less than one lamport.
func (h *Harness) MinimumBalanceForRentExemption(dataLen int) uint64 {
	return max(1, GetSysvar[sysvar.Rent](h).MinimumBalance(dataLen))
}

// SetAccount stores acc under addr. Writing to a sysvar address decodes the
// data into the sysvar store instead.
func (h *Harness) SetAccount(addr solana.PublicKey, acc types.Account) error {
	if kind, ok := sysvar.KindFromID(addr); ok {
		if err := h.sysvars.SetFromAccount(kind, acc.Data); err != nil {
			return fmt.Errorf("sysvar %s: %w", kind, err)
		}
		return nil
	}
	h.accounts[addr] = acc.Clone()
	logx.Debug("HARNESS", "set account ", stringutil.ShortenKey(addr))
	return nil
}

func (h *Harness) AddAccounts(accounts []types.KeyedAccount) error {
	for _, k := range accounts {
		if err := h.SetAccount(k.Address, k.Account); err != nil {
			return err
		}
	}
	return nil
}

// Account looks up addr. Sysvar addresses always resolve to the encoded
// current value.
func (h *Harness) Account(addr solana.PublicKey) (types.Account, bool) {
	if kind, ok := sysvar.KindFromID(addr); ok {
		keyed, err := h.sysvars.Account(kind)
		if err != nil {
			logx.Error("HARNESS", fmt.Sprintf("encode sysvar %s: %v", kind, err))
			return types.Account{}, false
		}
		return keyed.Account, true
	}
	acc, ok := h.accounts[addr]
	if !ok {
		return types.Account{}, false
	}
	return acc.Clone(), true
}

// Accounts returns the non-sysvar accounts ordered by address.
func (h *Harness) Accounts() []types.KeyedAccount {
	out := make([]types.KeyedAccount, 0, len(h.accounts))
	for addr, acc := range h.accounts {
		out = append(out, types.KeyedAccount{Address: addr, Account: acc.Clone()})
	}
	slices.SortFunc(out, func(a, b types.KeyedAccount) int {
		return bytes.Compare(a.Address[:], b.Address[:])
	})
	return out
}

// LoadFixtures loads account files or directories into the harness.
func (h *Harness) LoadFixtures(paths ...string) error {
	accounts, err := fixture.Load(paths...)
	if err != nil {
		return err
	}
	if err := h.AddAccounts(accounts); err != nil {
		return err
	}
	logx.Info("HARNESS", fmt.Sprintf("loaded %d fixture accounts", len(accounts)))
	return nil
}
