package sysvar

import (
	"fmt"

	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/monitoring"
	"github.com/mezonai/svmharness/types"
)

// Store holds exactly one current value per sysvar kind. It is not safe for
// concurrent use; every harness owns its own Store.
type Store struct {
	values [kindCount]Sysvar
}

// NewStore returns a store populated with the default value of every kind.
func NewStore() *Store {
	s := &Store{}
	for _, k := range Kinds() {
		s.values[k] = k.Default()
	}
	return s
}

// Get returns a copy of the current value for kind, falling back to the
// kind's default when nothing was stored. Unknown kinds yield nil.
func (s *Store) Get(kind Kind) Sysvar {
	if !kind.Valid() {
		return nil
	}
	v := s.values[kind]
	if v == nil {
		return kind.Default()
	}
	return v.clone()
}

// Set replaces the current value for v's kind with a copy of v. A nil v is
// ignored.
func (s *Store) Set(v Sysvar) {
	if v == nil {
		return
	}
	kind := v.Kind()
	s.values[kind] = v.clone()
	monitoring.RecordSysvarWrite(kind.String())
	logx.Debug("SYSVAR", fmt.Sprintf("set %s", kind))
}

// Get returns the current value of the sysvar type T.
func Get[T Value](s *Store) T {
	var zero T
	v, ok := s.Get(zero.Kind()).(T)
	if !ok {
		return zero.Kind().Default().(T)
	}
	return v
}

// Set overwrites the current value of the sysvar type T.
func Set[T Value](s *Store, v T) {
	s.Set(v)
}

// Account renders kind as the sysvar account a program would read.
func (s *Store) Account(kind Kind) (types.KeyedAccount, error) {
	v := s.Get(kind)
	if v == nil {
		return types.KeyedAccount{}, fmt.Errorf("unknown sysvar %s", kind)
	}
	data, err := Encode(v)
	if err != nil {
		return types.KeyedAccount{}, err
	}
	rent := Get[Rent](s)
	return types.KeyedAccount{
		Address: kind.ID(),
		Account: types.Account{
			Lamports: max(1, rent.MinimumBalance(len(data))),
			Data:     data,
			Owner:    Owner,
			Space:    uint64(len(data)),
		},
	}, nil
}

// Accounts renders every sysvar in kind order.
func (s *Store) Accounts() ([]types.KeyedAccount, error) {
	out := make([]types.KeyedAccount, 0, kindCount)
	for _, k := range Kinds() {
		acc, err := s.Account(k)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

// SetFromAccount decodes sysvar account data and stores it under kind.
func (s *Store) SetFromAccount(kind Kind, data []byte) error {
	v, err := Decode(kind, data)
	if err != nil {
		return err
	}
	s.Set(v)
	return nil
}
