package types

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mezonai/svmharness/common"
)

const EncodingBase64 = "base64"

// Account is the runtime view of an account snapshot.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
	Space      uint64
}

// Clone returns a deep copy so callers can mutate Data freely.
func (a Account) Clone() Account {
	out := a
	if a.Data != nil {
		out.Data = bytes.Clone(a.Data)
	}
	return out
}

func (a Account) Equal(b Account) bool {
	return a.Lamports == b.Lamports &&
		bytes.Equal(a.Data, b.Data) &&
		a.Owner == b.Owner &&
		a.Executable == b.Executable &&
		a.RentEpoch == b.RentEpoch &&
		a.Space == b.Space
}

type KeyedAccount struct {
	Address solana.PublicKey
	Account Account
}

// UiAccount is the account object used by `solana account -o json` and by the
// JSON-RPC account methods with base64 encoding.
type UiAccount struct {
	Lamports   uint64   `json:"lamports"`
	Data       []string `json:"data"`
	Owner      string   `json:"owner"`
	Executable bool     `json:"executable"`
	RentEpoch  uint64   `json:"rentEpoch"`
	Space      uint64   `json:"space"`
}

type KeyedUiAccount struct {
	Pubkey  string    `json:"pubkey"`
	Account UiAccount `json:"account"`
}

// ToAccount decodes the owner and data. Data in any encoding other than
// base64 is dropped.
func (u UiAccount) ToAccount() (Account, error) {
	owner, err := common.ParsePubkey(u.Owner)
	if err != nil {
		return Account{}, fmt.Errorf("owner: %w", err)
	}
	var data []byte
	if len(u.Data) == 2 && u.Data[1] == EncodingBase64 {
		data, err = base64.StdEncoding.DecodeString(u.Data[0])
		if err != nil {
			return Account{}, fmt.Errorf("base64 decode error: %w", err)
		}
	} else {
		data = []byte{}
	}
	return Account{
		Lamports:   u.Lamports,
		Data:       data,
		Owner:      owner,
		Executable: u.Executable,
		RentEpoch:  u.RentEpoch,
		Space:      u.Space,
	}, nil
}

func (k KeyedUiAccount) ToKeyedAccount() (KeyedAccount, error) {
	addr, err := common.ParsePubkey(k.Pubkey)
	if err != nil {
		return KeyedAccount{}, fmt.Errorf("pubkey: %w", err)
	}
	acc, err := k.Account.ToAccount()
	if err != nil {
		return KeyedAccount{}, fmt.Errorf("account %s: %w", k.Pubkey, err)
	}
	return KeyedAccount{Address: addr, Account: acc}, nil
}

// NewUiAccount renders an account in the base64 JSON shape.
func NewUiAccount(a Account) UiAccount {
	space := a.Space
	if space == 0 {
		space = uint64(len(a.Data))
	}
	return UiAccount{
		Lamports:   a.Lamports,
		Data:       []string{base64.StdEncoding.EncodeToString(a.Data), EncodingBase64},
		Owner:      a.Owner.String(),
		Executable: a.Executable,
		RentEpoch:  a.RentEpoch,
		Space:      space,
	}
}

func NewKeyedUiAccount(k KeyedAccount) KeyedUiAccount {
	return KeyedUiAccount{Pubkey: k.Address.String(), Account: NewUiAccount(k.Account)}
}
