// Package fixture loads account snapshots from JSON files in the format
// written by `solana account -o json`, and writes them back out.
package fixture

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mezonai/svmharness/jsonx"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/monitoring"
	"github.com/mezonai/svmharness/types"
	"github.com/natefinch/atomic"
)

// LoadAccountFromFile loads a single keyed account object.
func LoadAccountFromFile(path string) (types.KeyedAccount, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.KeyedAccount{}, err
	}
	var keyed types.KeyedUiAccount
	if err := jsonx.UnmarshalJSONC(content, &keyed); err != nil {
		return types.KeyedAccount{}, fmt.Errorf("%s: %w", path, err)
	}
	acc, err := keyed.ToKeyedAccount()
	if err != nil {
		return types.KeyedAccount{}, fmt.Errorf("%s: %w", path, err)
	}
	monitoring.IncreaseFixtureAccounts(1)
	return acc, nil
}

// LoadAccountsFromFile loads a JSON array of keyed account objects.
func LoadAccountsFromFile(path string) ([]types.KeyedAccount, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var keyed []types.KeyedUiAccount
	if err := jsonx.UnmarshalJSONC(content, &keyed); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]types.KeyedAccount, 0, len(keyed))
	for _, k := range keyed {
		acc, err := k.ToKeyedAccount()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, acc)
	}
	monitoring.IncreaseFixtureAccounts(len(out))
	return out, nil
}

// LoadAccountsFromDir walks dir recursively and loads every .json file,
// either as an array or as a single account. Other files are skipped; the
// first file that parses as neither aborts the walk.
func LoadAccountsFromDir(dir string) ([]types.KeyedAccount, error) {
	var all []types.KeyedAccount
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		accounts, err := loadEither(path)
		if err != nil {
			return err
		}
		all = append(all, accounts...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logx.Debug("FIXTURE", fmt.Sprintf("loaded %d accounts from %s", len(all), dir))
	return all, nil
}

// Load accepts a mix of files and directories.
func Load(paths ...string) ([]types.KeyedAccount, error) {
	var all []types.KeyedAccount
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		var accounts []types.KeyedAccount
		if info.IsDir() {
			accounts, err = LoadAccountsFromDir(p)
		} else {
			accounts, err = loadEither(p)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, accounts...)
	}
	return all, nil
}

func loadEither(path string) ([]types.KeyedAccount, error) {
	accounts, err := LoadAccountsFromFile(path)
	if err == nil {
		return accounts, nil
	}
	acc, singleErr := LoadAccountFromFile(path)
	if singleErr != nil {
		return nil, singleErr
	}
	return []types.KeyedAccount{acc}, nil
}

// WriteAccountsFile atomically writes accounts as a JSON array.
func WriteAccountsFile(path string, accounts []types.KeyedAccount) error {
	out := make([]types.KeyedUiAccount, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, types.NewKeyedUiAccount(acc))
	}
	content, err := jsonx.MarshalIndent(out)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logx.Info("FIXTURE", fmt.Sprintf("wrote %d accounts to %s", len(accounts), path))
	return nil
}
