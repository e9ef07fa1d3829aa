package cmd

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mezonai/svmharness/fixture"
	"github.com/mezonai/svmharness/harness"
	"github.com/mezonai/svmharness/jsonrpc"
	"github.com/mezonai/svmharness/jsonx"
	"github.com/mezonai/svmharness/sysvar"
	"github.com/mezonai/svmharness/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestSysvarsCommand(t *testing.T) {
	out := runCLI(t, "sysvars", "--warp", "100", "--expire", "3", "--accounts=false")

	var values struct {
		Clock      sysvar.Clock      `json:"clock"`
		SlotHashes sysvar.SlotHashes `json:"slot_hashes"`
	}
	require.NoError(t, jsonx.Unmarshal([]byte(out), &values))
	assert.Equal(t, uint64(103), values.Clock.Slot)
	first, ok := values.SlotHashes.First()
	require.True(t, ok)
	assert.Equal(t, uint64(103), first.Slot)
	assert.Equal(t, 104, values.SlotHashes.Len())
}

func TestSysvarsCommandAccounts(t *testing.T) {
	out := runCLI(t, "sysvars", "--warp", "0", "--expire", "0", "--accounts")

	var accounts []types.KeyedUiAccount
	require.NoError(t, jsonx.Unmarshal([]byte(out), &accounts))
	require.Len(t, accounts, len(sysvar.Kinds()))
	for i, k := range sysvar.Kinds() {
		assert.Equal(t, k.ID().String(), accounts[i].Pubkey)
		assert.Equal(t, sysvar.Owner.String(), accounts[i].Account.Owner)
	}
}

func TestFixturesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, fixture.WriteAccountsFile(path, []types.KeyedAccount{
		{Address: solana.TokenProgramID, Account: types.Account{Lamports: 77, Data: []byte{1, 2}}},
	}))

	out := runCLI(t, "fixtures", path)
	assert.Contains(t, out, "ADDRESS")
	assert.Contains(t, out, solana.TokenProgramID.String())
	assert.Contains(t, out, "77")
}

func TestFetchCommand(t *testing.T) {
	h := harness.New()
	require.NoError(t, h.SetAccount(solana.TokenProgramID, types.Account{Lamports: 5, Data: []byte{9}}))
	ts := httptest.NewServer(jsonrpc.NewServer("", h).Handler())
	t.Cleanup(ts.Close)

	outPath := filepath.Join(t.TempDir(), "fetched.json")
	runCLI(t, "fetch", "--url", ts.URL, "--out", outPath,
		solana.TokenProgramID.String(), sysvar.KindClock.ID().String(), solana.SystemProgramID.String())

	accounts, err := fixture.LoadAccountsFromFile(outPath)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, uint64(5), accounts[0].Account.Lamports)
	assert.Equal(t, sysvar.Owner, accounts[1].Account.Owner)
	assert.Len(t, accounts[1].Account.Data, sysvar.ClockSize)
	// missing accounts come back empty
	assert.Equal(t, uint64(0), accounts[2].Account.Lamports)
}
