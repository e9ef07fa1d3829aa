package jsonrpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mezonai/svmharness/errors"
	"github.com/mezonai/svmharness/jsonx"
	"github.com/mezonai/svmharness/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource struct {
	slot     uint64
	accounts map[solana.PublicKey]types.Account
}

func (m *mapSource) Account(addr solana.PublicKey) (types.Account, bool) {
	acc, ok := m.accounts[addr]
	return acc, ok
}

func (m *mapSource) Slot() uint64 { return m.slot }

var (
	knownAddr = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	otherAddr = solana.MustPublicKeyFromBase58("11111111111111111111111111111112")
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	src := &mapSource{
		slot: 77,
		accounts: map[solana.PublicKey]types.Account{
			knownAddr: {
				Lamports: 5,
				Data:     []byte{1, 2, 3},
				Owner:    solana.TokenProgramID,
			},
		},
	}
	srv := NewServer("", src)
	srv.SetCORSConfig(CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 60})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Code errors.RPCErrorCode `json:"code"`
	} `json:"data"`
}

func call(t *testing.T, url, body string) rpcResponse {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out rpcResponse
	require.NoError(t, jsonx.Unmarshal(raw, &out), string(raw))
	return out
}

func TestGetAccountInfo(t *testing.T) {
	ts := newTestServer(t)

	resp := call(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"getAccountInfo","params":["`+knownAddr.String()+`",{"encoding":"base64"}]}`)
	require.Nil(t, resp.Error)

	var result accountInfoResult
	require.NoError(t, jsonx.Unmarshal(resp.Result, &result))
	assert.Equal(t, uint64(77), result.Context.Slot)
	require.NotNil(t, result.Value)
	assert.Equal(t, uint64(5), result.Value.Lamports)
	assert.Equal(t, []string{"AQID", "base64"}, result.Value.Data)
	assert.Equal(t, solana.TokenProgramID.String(), result.Value.Owner)
}

func TestGetAccountInfoMissingIsNull(t *testing.T) {
	ts := newTestServer(t)

	resp := call(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"getAccountInfo","params":["`+otherAddr.String()+`"]}`)
	require.Nil(t, resp.Error)
	assert.True(t, bytes.Contains(resp.Result, []byte(`"value":null`)), string(resp.Result))
}

func TestGetMultipleAccounts(t *testing.T) {
	ts := newTestServer(t)

	resp := call(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"getMultipleAccounts","params":[["`+otherAddr.String()+`","`+knownAddr.String()+`"],{"encoding":"base64","commitment":"confirmed"}]}`)
	require.Nil(t, resp.Error)

	var result multipleAccountsResult
	require.NoError(t, jsonx.Unmarshal(resp.Result, &result))
	require.Len(t, result.Value, 2)
	assert.Nil(t, result.Value[0])
	require.NotNil(t, result.Value[1])
	assert.Equal(t, uint64(5), result.Value[1].Lamports)
}

func TestInvalidParams(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		code errors.RPCErrorCode
	}{
		{"bad address", `{"jsonrpc":"2.0","id":1,"method":"getAccountInfo","params":["not-a-key"]}`, errors.ErrCodeInvalidAddress},
		{"no params", `{"jsonrpc":"2.0","id":1,"method":"getAccountInfo","params":[]}`, errors.ErrCodeInvalidRequest},
		{"unsupported encoding", `{"jsonrpc":"2.0","id":1,"method":"getAccountInfo","params":["` + knownAddr.String() + `",{"encoding":"jsonParsed"}]}`, errors.ErrCodeUnsupportedEncoding},
		{"too many addresses", `{"jsonrpc":"2.0","id":1,"method":"getMultipleAccounts","params":[[` + strings.Repeat(`"`+knownAddr.String()+`",`, MaxMultipleAccounts) + `"` + knownAddr.String() + `"]]}`, errors.ErrCodeTooManyAccounts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, ts.URL, tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, -32602, resp.Error.Code)
			assert.Equal(t, tt.code, resp.Error.Data.Code)
		})
	}
}

func TestGetSlot(t *testing.T) {
	ts := newTestServer(t)

	resp := call(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"getSlot"}`)
	require.Nil(t, resp.Error)
	assert.Equal(t, "77", string(resp.Result))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "60", resp.Header.Get("Access-Control-Max-Age"))
}

func TestCORSFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CORS_ALLOWED_METHODS", "")
	t.Setenv("CORS_ALLOWED_HEADERS", "")
	t.Setenv("CORS_MAX_AGE", "")

	cfg, ok := CORSFromEnv()
	require.True(t, ok)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	_, ok = CORSFromEnv()
	assert.False(t, ok)
}
