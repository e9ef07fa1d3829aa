// Package rpcfetch pulls account snapshots from a validator over JSON-RPC.
package rpcfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/gagliardetto/solana-go"
	"github.com/mezonai/svmharness/config"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/monitoring"
	"github.com/mezonai/svmharness/stringutil"
	"github.com/mezonai/svmharness/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	methodGetAccountInfo      = "getAccountInfo"
	methodGetMultipleAccounts = "getMultipleAccounts"
)

// RPCError is an error object returned by the remote node.
type RPCError struct {
	Method  string
	Code    jrpc2.Code
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

type accountConfig struct {
	Encoding   string `json:"encoding"`
	Commitment string `json:"commitment,omitempty"`
}

type rpcContext struct {
	Slot uint64 `json:"slot"`
}

type accountInfoResult struct {
	Context rpcContext       `json:"context"`
	Value   *types.UiAccount `json:"value"`
}

type multipleAccountsResult struct {
	Context rpcContext         `json:"context"`
	Value   []*types.UiAccount `json:"value"`
}

type Client struct {
	cfg     config.RPCConfig
	rpc     *jrpc2.Client
	limiter *rate.Limiter
}

// NewClient validates cfg and opens a JSON-RPC client over HTTP.
func NewClient(cfg *config.RPCConfig) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultRPCConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	ch := jhttp.NewChannel(cfg.URL, &jhttp.ChannelOptions{
		Client: &http.Client{Timeout: cfg.Timeout()},
	})
	return &Client{
		cfg:     *cfg,
		rpc:     jrpc2.NewClient(ch, nil),
		limiter: rate.NewLimiter(limit, max(1, cfg.Concurrency)),
	}, nil
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

func (c *Client) accountConfig() accountConfig {
	return accountConfig{Encoding: types.EncodingBase64, Commitment: c.cfg.Commitment}
}

// call waits for the rate limiter, applies the request timeout and records
// the outcome.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	start := time.Now()
	err := c.rpc.CallResult(ctx, method, params, result)
	var jerr *jrpc2.Error
	switch {
	case err == nil:
		monitoring.RecordRPCRequest(method, monitoring.RPCStatusOK, time.Since(start))
		return nil
	case errors.As(err, &jerr):
		monitoring.RecordRPCRequest(method, monitoring.RPCStatusRPCError, time.Since(start))
		return &RPCError{Method: method, Code: jerr.Code, Message: jerr.Message, Data: jerr.Data}
	default:
		monitoring.RecordRPCRequest(method, monitoring.RPCStatusFailed, time.Since(start))
		return fmt.Errorf("%s: %w", method, err)
	}
}

// GetAccount fetches one account. A missing account yields nil and no error.
func (c *Client) GetAccount(ctx context.Context, addr solana.PublicKey) (*types.Account, error) {
	var res accountInfoResult
	if err := c.call(ctx, methodGetAccountInfo, []any{addr.String(), c.accountConfig()}, &res); err != nil {
		return nil, err
	}
	if res.Value == nil {
		return nil, nil
	}
	acc, err := res.Value.ToAccount()
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", addr, err)
	}
	return &acc, nil
}

// GetMultipleAccounts fetches addrs in batches of the configured size, with
// up to Concurrency batches in flight. The result is index aligned with
// addrs and holds nil for missing accounts.
func (c *Client) GetMultipleAccounts(ctx context.Context, addrs []solana.PublicKey) ([]*types.Account, error) {
	out := make([]*types.Account, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for start := 0; start < len(addrs); start += c.cfg.BatchSize {
		end := min(start+c.cfg.BatchSize, len(addrs))
		g.Go(func() error {
			return c.fetchBatch(gctx, addrs[start:end], out[start:end])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logx.Debug("RPCFETCH", fmt.Sprintf("fetched %d accounts from %s", len(addrs), c.cfg.URL))
	return out, nil
}

func (c *Client) fetchBatch(ctx context.Context, addrs []solana.PublicKey, dst []*types.Account) error {
	keys := make([]string, len(addrs))
	for i, a := range addrs {
		keys[i] = a.String()
	}
	var res multipleAccountsResult
	if err := c.call(ctx, methodGetMultipleAccounts, []any{keys, c.accountConfig()}, &res); err != nil {
		return err
	}
	if len(res.Value) != len(addrs) {
		return fmt.Errorf("%s: expected %d accounts, got %d", methodGetMultipleAccounts, len(addrs), len(res.Value))
	}
	for i, v := range res.Value {
		if v == nil {
			continue
		}
		acc, err := v.ToAccount()
		if err != nil {
			return fmt.Errorf("account %s: %w", addrs[i], err)
		}
		dst[i] = &acc
	}
	return nil
}

// FetchAccounts fetches addrs and substitutes an empty account for any that
// do not exist.
func (c *Client) FetchAccounts(ctx context.Context, addrs []solana.PublicKey) ([]types.KeyedAccount, error) {
	return c.FetchAccountsWithDefault(ctx, addrs, func(solana.PublicKey) types.Account {
		return types.Account{Data: []byte{}}
	})
}

// FetchAccountsWithDefault fetches addrs and calls fallback for each
// missing one.
func (c *Client) FetchAccountsWithDefault(ctx context.Context, addrs []solana.PublicKey, fallback func(solana.PublicKey) types.Account) ([]types.KeyedAccount, error) {
	accounts, err := c.GetMultipleAccounts(ctx, addrs)
	if err != nil {
		return nil, err
	}
	out := make([]types.KeyedAccount, len(addrs))
	missing := 0
	for i, addr := range addrs {
		out[i].Address = addr
		if accounts[i] == nil {
			logx.Debug("RPCFETCH", "account not found: ", stringutil.ShortenKey(addr))
			out[i].Account = fallback(addr)
			missing++
			continue
		}
		out[i].Account = *accounts[i]
	}
	if missing > 0 {
		logx.Warn("RPCFETCH", fmt.Sprintf("%d of %d accounts not found, using defaults", missing, len(addrs)))
	}
	return out, nil
}
