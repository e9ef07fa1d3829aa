// Package jsonrpc serves harness accounts over the account subset of the
// validator JSON-RPC API, so RPC clients can be pointed at a harness.
package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/gagliardetto/solana-go"
	"github.com/mezonai/svmharness/common"
	"github.com/mezonai/svmharness/errors"
	"github.com/mezonai/svmharness/exception"
	"github.com/mezonai/svmharness/jsonx"
	"github.com/mezonai/svmharness/logx"
	"github.com/mezonai/svmharness/types"
)

// AccountSource is what the server reads from. Calls are serialized by the
// server, so implementations need not be safe for concurrent use.
type AccountSource interface {
	Account(addr solana.PublicKey) (types.Account, bool)
	Slot() uint64
}

// --- Params/Results ---

type accountConfig struct {
	Encoding   string `json:"encoding,omitempty"`
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

// --- Server ---

type Server struct {
	addr       string
	mu         sync.Mutex
	source     AccountSource
	corsConfig CORSConfig
	httpServer *http.Server
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

func NewServer(addr string, source AccountSource) *Server {
	return &Server{addr: addr, source: source}
}

// SetCORSConfig allows configuring CORS settings
func (s *Server) SetCORSConfig(config CORSConfig) {
	s.corsConfig = config
}

// Handler returns the JSON-RPC endpoint with CORS handling applied.
func (s *Server) Handler() http.Handler {
	jh := jhttp.NewBridge(s.buildMethodMap(), &jhttp.BridgeOptions{Server: &jrpc2.ServerOptions{}})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		logx.Debug("JSONRPC", "request from ", extractClientIPFromRequest(r))
		jh.ServeHTTP(w, r)
	})
}

// Start binds the listen address and serves in the background. The bound
// address is returned, which matters when addr uses port 0.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", err
	}
	mux := http.NewServeMux()
	mux.Handle("/", s.Handler())
	s.httpServer = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	exception.SafeGo("JSONRPCServe", func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			logx.Error("JSONRPC", "server stopped: ", err)
		}
	})
	logx.Info("JSONRPC", "listening on ", ln.Addr().String())
	return ln.Addr().String(), nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Build jrpc2 method map
func (s *Server) buildMethodMap() handler.Map {
	return handler.Map{
		MethodGetAccountInfo: handler.New(func(ctx context.Context, params []json.RawMessage) (*accountInfoResult, error) {
			return s.rpcGetAccountInfo(params)
		}),
		MethodGetMultipleAccounts: handler.New(func(ctx context.Context, params []json.RawMessage) (*multipleAccountsResult, error) {
			return s.rpcGetMultipleAccounts(params)
		}),
		MethodGetSlot: handler.New(func(ctx context.Context) (uint64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.source.Slot(), nil
		}),
		MethodGetHealth: handler.New(func(ctx context.Context) (string, error) {
			return "ok", nil
		}),
	}
}

// --- Implementations ---

func (s *Server) rpcGetAccountInfo(params []json.RawMessage) (*accountInfoResult, error) {
	if len(params) < 1 || len(params) > 2 {
		return nil, invalidParams(errors.ErrCodeInvalidRequest, "expected [address, config?], got %d params", len(params))
	}
	var address string
	if err := jsonx.Unmarshal(params[0], &address); err != nil {
		return nil, invalidParams(errors.ErrCodeInvalidRequest, "invalid address param: %v", err)
	}
	addr, err := common.ParsePubkey(address)
	if err != nil {
		return nil, invalidParams(errors.ErrCodeInvalidAddress, "%v", err)
	}
	if err := checkConfig(params[1:]); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &accountInfoResult{
		Context: rpcContext{Slot: s.source.Slot()},
		Value:   s.lookup(addr),
	}, nil
}

func (s *Server) rpcGetMultipleAccounts(params []json.RawMessage) (*multipleAccountsResult, error) {
	if len(params) < 1 || len(params) > 2 {
		return nil, invalidParams(errors.ErrCodeInvalidRequest, "expected [addresses, config?], got %d params", len(params))
	}
	var addresses []string
	if err := jsonx.Unmarshal(params[0], &addresses); err != nil {
		return nil, invalidParams(errors.ErrCodeInvalidRequest, "invalid addresses param: %v", err)
	}
	if len(addresses) > MaxMultipleAccounts {
		return nil, invalidParams(errors.ErrCodeTooManyAccounts, errors.ErrMsgTooManyAccounts, MaxMultipleAccounts)
	}
	keys, err := common.ParsePubkeys(addresses)
	if err != nil {
		return nil, invalidParams(errors.ErrCodeInvalidAddress, "%v", err)
	}
	if err := checkConfig(params[1:]); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := &multipleAccountsResult{
		Context: rpcContext{Slot: s.source.Slot()},
		Value:   make([]*types.UiAccount, len(keys)),
	}
	for i, k := range keys {
		out.Value[i] = s.lookup(k)
	}
	return out, nil
}

func (s *Server) lookup(addr solana.PublicKey) *types.UiAccount {
	acc, ok := s.source.Account(addr)
	if !ok {
		return nil
	}
	ui := types.NewUiAccount(acc)
	return &ui
}

// checkConfig accepts an absent config or one asking for base64 data.
func checkConfig(rest []json.RawMessage) error {
	if len(rest) == 0 || string(rest[0]) == "null" {
		return nil
	}
	var cfg accountConfig
	if err := jsonx.Unmarshal(rest[0], &cfg); err != nil {
		return invalidParams(errors.ErrCodeInvalidRequest, "invalid config param: %v", err)
	}
	if cfg.Encoding != "" && cfg.Encoding != types.EncodingBase64 {
		return invalidParams(errors.ErrCodeUnsupportedEncoding, "%s, got %q", errors.ErrMsgUnsupportedEncoding, cfg.Encoding)
	}
	return nil
}

// invalidParams builds an InvalidParams error whose data carries a coded reason.
func invalidParams(code errors.RPCErrorCode, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return jrpc2.Errorf(jrpc2.InvalidParams, "%s", msg).WithData(errors.RPCError{Code: code, Message: msg})
}

func (s *Server) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	if len(s.corsConfig.AllowedOrigins) > 0 {
		origin := r.Header.Get("Origin")
		switch {
		case s.corsConfig.AllowedOrigins[0] == "*":
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(s.corsConfig.AllowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
	}
	if len(s.corsConfig.AllowedMethods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(s.corsConfig.AllowedMethods, ", "))
	}
	if len(s.corsConfig.AllowedHeaders) > 0 {
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(s.corsConfig.AllowedHeaders, ", "))
	}
	if s.corsConfig.MaxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", fmt.Sprintf("%d", s.corsConfig.MaxAge))
	}
}
