package jsonrpc

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/mezonai/svmharness/logx"
)

// JSON-RPC method names, as served by a validator.
const (
	MethodGetAccountInfo      = "getAccountInfo"
	MethodGetMultipleAccounts = "getMultipleAccounts"
	MethodGetSlot             = "getSlot"
	MethodGetHealth           = "getHealth"
)

// MaxMultipleAccounts is the largest address list getMultipleAccounts accepts.
const MaxMultipleAccounts = 100

func extractClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	logx.Debug("JSONRPC", "unparseable remote address: ", r.RemoteAddr)
	return "unknown"
}

// CORSFromEnv reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS and
// CORS_ALLOWED_HEADERS (comma separated) plus CORS_MAX_AGE in seconds.
// It reports false when none of them is set.
func CORSFromEnv() (CORSConfig, bool) {
	var maxAge int
	if v, err := strconv.Atoi(os.Getenv("CORS_MAX_AGE")); err == nil {
		maxAge = v
	}
	cfg := CORSConfig{
		AllowedOrigins: splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS")),
		AllowedMethods: splitAndTrim(os.Getenv("CORS_ALLOWED_METHODS")),
		AllowedHeaders: splitAndTrim(os.Getenv("CORS_ALLOWED_HEADERS")),
		MaxAge:         maxAge,
	}
	if len(cfg.AllowedOrigins) == 0 && len(cfg.AllowedMethods) == 0 && len(cfg.AllowedHeaders) == 0 && maxAge <= 0 {
		return CORSConfig{}, false
	}
	return cfg, true
}

func splitAndTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
