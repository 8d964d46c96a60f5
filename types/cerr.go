// Package types
package types

import (
	"errors"
	"fmt"
	"strings"
)

const (
	SourceSolanaRPC = "solana-rpc"
	SourceSolscan   = "solscan"
)

var ErrCacheMiss = errors.New("cache miss")

// UpstreamError reports a failed or malformed call to the chain RPC or the explorer.
type UpstreamError struct {
	Source string
	Op     string
	Err    error
}

func NewUpstreamError(source, op string, err error) *UpstreamError {
	return &UpstreamError{Source: source, Op: op, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ServiceError is what the aggregation layer hands to the handlers. Category is
// safe to show to clients, Err is not.
type ServiceError struct {
	Op       string
	Category string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Category
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ConfigurationError lists every missing or malformed setting found at startup.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid values: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ConfigurationError) Empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}
