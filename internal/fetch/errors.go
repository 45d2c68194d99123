// internal/fetch/errors.go
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a failed fetch attempt.
type Kind int

const (
	KindConnection Kind = iota + 1
	KindTimeout
	KindProtocol
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection failure"
	case KindTimeout:
		return "timeout"
	case KindProtocol:
		return "protocol failure"
	case KindParse:
		return "parse error"
	default:
		return "unknown"
	}
}

// ErrProtocol marks transport-level responses the fetcher cannot use
// (non-2xx status, oversized body).
var ErrProtocol = errors.New("protocol failure")

// Error is the tagged failure returned by every Fetcher method.
type Error struct {
	Kind Kind
	Op   string // "time" or "weather"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind carried by err, or 0 if err is not a fetch error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// IsParse reports whether err is a payload shape mismatch.
func IsParse(err error) bool {
	return KindOf(err) == KindParse
}

// classify maps a network error onto the fetch taxonomy.
func classify(op string, err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	kind := KindConnection

	var ne net.Error
	switch {
	case errors.Is(err, ErrProtocol):
		kind = KindProtocol
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &ne) && ne.Timeout():
		kind = KindTimeout
	}

	return &Error{Kind: kind, Op: op, Err: err}
}
