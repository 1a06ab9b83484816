// Package errs defines the structured error kinds the ring-signature core
// surfaces. Callers switch on Kind rather than matching error strings. The
// core never retries or panics on adversarial input; it returns one of
// these. It does log: KGC issuance, signing and failed verifications are
// reported through common/log, without secret values.
package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind distinguishes the five error categories the core raises.
type Kind int

const (
	// Config indicates an unknown curve/hash id or malformed persisted state.
	Config Kind = iota
	// Encoding indicates bad hex, a point not on the curve, or a scalar out of range.
	Encoding
	// State indicates an operation attempted in the wrong lifecycle state.
	State
	// Protocol indicates a KGC response failing its key-consistency check, a
	// duplicate ring id, or a ring with fewer than two members.
	Protocol
	// CryptoBackend indicates the underlying curve or HMAC primitive failed.
	CryptoBackend
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Encoding:
		return "encoding"
	case State:
		return "state"
	case Protocol:
		return "protocol"
	case CryptoBackend:
		return "crypto_backend"
	default:
		return "unknown"
	}
}

// Error is a structured error carrying a Kind alongside the usual message
// and optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is supports errors.Is(err, errs.Config) and friends by comparing Kind
// against a bare Kind sentinel wrapped as an *Error with no message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Configf builds a Config error.
func Configf(format string, args ...interface{}) error { return newf(Config, format, args...) }

// Encodingf builds an Encoding error.
func Encodingf(format string, args ...interface{}) error { return newf(Encoding, format, args...) }

// Statef builds a State error.
func Statef(format string, args ...interface{}) error { return newf(State, format, args...) }

// Protocolf builds a Protocol error.
func Protocolf(format string, args ...interface{}) error { return newf(Protocol, format, args...) }

// CryptoBackendf builds a CryptoBackend error.
func CryptoBackendf(format string, args ...interface{}) error {
	return newf(CryptoBackend, format, args...)
}

// Wrap attaches kind to an existing error, preserving it as the cause.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// WrapStack behaves like Wrap but also attaches a stack trace to the cause,
// for the rarer case of a CryptoBackend failure a caller will want to debug
// after the fact rather than just classify.
func WrapStack(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: pkgerrors.WithStack(err)}
}

// Sentinels usable with errors.Is(err, errs.ErrConfig) etc.
var (
	ErrConfig        = &Error{Kind: Config}
	ErrEncoding      = &Error{Kind: Encoding}
	ErrState         = &Error{Kind: State}
	ErrProtocol      = &Error{Kind: Protocol}
	ErrCryptoBackend = &Error{Kind: CryptoBackend}
)
