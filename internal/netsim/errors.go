package netsim

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed bridge call so callers and tests can tell
// the failure causes apart without string matching.
type ErrorKind int

const (
	// ErrTransport means the request could not be sent or no response arrived.
	ErrTransport ErrorKind = iota + 1
	// ErrProtocol means a response arrived but was empty or not valid JSON.
	ErrProtocol
	// ErrRemote means the bridge answered success=false with a business message.
	ErrRemote
	// ErrConflict is a local-store conflict, currently only "already imported".
	ErrConflict
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTransport:
		return "transport"
	case ErrProtocol:
		return "protocol"
	case ErrRemote:
		return "remote"
	case ErrConflict:
		return "conflict"
	}
	return "unknown"
}

// BridgeError is the only error type the client returns. Operations never
// panic; on failure they return a zero value alongside a *BridgeError so
// callers that ignore the error can still range over the empty result.
type BridgeError struct {
	Kind    ErrorKind
	Message string
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("netsim %s error: %s", e.Kind, e.Message)
}

func transportErr(format string, args ...any) *BridgeError {
	return &BridgeError{Kind: ErrTransport, Message: fmt.Sprintf(format, args...)}
}

func protocolErr(format string, args ...any) *BridgeError {
	return &BridgeError{Kind: ErrProtocol, Message: fmt.Sprintf(format, args...)}
}

func remoteErr(message string) *BridgeError {
	return &BridgeError{Kind: ErrRemote, Message: message}
}

// ConflictErr builds the conflict failure raised by the order import flow.
func ConflictErr(message string) *BridgeError {
	return &BridgeError{Kind: ErrConflict, Message: message}
}

// IsKind reports whether err is a BridgeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BridgeError
	return errors.As(err, &be) && be.Kind == kind
}
