package keychain

import (
	"errors"
	"fmt"
)

// The error taxonomy is two-tier. Absence of an entry is a normal return
// value on Get/Delete (false, nil), never one of these. Everything here is a
// genuine failure, propagated unmodified to the immediate caller; the CLI is
// responsible for turning it into an exit code.

// NotFoundError reports a missing entry in contexts where absence is not
// part of the normal result shape.
type NotFoundError struct {
	Account string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("keychain item not found: %s", e.Account)
}

// ErrAccessDenied is returned when the OS refuses access to the store, e.g.
// a denied authorization prompt or a locked keychain.
var ErrAccessDenied = errors.New("access denied to keychain")

// InvalidDataError reports a native record whose contents cannot be decoded.
type InvalidDataError struct {
	Msg string
}

func (e *InvalidDataError) Error() string {
	return "invalid data: " + e.Msg
}

// InvalidParameterError reports a malformed argument, caught before any
// native call is made.
type InvalidParameterError struct {
	Msg string
}

func (e *InvalidParameterError) Error() string {
	return "invalid parameter: " + e.Msg
}

// PlatformError wraps a native secret-store failure. The raw status code is
// preserved so failures can be diagnosed against Apple's OSStatus tables.
type PlatformError struct {
	Op     string // "add", "copy", "delete" or "search"
	Status int32  // native OSStatus, 0 when unknown
	Err    error
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keychain %s failed: %v (OSStatus %d)", e.Op, e.Err, e.Status)
	}
	return fmt.Sprintf("keychain %s failed: OSStatus %d", e.Op, e.Status)
}

func (e *PlatformError) Unwrap() error { return e.Err }

// UnsupportedError reports an operation the current backend does not
// implement.
type UnsupportedError struct {
	Msg string
}

func (e *UnsupportedError) Error() string {
	return "unsupported operation: " + e.Msg
}

// ErrUnsupportedPlatform is returned when no native backend exists for the
// current platform at all.
var ErrUnsupportedPlatform = errors.New("keychain is not supported on this platform")
