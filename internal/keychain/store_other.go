//go:build !darwin

package keychain

import (
	"fmt"
	"runtime"
)

// New fails on platforms without a native backend. The construction-time
// error is deliberate: callers choose the in-memory fallback explicitly via
// NewMemoryStore rather than getting it substituted silently.
func New(opts Options) (Store, error) {
	return nil, fmt.Errorf("%w (%s); use the in-memory store instead",
		ErrUnsupportedPlatform, runtime.GOOS)
}
