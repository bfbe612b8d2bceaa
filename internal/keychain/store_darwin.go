//go:build darwin

package keychain

// New selects the native backend for the current platform, fixed for the
// lifetime of the returned store. On macOS that is the Keychain-backed
// SystemStore.
func New(opts Options) (Store, error) {
	return NewSystemStore(opts), nil
}
