package keychain

import "fmt"

// UnsupportedStore satisfies Store on platforms without a native backend
// yet. Every operation fails with an UnsupportedError: the system never
// silently degrades a missing native backend into in-memory behavior.
// Callers that want that degradation opt in to NewMemoryStore explicitly.
type UnsupportedStore struct {
	platform string
}

// NewUnsupportedStore returns a stub store for the named platform.
func NewUnsupportedStore(platform string) *UnsupportedStore {
	return &UnsupportedStore{platform: platform}
}

func (s *UnsupportedStore) err() error {
	return &UnsupportedError{
		Msg: fmt.Sprintf("%s keychain support not yet implemented; use the in-memory store instead", s.platform),
	}
}

func (s *UnsupportedStore) SetPassword(service, account, password string, meta *Metadata) error {
	return s.err()
}

func (s *UnsupportedStore) GetPassword(service, account string) (string, bool, error) {
	return "", false, s.err()
}

func (s *UnsupportedStore) DeletePassword(service, account string) (bool, error) {
	return false, s.err()
}

func (s *UnsupportedStore) GetEntry(service, account string) (*Entry, error) {
	return nil, s.err()
}

func (s *UnsupportedStore) FindEntries(service string, query *FindQuery) ([]Entry, error) {
	return nil, s.err()
}

func (s *UnsupportedStore) FindByAccount(account string) ([]Entry, error) {
	return nil, s.err()
}
