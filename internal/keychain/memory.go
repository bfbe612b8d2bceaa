package keychain

import (
	"sync"
	"time"
)

type storeKey struct {
	service string
	account string
}

// MemoryStore is the in-process fallback backend: a pair of maps guarded by
// one mutex over the whole table. Each instance owns its own table, so
// independent stores never share entries, and everything is gone when the
// instance goes away. Nothing persists across process exit.
//
// Unlike SystemStore, an overwrite here is a single map insert under the
// lock — strictly stronger than the Keychain's delete-then-add window.
type MemoryStore struct {
	mu        sync.Mutex
	opts      Options
	passwords map[storeKey]string
	metadata  map[storeKey]*Metadata
}

// NewMemoryStore creates an empty in-memory store. It is always available,
// on every platform.
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:      opts,
		passwords: make(map[storeKey]string),
		metadata:  make(map[storeKey]*Metadata),
	}
}

func (s *MemoryStore) SetPassword(service, account, password string, meta *Metadata) error {
	if err := validateKey(service, account); err != nil {
		return err
	}

	now := time.Now().UTC()
	m := &Metadata{}
	if meta != nil {
		cp := *meta
		m = &cp
	}
	if m.Label == "" {
		m.Label = displayLabel(service, account)
	}
	m.CreatedAt = now
	m.ModifiedAt = now
	// Stamp the store configuration the same way the native backend reports
	// it, so FindQuery filters behave identically across backends.
	m.TeamID = s.opts.TeamID
	m.AccessGroup = s.opts.accessGroup()
	m.Synchronizable = s.opts.Synchronizable

	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey{service: service, account: account}
	s.passwords[k] = password
	s.metadata[k] = m
	return nil
}

func (s *MemoryStore) GetPassword(service, account string) (string, bool, error) {
	if err := validateKey(service, account); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	password, ok := s.passwords[storeKey{service: service, account: account}]
	return password, ok, nil
}

func (s *MemoryStore) DeletePassword(service, account string) (bool, error) {
	if err := validateKey(service, account); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey{service: service, account: account}
	_, ok := s.passwords[k]
	delete(s.passwords, k)
	delete(s.metadata, k)
	return ok, nil
}

func (s *MemoryStore) GetEntry(service, account string) (*Entry, error) {
	if err := validateKey(service, account); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := storeKey{service: service, account: account}
	password, ok := s.passwords[k]
	if !ok {
		return nil, nil
	}
	e := s.entry(k, password)
	return &e, nil
}

func (s *MemoryStore) FindEntries(service string, query *FindQuery) ([]Entry, error) {
	if service == "" {
		return nil, &InvalidParameterError{Msg: "service must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []Entry
	for k, password := range s.passwords {
		if k.service != service {
			continue
		}
		e := s.entry(k, password)
		if query.matches(&e) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *MemoryStore) FindByAccount(account string) ([]Entry, error) {
	if account == "" {
		return nil, &InvalidParameterError{Msg: "account must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []Entry
	for k, password := range s.passwords {
		if k.account != account {
			continue
		}
		entries = append(entries, s.entry(k, password))
	}
	return entries, nil
}

// entry assembles an Entry with a copy of the stored metadata. Callers must
// hold s.mu.
func (s *MemoryStore) entry(k storeKey, password string) Entry {
	e := Entry{Service: k.service, Account: k.account, Password: password}
	if m, ok := s.metadata[k]; ok {
		cp := *m
		e.Metadata = &cp
	}
	return e
}
