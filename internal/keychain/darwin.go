//go:build darwin

package keychain

import (
	"errors"

	gokeychain "github.com/keybase/go-keychain"
)

// SystemStore stores secrets in the macOS Keychain as generic passwords.
// The store holds no entry state of its own; everything lives in the OS
// keychain, so entries survive the process.
//
// Writes are delete-then-add: the Security framework has no atomic upsert
// for generic passwords, so an overwrite briefly leaves the key absent
// between the two calls. Concurrent writers to the same (service, account)
// race on that window; last writer wins. Operations on distinct keys are
// independent.
type SystemStore struct {
	opts Options
}

// NewSystemStore creates a Keychain-backed store.
func NewSystemStore(opts Options) *SystemStore {
	return &SystemStore{opts: opts}
}

// baseQuery builds the attribute dictionary shared by every call:
// generic-password class, service, optional account, plus the configured
// access group and synchronizable flag.
func (s *SystemStore) baseQuery(service, account string) gokeychain.Item {
	item := gokeychain.NewItem()
	item.SetSecClass(gokeychain.SecClassGenericPassword)
	item.SetService(service)
	if account != "" {
		item.SetAccount(account)
	}
	if ag := s.opts.accessGroup(); ag != "" {
		item.SetAccessGroup(ag)
	}
	if s.opts.Synchronizable {
		item.SetSynchronizable(gokeychain.SynchronizableYes)
	}
	return item
}

func (s *SystemStore) SetPassword(service, account, password string, meta *Metadata) error {
	if err := validateKey(service, account); err != nil {
		return err
	}

	// Keychain update semantics: delete any existing item first, ignoring
	// the outcome, then add. Not atomic — see the type comment.
	_, _ = s.DeletePassword(service, account)

	item := s.baseQuery(service, account)
	item.SetData([]byte(password))
	item.SetLabel(displayLabel(service, account))
	if meta != nil {
		if meta.Label != "" {
			item.SetLabel(meta.Label)
		}
		if meta.Comment != "" {
			item.SetComment(meta.Comment)
		}
	}
	if s.opts.Synchronizable {
		item.SetAccessible(gokeychain.AccessibleWhenUnlocked)
	} else {
		// ThisDeviceOnly keeps the entry out of iCloud Keychain.
		item.SetAccessible(gokeychain.AccessibleWhenUnlockedThisDeviceOnly)
	}

	if err := gokeychain.AddItem(item); err != nil {
		return platformErr("add", err)
	}
	return nil
}

func (s *SystemStore) GetPassword(service, account string) (string, bool, error) {
	if err := validateKey(service, account); err != nil {
		return "", false, err
	}

	query := s.baseQuery(service, account)
	query.SetReturnData(true)
	query.SetMatchLimit(gokeychain.MatchLimitOne)

	results, err := gokeychain.QueryItem(query)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return "", false, nil
		}
		return "", false, platformErr("copy", err)
	}
	if len(results) == 0 {
		return "", false, nil
	}
	return decodePassword(results[0].Data), true, nil
}

func (s *SystemStore) DeletePassword(service, account string) (bool, error) {
	if err := validateKey(service, account); err != nil {
		return false, err
	}

	err := gokeychain.DeleteItem(s.baseQuery(service, account))
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return false, nil
		}
		return false, platformErr("delete", err)
	}
	return true, nil
}

func (s *SystemStore) GetEntry(service, account string) (*Entry, error) {
	if err := validateKey(service, account); err != nil {
		return nil, err
	}

	query := s.baseQuery(service, account)
	query.SetReturnData(true)
	query.SetReturnAttributes(true)
	query.SetMatchLimit(gokeychain.MatchLimitOne)

	results, err := gokeychain.QueryItem(query)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, nil
		}
		return nil, platformErr("copy", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	e := s.entryFromResult(results[0])
	if e.Service == "" {
		e.Service = service
	}
	return &e, nil
}

func (s *SystemStore) FindEntries(service string, query *FindQuery) ([]Entry, error) {
	if service == "" {
		return nil, &InvalidParameterError{Msg: "service must not be empty"}
	}

	q := s.baseQuery(service, "")
	q.SetReturnData(true)
	q.SetReturnAttributes(true)
	q.SetMatchLimit(gokeychain.MatchLimitAll)

	results, err := gokeychain.QueryItem(q)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, nil
		}
		return nil, platformErr("search", err)
	}

	var entries []Entry
	for _, r := range results {
		// Best effort: a record missing its account or password field is
		// skipped, not surfaced as a partial failure.
		if !usableRecord(r.Account, r.Data) {
			continue
		}
		e := s.entryFromResult(r)
		if e.Service == "" {
			e.Service = service
		}
		if query.matches(&e) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *SystemStore) FindByAccount(account string) ([]Entry, error) {
	if account == "" {
		return nil, &InvalidParameterError{Msg: "account must not be empty"}
	}

	q := gokeychain.NewItem()
	q.SetSecClass(gokeychain.SecClassGenericPassword)
	q.SetAccount(account)
	if ag := s.opts.accessGroup(); ag != "" {
		q.SetAccessGroup(ag)
	}
	if s.opts.Synchronizable {
		q.SetSynchronizable(gokeychain.SynchronizableYes)
	}
	q.SetReturnData(true)
	q.SetReturnAttributes(true)
	q.SetMatchLimit(gokeychain.MatchLimitAll)

	results, err := gokeychain.QueryItem(q)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, nil
		}
		return nil, platformErr("search", err)
	}

	var entries []Entry
	for _, r := range results {
		if !usableRecord(r.Service, r.Data) {
			continue
		}
		e := s.entryFromResult(r)
		if e.Account == "" {
			e.Account = account
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// entryFromResult converts a native search record into an Entry.
func (s *SystemStore) entryFromResult(r gokeychain.QueryResult) Entry {
	return Entry{
		Service:  r.Service,
		Account:  r.Account,
		Password: decodePassword(r.Data),
		Metadata: &Metadata{
			CreatedAt:      r.CreationDate,
			ModifiedAt:     r.ModificationDate,
			Label:          r.Label,
			Comment:        r.Comment,
			TeamID:         s.opts.TeamID,
			AccessGroup:    r.AccessGroup,
			Synchronizable: s.opts.Synchronizable,
		},
	}
}

// platformErr maps a native error onto the portable taxonomy, keeping the
// raw OSStatus for diagnosis. Authorization failures become ErrAccessDenied.
func platformErr(op string, err error) error {
	if errors.Is(err, gokeychain.ErrorAuthFailed) || errors.Is(err, gokeychain.ErrorInteractionNotAllowed) {
		return &PlatformError{Op: op, Status: statusOf(err), Err: ErrAccessDenied}
	}
	return &PlatformError{Op: op, Status: statusOf(err), Err: err}
}

func statusOf(err error) int32 {
	var kcErr gokeychain.Error
	if errors.As(err, &kcErr) {
		return int32(kcErr)
	}
	return 0
}
