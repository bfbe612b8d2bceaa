// Package keychain provides secret storage over the native OS credential
// store, with an in-memory fallback for platforms without native support.
//
// Secrets are stored as generic passwords keyed by (service, account):
//   - Service: an opaque grouping string supplied by the caller. lpop derives
//     it from the repository and environment, e.g.
//     "github.com/acme/api?env=production", but this package never
//     constructs, parses or validates that format.
//   - Account: the per-secret key within a service (an env var name).
//
// Absence is never an error: GetPassword reports a missing entry as
// (_, false, nil), DeletePassword as (false, nil) and GetEntry as (nil, nil).
// The same contract holds across every backend. Genuine failures surface as
// the typed errors in errors.go.
package keychain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Entry is a single stored credential.
type Entry struct {
	Service  string
	Account  string
	Password string
	Metadata *Metadata
}

// Metadata carries the native attributes of an entry. Backends that do not
// track a field leave it zero.
type Metadata struct {
	CreatedAt      time.Time
	ModifiedAt     time.Time
	Label          string
	Comment        string
	TeamID         string
	AccessGroup    string
	Synchronizable bool
}

// Options configures a store at construction time. Backends that cannot
// honor a field accept it and ignore it rather than failing construction.
type Options struct {
	// TeamID namespaces AccessGroup on macOS ("TEAMID.group").
	TeamID string

	// AccessGroup shares entries between apps signed by the same team.
	AccessGroup string

	// Synchronizable lets the OS sync entries across devices (iCloud
	// Keychain on macOS). The sync protocol itself is entirely the OS's
	// business; this layer only passes the flag through.
	Synchronizable bool
}

// accessGroup returns the effective access-group attribute, namespaced by
// the team ID when one is configured ("TEAMID.group").
func (o Options) accessGroup() string {
	if o.AccessGroup == "" {
		return ""
	}
	if o.TeamID != "" {
		return o.TeamID + "." + o.AccessGroup
	}
	return o.AccessGroup
}

// FindQuery filters FindEntries results. Zero-valued fields match
// everything; entries that fail the filter are excluded, never reported as
// errors.
type FindQuery struct {
	// AccountPrefix matches accounts starting with the prefix,
	// case-sensitively.
	AccountPrefix string

	// Environment matches entries whose service string ends in
	// "?env=<Environment>". The value is compared as an opaque suffix; the
	// store does not otherwise interpret service strings.
	Environment string

	TeamID      string
	AccessGroup string
}

func (q *FindQuery) matches(e *Entry) bool {
	if q == nil {
		return true
	}
	if q.AccountPrefix != "" && !strings.HasPrefix(e.Account, q.AccountPrefix) {
		return false
	}
	if q.Environment != "" && !strings.HasSuffix(e.Service, "?env="+q.Environment) {
		return false
	}
	if q.TeamID != "" && (e.Metadata == nil || e.Metadata.TeamID != q.TeamID) {
		return false
	}
	if q.AccessGroup != "" && (e.Metadata == nil || e.Metadata.AccessGroup != q.AccessGroup) {
		return false
	}
	return true
}

// Store is the interface for credential storage operations.
//
// All operations may be called concurrently on the same store instance; each
// backend does its own serialization. Native calls may block indefinitely
// pending user authorization — no operation imposes a timeout, and there is
// no cancellation. Callers that need bounded latency must arrange it
// themselves.
type Store interface {
	// SetPassword stores a secret, overwriting any existing entry for
	// (service, account). Last write wins; metadata is replaced wholesale,
	// never merged with the previous entry's.
	SetPassword(service, account, password string, meta *Metadata) error

	// GetPassword retrieves a secret. A missing entry is (_, false, nil).
	GetPassword(service, account string) (string, bool, error)

	// DeletePassword removes a secret. It reports true only when an entry
	// actually existed and was removed; a missing entry is (false, nil).
	DeletePassword(service, account string) (bool, error)

	// GetEntry retrieves a secret together with its native metadata.
	// A missing entry is (nil, nil).
	GetEntry(service, account string) (*Entry, error)

	// FindEntries returns the entries under service that match query.
	// A nil query matches everything. Native records missing an account or
	// password field are silently skipped — the search is best-effort and
	// never fails merely because some matched records are malformed.
	FindEntries(service string, query *FindQuery) ([]Entry, error)

	// FindByAccount returns entries for account across all services
	// visible to the backend, with the same best-effort semantics as
	// FindEntries.
	FindByAccount(account string) ([]Entry, error)
}

// usableRecord reports whether a native search record carries both its key
// attribute and its password data. Search is best effort: partial records
// are skipped, never surfaced as errors. Present-but-empty password data is
// a valid record (empty passwords are legal).
func usableRecord(key string, data []byte) bool {
	return key != "" && data != nil
}

// validateKey rejects empty service or account before any backend work.
func validateKey(service, account string) error {
	if service == "" {
		return &InvalidParameterError{Msg: "service must not be empty"}
	}
	if account == "" {
		return &InvalidParameterError{Msg: "account must not be empty"}
	}
	return nil
}

// decodePassword converts native password bytes to a string, replacing
// invalid UTF-8 sequences rather than failing on them.
func decodePassword(data []byte) string {
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// displayLabel is the default Keychain Access.app label for an entry.
func displayLabel(service, account string) string {
	return service + " (" + account + ")"
}
