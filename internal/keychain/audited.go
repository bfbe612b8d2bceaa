package keychain

import (
	"github.com/benaskins/lpop/internal/audit"
)

// AuditedStore wraps a Store and records every secret operation to an audit
// log. Logging is best-effort: a failure to log never fails the operation,
// and results pass through unchanged, including the absence-is-not-error
// contract of the inner store.
type AuditedStore struct {
	inner Store
	audit *audit.Logger
	actor string // "cli" or "watch"
}

// NewAuditedStore wraps an existing store with audit logging.
func NewAuditedStore(inner Store, auditLog *audit.Logger, actor string) *AuditedStore {
	return &AuditedStore{inner: inner, audit: auditLog, actor: actor}
}

func (s *AuditedStore) log(action audit.Action, service, account string, err error) {
	entry := audit.Entry{
		Action:  action,
		Service: service,
		Account: account,
		Actor:   s.actor,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	_ = s.audit.Log(entry)
}

func (s *AuditedStore) SetPassword(service, account, password string, meta *Metadata) error {
	err := s.inner.SetPassword(service, account, password, meta)
	s.log(audit.ActionSecretWrite, service, account, err)
	return err
}

func (s *AuditedStore) GetPassword(service, account string) (string, bool, error) {
	password, ok, err := s.inner.GetPassword(service, account)
	s.log(audit.ActionSecretRead, service, account, err)
	return password, ok, err
}

func (s *AuditedStore) DeletePassword(service, account string) (bool, error) {
	removed, err := s.inner.DeletePassword(service, account)
	s.log(audit.ActionSecretDelete, service, account, err)
	return removed, err
}

func (s *AuditedStore) GetEntry(service, account string) (*Entry, error) {
	entry, err := s.inner.GetEntry(service, account)
	s.log(audit.ActionSecretRead, service, account, err)
	return entry, err
}

func (s *AuditedStore) FindEntries(service string, query *FindQuery) ([]Entry, error) {
	entries, err := s.inner.FindEntries(service, query)
	s.log(audit.ActionSecretSearch, service, "", err)
	return entries, err
}

func (s *AuditedStore) FindByAccount(account string) ([]Entry, error) {
	entries, err := s.inner.FindByAccount(account)
	s.log(audit.ActionSecretSearch, "", account, err)
	return entries, err
}
