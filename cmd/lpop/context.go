package main

import (
	"fmt"
	"path/filepath"

	"github.com/benaskins/lpop/internal/audit"
	"github.com/benaskins/lpop/internal/config"
	"github.com/benaskins/lpop/internal/gitservice"
	"github.com/benaskins/lpop/internal/keychain"
)

// cmdContext bundles what every command needs: the loaded config, the
// resolved service name for the current repository and environment, and an
// audited store.
type cmdContext struct {
	cfg     *config.Config
	env     string
	service string
	store   keychain.Store
	auditor *audit.Logger
}

// newContext resolves the environment (flag, then config, then
// "development"), derives the service name from the repository at --dir, and
// opens the platform store. Construction fails fast on platforms without a
// native backend.
func newContext(actor string) (*cmdContext, error) {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	env := flagEnv
	if env == "" {
		env = cfg.Environment()
	}
	service := gitservice.NewResolver(flagDir).ServiceName(env)

	store, err := keychain.New(keychain.Options{
		TeamID:         cfg.TeamID,
		AccessGroup:    cfg.AccessGroup,
		Synchronizable: cfg.Synchronizable,
	})
	if err != nil {
		return nil, err
	}

	ctx := &cmdContext{cfg: cfg, env: env, service: service, store: store}

	// Audit logging is best-effort: if the log cannot be opened the store
	// still works, just unaudited.
	if home, err := lpopHome(); err == nil {
		if logger, err := audit.NewLogger(filepath.Join(home, "audit.log")); err == nil {
			ctx.auditor = logger
			ctx.store = keychain.NewAuditedStore(store, logger, actor)
		}
	}

	return ctx, nil
}

// Close releases the audit log, if any.
func (c *cmdContext) Close() {
	if c.auditor != nil {
		c.auditor.Close()
	}
}
