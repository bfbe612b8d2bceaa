// Package gitservice derives keychain service names from repository
// identity.
//
// A service name is "<host>/<owner>/<repo>?env=<environment>" when the
// directory has a usable git remote, or "local/<dirname>?env=<environment>"
// when it does not. The keychain layer treats the result as an opaque
// string; only this package and the CLI know its shape.
package gitservice

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultEnvironment is assumed when a service name carries no environment.
const DefaultEnvironment = "development"

// RepoInfo identifies the repository a service name is derived from.
type RepoInfo struct {
	Host  string
	Owner string
	Name  string
}

// FullName returns "<host>/<owner>/<repo>".
func (r *RepoInfo) FullName() string {
	return r.Host + "/" + r.Owner + "/" + r.Name
}

// Resolver resolves service names for the repository at a directory.
type Resolver struct {
	dir string
}

// NewResolver creates a resolver for dir, defaulting to the current working
// directory.
func NewResolver(dir string) *Resolver {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Resolver{dir: dir}
}

// ServiceName derives the service string for an environment.
func (r *Resolver) ServiceName(environment string) string {
	if info := r.RepoInfo(); info != nil {
		return fmt.Sprintf("%s?env=%s", info.FullName(), environment)
	}

	base := filepath.Base(r.dir)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "unknown"
	}
	return fmt.Sprintf("local/%s?env=%s", base, environment)
}

// RepoInfo resolves the repository identity from its remote URL, or nil when
// the directory is not a repository with a parseable remote.
func (r *Resolver) RepoInfo() *RepoInfo {
	raw, err := r.remoteURL()
	if err != nil || raw == "" {
		return nil
	}
	return ParseRemoteURL(raw)
}

// remoteURL reads the origin remote's URL, falling back to the first remote
// when origin does not exist.
func (r *Resolver) remoteURL() (string, error) {
	out, err := exec.Command("git", "-C", r.dir, "remote", "get-url", "origin").Output()
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}

	out, err = exec.Command("git", "-C", r.dir, "remote").Output()
	if err != nil {
		return "", err
	}
	remotes := strings.Fields(string(out))
	if len(remotes) == 0 {
		return "", errors.New("no git remotes")
	}

	out, err = exec.Command("git", "-C", r.dir, "remote", "get-url", remotes[0]).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ParseRemoteURL extracts host/owner/name from a git remote URL. It accepts
// https and ssh URLs plus the scp-like "git@host:owner/repo.git" form, and
// returns nil for anything it cannot interpret.
func ParseRemoteURL(raw string) *RepoInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// Normalize scp-like syntax to a real URL before parsing.
	if strings.HasPrefix(raw, "git@") {
		raw = "ssh://" + strings.Replace(raw, ":", "/", 1)
	}
	raw = strings.TrimSuffix(raw, ".git")

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-1] == "" || segments[len(segments)-2] == "" {
		return nil
	}

	return &RepoInfo{
		Host:  u.Hostname(),
		Owner: segments[len(segments)-2],
		Name:  segments[len(segments)-1],
	}
}

// ExtractEnv returns the environment portion of a service name, or
// DefaultEnvironment when it has none.
func ExtractEnv(service string) string {
	if _, env, ok := strings.Cut(service, "?env="); ok && env != "" {
		return env
	}
	return DefaultEnvironment
}

// ExtractRepo returns the repository portion of a service name.
func ExtractRepo(service string) string {
	repo, _, _ := strings.Cut(service, "?")
	return repo
}
