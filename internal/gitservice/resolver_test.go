package gitservice

import (
	"strings"
	"testing"
)

func TestParseRemoteURL(t *testing.T) {
	cases := []struct {
		url  string
		want string // "" means nil
	}{
		{"https://github.com/acme/api.git", "github.com/acme/api"},
		{"https://github.com/acme/api", "github.com/acme/api"},
		{"git@github.com:acme/api.git", "github.com/acme/api"},
		{"git@gitlab.example.com:team/project", "gitlab.example.com/team/project"},
		{"ssh://git@github.com/acme/api.git", "github.com/acme/api"},
		{"https://bitbucket.org/nested/group/repo", "bitbucket.org/group/repo"},
		{"https://github.com/toplevel", ""},
		{"not a url", ""},
		{"", ""},
	}

	for _, tc := range cases {
		info := ParseRemoteURL(tc.url)
		if tc.want == "" {
			if info != nil {
				t.Errorf("%q: expected nil, got %+v", tc.url, info)
			}
			continue
		}
		if info == nil {
			t.Errorf("%q: expected %q, got nil", tc.url, tc.want)
			continue
		}
		if got := info.FullName(); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.url, tc.want, got)
		}
	}
}

func TestServiceNameFallsBackToDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)

	service := r.ServiceName("staging")
	if !strings.HasPrefix(service, "local/") {
		t.Errorf("expected local/ fallback, got %q", service)
	}
	if !strings.HasSuffix(service, "?env=staging") {
		t.Errorf("expected env suffix, got %q", service)
	}
}

func TestExtractEnv(t *testing.T) {
	cases := map[string]string{
		"github.com/acme/api?env=production": "production",
		"local/myapp?env=test":               "test",
		"github.com/acme/api":                "development",
		"github.com/acme/api?env=":           "development",
	}

	for service, want := range cases {
		if got := ExtractEnv(service); got != want {
			t.Errorf("ExtractEnv(%q): expected %q, got %q", service, want, got)
		}
	}
}

func TestExtractRepo(t *testing.T) {
	cases := map[string]string{
		"github.com/acme/api?env=production": "github.com/acme/api",
		"local/myapp?env=test":               "local/myapp",
		"github.com/acme/api":                "github.com/acme/api",
	}

	for service, want := range cases {
		if got := ExtractRepo(service); got != want {
			t.Errorf("ExtractRepo(%q): expected %q, got %q", service, want, got)
		}
	}
}
