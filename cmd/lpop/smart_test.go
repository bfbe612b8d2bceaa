package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyInput(t *testing.T) {
	existing := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(existing, []byte("KEY=value\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		input string
		want  inputKind
	}{
		{existing, inputImportFile},
		{"DATABASE_URL=postgres://localhost/app", inputPair},
		{"KEY=", inputPair},
		{filepath.Join(t.TempDir(), "backup.env"), inputExportPath},
		{"config/production", inputExportPath},
		{"DATABASE_URL", inputKey},
	}
	for _, tc := range cases {
		if got := classifyInput(tc.input); got != tc.want {
			t.Errorf("classifyInput(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestClassifyInputPrefersExistingFileOverPair(t *testing.T) {
	// A file whose name contains '=' still counts as a file when it exists.
	dir := t.TempDir()
	path := filepath.Join(dir, "A=B")
	if err := os.WriteFile(path, []byte(""), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := classifyInput(path); got != inputImportFile {
		t.Errorf("classifyInput(%q) = %v, want inputImportFile", path, got)
	}
}
