package main

import (
	"os"
	"path/filepath"
)

// lpopHome returns the path to the lpop home directory (~/.lpop), creating
// it if necessary.
func lpopHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".lpop")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
