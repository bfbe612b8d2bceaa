//go:build !darwin

package keychain

import (
	"errors"
	"testing"
)

func TestNewFailsFastOffMacOS(t *testing.T) {
	store, err := New(Options{})
	if store != nil {
		t.Fatal("expected no store on an unsupported platform")
	}
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}
