package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend persists the token in a single file readable only by the
// owner. It is the default durable scope for the desk.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// DefaultTokenPath is $XDG_CONFIG_HOME/healthdesk/token, falling back to
// ~/.config/healthdesk/token.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore: locate config dir: %w", err)
	}
	return filepath.Join(dir, "healthdesk", "token"), nil
}

func (f *FileBackend) Load(context.Context) (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: read %s: %w", f.Path, err)
	}

	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

func (f *FileBackend) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}

	// Write then rename so a crash never leaves a half-written token.
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("tokenstore: rename: %w", err)
	}
	return nil
}

func (f *FileBackend) Clear(context.Context) error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("tokenstore: remove %s: %w", f.Path, err)
	}
	return nil
}
