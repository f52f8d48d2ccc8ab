package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "habitcal"
	keyringUser    = "session-token"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	// Load returns "" and no error when nothing is stored.
	Load() (string, error)
	Save(token string) error
	Remove() error
	String() string
}

// NewTokenStore picks "file" (default) or "keyring".
func NewTokenStore(kind, path string) (TokenStore, error) {
	switch kind {
	case "", "file":
		return FileStore{Path: path}, nil
	case "keyring":
		return KeyringStore{Service: keyringService, User: keyringUser}, nil
	}
	return nil, fmt.Errorf("unknown token store %q", kind)
}

// FileStore keeps the token in a file readable by the owner only.
type FileStore struct {
	Path string
}

func (s FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(s.Path, 0o600)
}

func (s FileStore) Remove() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s FileStore) String() string { return s.Path }

// KeyringStore keeps the token in the OS keyring.
type KeyringStore struct {
	Service string
	User    string
}

func (s KeyringStore) Load() (string, error) {
	tok, err := keyring.Get(s.Service, s.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read keyring: %w", err)
	}
	return tok, nil
}

func (s KeyringStore) Save(token string) error {
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := keyring.Set(s.Service, s.User, token); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}

func (s KeyringStore) Remove() error {
	err := keyring.Delete(s.Service, s.User)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete keyring entry: %w", err)
	}
	return nil
}

func (s KeyringStore) String() string { return "keyring:" + s.Service }
