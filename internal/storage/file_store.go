package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSecretStore keeps the secret in a 0600 file. It is the fallback when no OS keyring is
// available and offers only filesystem-permission protection unless wrapped by a KeeperSecretStore.
type FileSecretStore struct {
	dir  string
	name string
}

// NewFileSecretStore stores the secret in dir/name.
func NewFileSecretStore(dir, name string) *FileSecretStore {
	return &FileSecretStore{dir: dir, name: name}
}

func (s *FileSecretStore) Get(_ context.Context) (string, error) {
	data, ok, err := readFile(s.dir, s.name)
	if err != nil {
		return "", err
	}
	if !ok || len(data) == 0 {
		return "", ErrSecretNotFound
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes value to a temporary file and hard-links it into place. The link fails if the
// target exists, so two processes racing on first start cannot both win and a reader never sees
// a partially written secret.
func (s *FileSecretStore) Set(_ context.Context, value string) error {
	if err := ensureDir(s.dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+s.name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create secret file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write secret file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync secret file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close secret file: %w", err)
	}

	err = os.Link(tmpName, filepath.Join(s.dir, s.name))
	if os.IsExist(err) {
		return ErrSecretExists
	}
	if err != nil {
		return fmt.Errorf("failed to store secret file: %w", err)
	}
	return nil
}

func (s *FileSecretStore) Delete(_ context.Context) error {
	return removeFile(s.dir, s.name)
}
