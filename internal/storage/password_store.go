package storage

import (
	"fmt"
	"strings"

	"github.com/allisson/go-pwdhash"

	"github.com/honeydid/honeydid/internal/errors"
)

// ErrNoAppPassword indicates no app password has been set.
var ErrNoAppPassword = errors.Wrap(errors.ErrNotFound, "no app password set")

// PasswordStore keeps the Argon2id PHC hash of the app password in PasswordFileName.
type PasswordStore struct {
	dir    string
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher returns the hasher used for app passwords.
func NewPasswordHasher() (*pwdhash.PasswordHasher, error) {
	return pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
}

// NewPasswordStore creates a PasswordStore in dir.
func NewPasswordStore(dir string, hasher *pwdhash.PasswordHasher) *PasswordStore {
	return &PasswordStore{dir: dir, hasher: hasher}
}

// Set hashes password and replaces any stored hash.
func (s *PasswordStore) Set(password string) error {
	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return errors.Wrap(err, "failed to hash app password")
	}
	return writeFileAtomic(s.dir, PasswordFileName, []byte(hash))
}

// Verify checks password against the stored hash. It returns ErrNoAppPassword when none is set.
func (s *PasswordStore) Verify(password string) (bool, error) {
	hash, ok, err := s.load()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNoAppPassword
	}

	valid, err := s.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false, fmt.Errorf("failed to verify app password: %w", err)
	}
	return valid, nil
}

// Has reports whether an app password is set.
func (s *PasswordStore) Has() (bool, error) {
	_, ok, err := s.load()
	return ok, err
}

// Delete removes the stored hash.
func (s *PasswordStore) Delete() error {
	return removeFile(s.dir, PasswordFileName)
}

func (s *PasswordStore) load() (string, bool, error) {
	data, ok, err := readFile(s.dir, PasswordFileName)
	if err != nil || !ok {
		return "", false, err
	}
	hash := strings.TrimSpace(string(data))
	return hash, hash != "", nil
}
