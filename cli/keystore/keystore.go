// Package keystore provides encrypted storage for the CLI session: the token
// returned by auth.login and the account it belongs to.
package keystore

import (
	"errors"

	"github.com/petal-labs/jutge/cli/config"
)

// Well-known entry names.
const (
	KeyToken      = "token"
	KeyEmail      = "email"
	KeyUserUID    = "user_uid"
	KeyExpiration = "expiration"
)

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key-value pair.
	Set(name, value string) error
	// Get retrieves a value by name. Returns error if not found.
	Get(name string) (string, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names.
	List() ([]string, error)
	// Clear removes every entry.
	Clear() error
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// IsNotFound reports whether err is an *ErrKeyNotFound.
func IsNotFound(err error) bool {
	var nf *ErrKeyNotFound
	return errors.As(err, &nf)
}

// NewKeystore creates a new keystore using file-based encrypted storage.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(config.DefaultKeystorePath())
}
