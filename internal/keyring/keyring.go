package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/MolchanovArt/exocortex/internal/constants"
)

var (
	// ErrNotFound is returned when no credential is stored in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if value == "" {
		return errors.New("credential cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credential in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credential from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the
// OS keyring. Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringConnectionUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	return set(constants.KeyringConnectionUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringConnectionUser)
}

// GetOpenAIKey retrieves the classification API key from the OS keyring.
func GetOpenAIKey() (string, error) {
	return get(constants.KeyringOpenAIUser)
}

// SetOpenAIKey stores the classification API key in the OS keyring.
func SetOpenAIKey(key string) error {
	return set(constants.KeyringOpenAIUser, key)
}

// DeleteOpenAIKey removes the classification API key from the OS keyring.
func DeleteOpenAIKey() error {
	return del(constants.KeyringOpenAIUser)
}

// IsAvailable checks if the OS keyring is usable on this system. Best
// effort only.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
