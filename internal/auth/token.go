// Package auth manages the bearer token that guards the HTTP API.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "extras"
	defaultSecretUser    = "api_token"

	envToken = "EXTRAS_API_TOKEN"
)

// ErrNoToken is returned when neither the environment nor the keyring holds a token.
var ErrNoToken = errors.New("no API token configured (set EXTRAS_API_TOKEN or run `extras auth set-token`)")

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

type Source string

const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// LoadToken returns the API token and where it came from.
//
// Order of precedence:
// 1) EXTRAS_API_TOKEN environment variable.
// 2) System keyring item referenced by service/account.
func LoadToken() (string, Source, error) {
	if tok := strings.TrimSpace(os.Getenv(envToken)); tok != "" {
		return tok, SourceEnv, nil
	}
	service, account := secretRef()
	secret, err := keyringGet(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", "", ErrNoToken
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read keyring item service=%q account=%q: %w", service, account, err)
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", "", ErrNoToken
	}
	return secret, SourceKeyring, nil
}

// SaveToken stores tok in the system credential store.
func SaveToken(tok string) error {
	trimmed := strings.TrimSpace(tok)
	if trimmed == "" {
		return errors.New("API token cannot be empty")
	}
	service, account := secretRef()
	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf("failed to store keyring item service=%q account=%q: %w", service, account, err)
	}
	return nil
}

// ClearToken removes the stored token. Clearing a missing token is not an error.
func ClearToken() error {
	service, account := secretRef()
	err := keyringDelete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring item service=%q account=%q: %w", service, account, err)
	}
	return nil
}

// Mask shows only the last four characters of tok.
func Mask(tok string) string {
	if len(tok) <= 4 {
		return strings.Repeat("*", len(tok))
	}
	return strings.Repeat("*", len(tok)-4) + tok[len(tok)-4:]
}

func secretRef() (service, account string) {
	return envOrDefault("EXTRAS_KEYRING_SERVICE", defaultSecretService),
		envOrDefault("EXTRAS_KEYRING_ACCOUNT", defaultSecretUser)
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
