package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestLoadTokenUsesEnvFirst(t *testing.T) {
	keyring.MockInit()
	t.Setenv(envToken, "  env-token  ")
	if err := SaveToken("keyring-token"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	got, src, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if got != "env-token" || src != SourceEnv {
		t.Fatalf("LoadToken() = %q (%s), want env-token (env)", got, src)
	}
}

func TestSaveLoadClearKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv(envToken, "")

	if _, _, err := LoadToken(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if err := SaveToken("  s3cret-token "); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	got, src, err := LoadToken()
	if err != nil || got != "s3cret-token" || src != SourceKeyring {
		t.Fatalf("LoadToken() = %q, %s, %v", got, src, err)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if _, _, err := LoadToken(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after clear, got %v", err)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("clearing twice should be fine: %v", err)
	}
}

func TestSaveTokenRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	if err := SaveToken("   "); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestLoadTokenWrapsKeyringFailure(t *testing.T) {
	t.Setenv(envToken, "")
	t.Setenv("EXTRAS_KEYRING_SERVICE", "svc")
	t.Setenv("EXTRAS_KEYRING_ACCOUNT", "acct")

	origGet := keyringGet
	defer func() { keyringGet = origGet }()

	var gotService, gotUser string
	keyringGet = func(service, user string) (string, error) {
		gotService, gotUser = service, user
		return "", errors.New("boom")
	}

	_, _, err := LoadToken()
	if err == nil || !strings.Contains(err.Error(), "failed to read keyring item") {
		t.Fatalf("expected wrapped keyring error, got %v", err)
	}
	if gotService != "svc" || gotUser != "acct" {
		t.Fatalf("keyringGet called with (%q, %q)", gotService, gotUser)
	}
}

func TestMask(t *testing.T) {
	cases := map[string]string{"": "", "abc": "***", "abcdefgh": "****efgh"}
	for in, want := range cases {
		if got := Mask(in); got != want {
			t.Fatalf("Mask(%q) = %q want %q", in, got, want)
		}
	}
}
