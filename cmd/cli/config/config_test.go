package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("ACCOUNTS_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	if _, err := LoadToken(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("LoadToken before save: got %v, want ErrNotLoggedIn", err)
	}
	if err := SaveToken("abc.def.ghi"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	token, err := LoadToken()
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("LoadToken: got %q, %v", token, err)
	}

	removed, err := RemoveToken()
	if err != nil || !removed {
		t.Fatalf("RemoveToken: got %v, %v", removed, err)
	}
	removed, err = RemoveToken()
	if err != nil || removed {
		t.Fatalf("second RemoveToken: got %v, %v", removed, err)
	}
}

func TestAPIURL(t *testing.T) {
	t.Setenv("ACCOUNTS_API_URL", "")
	if got := APIURL(); got != defaultAPIURL {
		t.Errorf("default APIURL: got %q", got)
	}
	t.Setenv("ACCOUNTS_API_URL", "https://accounts.example.com/")
	if got := APIURL(); got != "https://accounts.example.com" {
		t.Errorf("APIURL: got %q", got)
	}
}
