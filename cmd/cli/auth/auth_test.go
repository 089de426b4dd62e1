package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/account-service/cmd/cli/config"
	"github.com/spf13/cobra"
)

func setup(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("ACCOUNTS_API_URL", srv.URL)
	t.Setenv("ACCOUNTS_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLogin_SavesToken(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok","data":{"accessToken":"tok-123","tokenType":"Bearer","expiresIn":900}}`))
	})

	out, err := run(t, loginCmd(), "--email", "a@b.com", "--password", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Login successful") {
		t.Errorf("unexpected output: %s", out)
	}
	token, err := config.LoadToken()
	if err != nil || token != "tok-123" {
		t.Errorf("saved token: got %q, %v", token, err)
	}
}

func TestLogin_Rejected(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","error":{"code":"INVALID_CREDENTIALS","message":"invalid credentials"}}`))
	})

	_, err := run(t, loginCmd(), "--email", "a@b.com", "--password", "nope")
	if err == nil || !strings.Contains(err.Error(), "INVALID_CREDENTIALS") {
		t.Fatalf("expected credentials error, got %v", err)
	}
	if _, err := config.LoadToken(); err == nil {
		t.Error("token must not be saved after a failed login")
	}
}

func TestSignup_ThenLogin(t *testing.T) {
	var paths []string
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/users/signup":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in["name"] != "Alice" {
				t.Errorf("unexpected signup payload: %v", in)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"status":"ok","data":{"userid":"u-1","email":"a@b.com","name":"Alice"}}`))
		case "/users/login":
			_, _ = w.Write([]byte(`{"status":"ok","data":{"accessToken":"tok","tokenType":"Bearer","expiresIn":900}}`))
		}
	})

	out, err := run(t, signupCmd(), "--email", "a@b.com", "--name", "Alice", "--password", "pw", "--login")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !strings.Contains(out, "u-1") {
		t.Errorf("unexpected output: %s", out)
	}
	if len(paths) != 2 || paths[1] != "/users/login" {
		t.Errorf("unexpected calls: %v", paths)
	}
}

func TestSignup_RequiresFlags(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called")
	})
	if _, err := run(t, signupCmd(), "--email", "a@b.com", "--password", "pw"); err == nil {
		t.Fatal("expected error without --name")
	}
}

func TestLogout(t *testing.T) {
	setup(t, func(w http.ResponseWriter, r *http.Request) {})

	out, _ := run(t, logoutCmd())
	if !strings.Contains(out, "No user logged in") {
		t.Errorf("unexpected output: %s", out)
	}

	if err := config.SaveToken("tok"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, logoutCmd())
	if err != nil || !strings.Contains(out, "Logged out") {
		t.Errorf("logout: %q, %v", out, err)
	}
}
