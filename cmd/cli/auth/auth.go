package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crucial707/account-service/cmd/cli/client"
	"github.com/crucial707/account-service/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword reads a line from the terminal without echo.
var readPassword = func() (string, error) {
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	return string(pw), err
}

// InitAuth registers signup, login and logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(signupCmd(), loginCmd(), logoutCmd())
}

// ==========================
// Signup
// ==========================
func signupCmd() *cobra.Command {
	var email, name, password string
	var login bool

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long:  "Create an account with email, name and password. Prompts for the password when --password is not given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || name == "" {
				return errors.New("--email and --name are required")
			}
			pw, err := passwordOrPrompt(cmd.ErrOrStderr(), password)
			if err != nil {
				return err
			}

			api := client.New(config.APIURL())
			profile, err := api.Signup(cmd.Context(), email, name, pw)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s (id %s).\n", profile.Email, profile.UserID)

			if login {
				return loginAndSave(cmd, api, email, pw)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")
	cmd.Flags().BoolVar(&login, "login", false, "Log in right after signing up")

	return cmd
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token locally",
		Long:  "Authenticate with the account API and store the access token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			pw, err := passwordOrPrompt(cmd.ErrOrStderr(), password)
			if err != nil {
				return err
			}
			return loginAndSave(cmd, client.New(config.APIURL()), email, pw)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")

	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.RemoveToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

func loginAndSave(cmd *cobra.Command, api *client.Client, email, password string) error {
	tok, err := api.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if tok.AccessToken == "" {
		return errors.New("login succeeded but no token returned")
	}
	if err := config.SaveToken(tok.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Login successful. Token stored locally (expires in %ds).\n", tok.ExpiresIn)
	return nil
}

func passwordOrPrompt(w io.Writer, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
