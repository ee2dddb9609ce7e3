package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/jutge/cli/keystore"
	"github.com/petal-labs/jutge/core"
	"github.com/petal-labs/jutge/modules"
)

var errNotLoggedIn = errors.New("not logged in: run 'jutge login' first")

func (a *App) newLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Jutge",
		Long: `Log in with your Jutge email and password. The password is prompted
without echo. The session token is stored encrypted in ~/.jutge.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogin(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.loginEmail, "email", "", "account email (default is email from config)")
	return cmd
}

func (a *App) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogout(cmd.Context())
		},
	}
}

func (a *App) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWhoami(cmd.Context())
		},
	}
}

func (a *App) runLogin(ctx context.Context) error {
	email := a.loginEmail
	if email == "" && a.cfg != nil {
		email = a.cfg.Email
	}
	if email == "" {
		line, err := a.prompt("Email: ")
		if err != nil {
			return a.validationError(fmt.Errorf("failed to read email: %w", err))
		}
		email = line
	}
	if email == "" {
		return a.validationError(errors.New("email cannot be empty"))
	}

	password, err := a.readSecret("Password: ")
	if err != nil {
		return a.validationError(fmt.Errorf("failed to read password: %w", err))
	}
	if password == "" {
		return a.validationError(errors.New("password cannot be empty"))
	}

	return a.withSession(ctx, func(ctx context.Context, s *session) error {
		creds, err := s.client.Login(ctx, email, password)
		if err != nil {
			return a.handleCallError(err)
		}

		entries := map[string]string{
			keystore.KeyToken:      creds.Token,
			keystore.KeyEmail:      email,
			keystore.KeyUserUID:    creds.UserUID,
			keystore.KeyExpiration: creds.Expiration,
		}
		if err := s.keys.Clear(); err != nil {
			return a.validationError(fmt.Errorf("failed to reset session: %w", err))
		}
		for name, value := range entries {
			if err := s.keys.Set(name, value); err != nil {
				return a.validationError(fmt.Errorf("failed to store session: %w", err))
			}
		}

		if a.jsonOutput {
			return a.outputJSON(map[string]string{
				"email":      email,
				"user_uid":   creds.UserUID,
				"expiration": creds.Expiration,
			})
		}
		fmt.Fprintf(a.stdout, "Logged in as %s.\n", email)
		return nil
	})
}

func (a *App) runLogout(ctx context.Context) error {
	return a.withSession(ctx, func(ctx context.Context, s *session) error {
		if !s.client.Session().LoggedIn() {
			fmt.Fprintln(a.stdout, "Not logged in.")
			return nil
		}

		err := s.client.Logout(ctx)
		if clearErr := s.keys.Clear(); clearErr != nil {
			return a.validationError(fmt.Errorf("failed to remove session: %w", clearErr))
		}
		if err != nil {
			return a.handleCallError(err)
		}

		fmt.Fprintln(a.stdout, "Logged out.")
		return nil
	})
}

func (a *App) runWhoami(ctx context.Context) error {
	return a.withSession(ctx, func(ctx context.Context, s *session) error {
		if !s.client.Session().LoggedIn() {
			return a.handleCallError(&core.APIError{Kind: core.KindUnauthorized, Message: errNotLoggedIn.Error(), Err: errNotLoggedIn})
		}

		profile, err := modules.New(s.client).Student.GetProfile(ctx)
		if err != nil {
			return a.handleCallError(err)
		}

		if a.jsonOutput {
			return a.outputJSON(profile)
		}
		fmt.Fprintf(a.stdout, "%s <%s>\n", profile.Name, profile.Email)
		fmt.Fprintf(a.stdout, "  user uid: %s\n", profile.UserUID)
		return nil
	})
}

// prompt writes label to stderr and reads one line from stdin.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.stderr, label)
	line, err := a.reader().ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a line without echo when stdin is a terminal.
func (a *App) readSecret(label string) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stderr, label)
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr) // Newline after hidden input
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	// Fallback for non-terminal (e.g., piped input)
	return a.prompt(label)
}

func (a *App) reader() *bufio.Reader {
	if a.input == nil {
		a.input = bufio.NewReader(a.stdin)
	}
	return a.input
}
