package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vsrclient/internal/client/services"
)

// Register prompts for an email and password and creates the account. It
// does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, email, password); err != nil {
		return err
	}
	a.println("Registered. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials, stores the token and fetches the role.
// When only the role lookup fails the login is kept and the failure shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	info, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if !info.Authenticated {
			return err
		}
		a.println("Logged in as", info.Email+", but the role could not be fetched:", describeError(err, true))
		return nil
	}

	a.println("Logged in as", info.Email, roleSuffix(info.Role))
	return nil
}

// Logout forgets the saved token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// Me asks the server who the current token belongs to.
func (a *App) Me(ctx context.Context) error {
	role, err := a.auth.FetchIdentity(ctx)
	if err != nil {
		return err
	}
	a.println("Logged in as", a.session.Info().Email, roleSuffix(role))
	return nil
}

// Status prints the local session state without contacting the server.
func (a *App) Status(ctx context.Context) error {
	info := a.session.Info()
	a.println("Server:", a.config.ServerURL)
	if !info.Authenticated {
		a.println("Session: not logged in")
		return nil
	}

	a.println("Session: logged in as", info.Email, roleSuffix(info.Role))
	if !info.ExpiresAt.IsZero() {
		a.println("Token expires:", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func roleSuffix(role string) string {
	if role == "" {
		return "(role unknown)"
	}
	return fmt.Sprintf("(role: %s)", role)
}

// requireLogin is used by commands that cannot do anything useful without
// a session, so they fail before prompting.
func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return services.ErrUnauthenticated
	}
	return nil
}
