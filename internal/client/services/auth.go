// Package services contains the application services behind the vsrc CLI:
// session handling and resource CRUD. Input is validated here, before any
// request is sent.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vsrclient/internal/client/client"
	"github.com/dmitrijs2005/vsrclient/internal/client/models"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account. It does not log in.
//   - Login: obtain and persist a token, then fetch the identity. A failed
//     identity lookup is returned but the login stands.
//   - FetchIdentity: ask /auth/me for the role of the current token.
//   - Logout: forget the token locally.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (SessionInfo, error)
	FetchIdentity(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Session() *Session
}

type authService struct {
	client  client.Client
	session *Session
	logger  logging.Logger
}

// NewAuthService binds the API client to session.
func NewAuthService(c client.Client, session *Session, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{client: c, session: session, logger: logger}
}

func (a *authService) Session() *Session { return a.session }

func validateCredentials(email, password string) (models.Credentials, error) {
	creds := models.Credentials{Email: strings.TrimSpace(email), Password: password}
	if creds.Email == "" {
		return creds, required("email")
	}
	if creds.Password == "" {
		return creds, required("password")
	}
	return creds, nil
}

func (a *authService) Register(ctx context.Context, email, password string) error {
	creds, err := validateCredentials(email, password)
	if err != nil {
		return err
	}
	if _, err := a.client.Register(ctx, creds); err != nil {
		return err
	}
	a.logger.Info(ctx, "registered", "email", creds.Email)
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) (SessionInfo, error) {
	creds, err := validateCredentials(email, password)
	if err != nil {
		return SessionInfo{}, err
	}

	tok, err := a.client.Login(ctx, creds)
	if err != nil {
		return SessionInfo{}, err
	}
	if err := a.session.Start(ctx, tok.Token, creds.Email); err != nil {
		return SessionInfo{}, err
	}
	a.logger.Info(ctx, "logged in", "email", creds.Email)

	if _, err := a.FetchIdentity(ctx); err != nil {
		return a.session.Info(), fmt.Errorf("fetch identity: %w", err)
	}
	return a.session.Info(), nil
}

func (a *authService) FetchIdentity(ctx context.Context) (string, error) {
	if !a.session.IsAuthenticated() {
		return "", ErrUnauthenticated
	}

	id, err := a.client.Me(ctx)
	if err != nil {
		return "", err
	}

	var role string
	if len(id.Roles) > 0 {
		role = id.Roles[0]
	}
	a.session.SetRole(role)
	return role, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "logged out")
	return nil
}
