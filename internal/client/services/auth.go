// Package services contains application services for the coursehub client.
// The auth service wraps the API client and keeps the session token in a
// local file between invocations.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/filex"
)

// AuthService defines authentication operations for the CLI.
type AuthService interface {
	Register(ctx context.Context, req client.RegisterRequest) (*client.User, error)
	Login(ctx context.Context, email string, password []byte) (*client.User, error)
	Profile(ctx context.Context) (*client.User, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
}

type authService struct {
	client    client.Client
	tokenFile string
}

// NewAuthService binds an API client to the file that holds the token.
func NewAuthService(c client.Client, tokenFile string) AuthService {
	return &authService{client: c, tokenFile: tokenFile}
}

func (a *authService) Register(ctx context.Context, req client.RegisterRequest) (*client.User, error) {
	s, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.saveToken(s.Token); err != nil {
		return nil, err
	}
	return &s.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*client.User, error) {
	s, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.saveToken(s.Token); err != nil {
		return nil, err
	}
	return &s.User, nil
}

// Profile fetches the current user. A 401 means the stored token is no
// longer accepted, so it is dropped.
func (a *authService) Profile(ctx context.Context) (*client.User, error) {
	token, err := a.loadToken()
	if err != nil {
		return nil, err
	}

	u, err := a.client.Profile(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = filex.RemoveIfExists(a.tokenFile)
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return u, nil
}

// Logout tells the server and forgets the token. The local file is removed
// even when the server cannot be reached.
func (a *authService) Logout(ctx context.Context) error {
	token, err := a.loadToken()
	if err != nil {
		return err
	}

	callErr := a.client.Logout(ctx, token)
	if err := filex.RemoveIfExists(a.tokenFile); err != nil {
		return err
	}
	if callErr != nil {
		return fmt.Errorf("logout: %w", callErr)
	}
	return nil
}

func (a *authService) LoggedIn() bool {
	_, err := a.loadToken()
	return err == nil
}

func (a *authService) saveToken(token string) error {
	if err := filex.WritePrivate(a.tokenFile, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (a *authService) loadToken() (string, error) {
	b, err := os.ReadFile(a.tokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", client.ErrNotLoggedIn
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", client.ErrNotLoggedIn
	}
	return token, nil
}
