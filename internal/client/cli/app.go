// Package cli implements the interactive coursehub client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/client/services"
)

var ErrUnknownCommand = errors.New("unknown command")

type App struct {
	config      *config.Config
	authService services.AuthService
	reader      *bufio.Reader
	out         io.Writer
	userEmail   string
}

func NewApp(c *config.Config) *App {
	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	as := services.NewAuthService(apiClient, c.TokenFile)

	return &App{
		config:      c,
		authService: as,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

// Run starts the REPL and returns when input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to coursehub CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Exec runs a single command, as given on the command line.
func (a *App) Exec(ctx context.Context, cmd string) error {
	var err error
	switch cmd {
	case "register":
		err = a.Register(ctx)
	case "login":
		err = a.Login(ctx)
	case "profile":
		err = a.Profile(ctx)
	case "logout":
		err = a.Logout(ctx)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	if err != nil {
		a.reportError(err)
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.userEmail != "" {
		return "(" + a.userEmail + ")"
	}
	return "(logged in)"
}

func (a *App) reportError(err error) {
	fmt.Fprintln(a.out, "Error:", describe(err))
}

// describe turns a client error into a line fit for the terminal.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrNotLoggedIn):
		return "not logged in, use 'login' first"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
