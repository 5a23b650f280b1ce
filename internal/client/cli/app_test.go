package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
)

func TestNewApp_WiresServices(t *testing.T) {
	cfg := &config.Config{
		ServerURL:      "http://127.0.0.1:1",
		RequestTimeout: time.Second,
		TokenFile:      t.TempDir() + "/token",
	}
	a := NewApp(cfg)
	if a.authService == nil || a.reader == nil || a.out == nil {
		t.Fatalf("app not wired: %+v", a)
	}
	if a.isLoggedIn() {
		t.Fatal("fresh token file must mean logged out")
	}
}

func TestExec_Dispatch(t *testing.T) {
	f := &fakeAuth{loggedIn: true, user: client.User{Email: "d@x.com"}}
	a, out := newTestApp(f)

	if err := a.Exec(context.Background(), "profile"); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if err := a.Exec(context.Background(), "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if f.logouts != 1 {
		t.Fatalf("logouts = %d", f.logouts)
	}

	err := a.Exec(context.Background(), "dance")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExec_ReportsError(t *testing.T) {
	f := &fakeAuth{profErr: client.ErrNotLoggedIn}
	a, out := newTestApp(f)

	if err := a.Exec(context.Background(), "profile"); !errors.Is(err, client.ErrNotLoggedIn) {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out.String(), "Error: not logged in") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("login: %w", &client.APIError{StatusCode: 401, Message: "Invalid email or password"}), "Invalid email or password"},
		{client.ErrNotLoggedIn, "not logged in, use 'login' first"},
		{fmt.Errorf("%w: dial tcp", client.ErrUnavailable), "server unavailable"},
		{errors.New("other"), "other"},
	}
	for _, c := range cases {
		if got := describe(c.err); got != c.want {
			t.Errorf("describe(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestRun_PrintsWelcomeAndExits(t *testing.T) {
	f := &fakeAuth{}
	a, out := newTestApp(f)
	a.reader = rdr("exit\n")

	a.Run(context.Background())

	if !strings.HasPrefix(out.String(), "Welcome to coursehub CLI") || !strings.Contains(out.String(), "Bye!") {
		t.Fatalf("output = %q", out.String())
	}
}
