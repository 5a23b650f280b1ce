package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account. An empty
// role lets the server pick its default.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (student/instructor, empty for student)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.authService.Register(ctx, client.RegisterRequest{
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		return err
	}

	a.userEmail = u.Email
	fmt.Fprintf(a.out, "Registered %s as %s\n", u.Email, u.Role)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.userEmail = u.Email
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}

	a.userEmail = u.Email
	fmt.Fprintf(a.out, "ID:        %s\nEmail:     %s\nFull name: %s\nRole:      %s\n",
		u.ID, u.Email, u.FullName, u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.userEmail = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
