package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// getSimpleText and getPin are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPin = GetPin

// Login prompts for an email or 16-digit access code. The code path
// authenticates directly; the email path dispatches a PIN and then prompts
// for it to complete the login.
func (a *App) Login(ctx context.Context) error {
	input, err := getSimpleText(a.reader, "Enter email or 16-digit access code", os.Stdout)
	if err != nil {
		return err
	}

	if !a.session.Login(ctx, input) {
		fmt.Println(a.session.Err())
		return nil
	}

	if !strings.Contains(input, "@") {
		fmt.Println("Login successful!")
		return nil
	}

	fmt.Println("PIN sent to your email")
	return a.promptVerify(ctx, input)
}

// Register prompts for an email, dispatches a registration PIN, and prompts
// for it. The account record is created when the PIN verifies.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if !a.session.Register(ctx, email) {
		fmt.Println(a.session.Err())
		return nil
	}

	fmt.Println("PIN sent to your email")
	return a.promptVerify(ctx, email)
}

func (a *App) promptVerify(ctx context.Context, email string) error {
	pin, err := getPin(os.Stdout)
	if err != nil {
		return err
	}

	if !a.session.VerifyPin(ctx, pin, email) {
		fmt.Println(a.session.Err())
		return nil
	}

	fmt.Println("Login successful!")
	return nil
}

// RegisterAnonymous creates an anonymous account and displays the access
// code once. The user then logs in with the code.
func (a *App) RegisterAnonymous(ctx context.Context) error {
	code := a.session.RegisterAnonymous(ctx)
	if code == "" {
		fmt.Println(a.session.Err())
		return nil
	}

	fmt.Println("Anonymous account created.")
	fmt.Printf("Your access code: %s\n", code)
	fmt.Println("Save it now - it will not be shown again. Use 'login' with this code.")
	return nil
}

// ResendPin prompts for an email and dispatches a fresh PIN.
func (a *App) ResendPin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if !a.session.ResendPin(ctx, email) {
		fmt.Println(a.session.Err())
		return nil
	}

	fmt.Println("New PIN sent to your email")
	return nil
}

// WhoAmI prints the current user record.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("ID:          %s\n", u.ID)
	if u.Email != "" {
		fmt.Printf("Email:       %s\n", u.Email)
	}
	if u.AccessCode != "" {
		fmt.Printf("Access code: %s\n", u.AccessCode)
	}
	fmt.Printf("Created at:  %d\n", u.CreatedAt)
	return nil
}

// Token prints the session's access token.
func (a *App) Token(ctx context.Context) error {
	token := a.session.AccessToken()
	if token == "" {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Println(token)
	return nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Println("Logged out")
	return nil
}
