package pages

import (
	"context"
	"fmt"
	"io"

	"researchai/internal/apiclient"
	"researchai/internal/session"
	"researchai/pkg/domain"
)

// LoginPage authenticates and persists the session.
type LoginPage struct {
	api      *apiclient.Client
	sessions session.Store
	out      io.Writer
}

func NewLogin(api *apiclient.Client, sessions session.Store, out io.Writer) *LoginPage {
	return &LoginPage{api: api, sessions: sessions, out: out}
}

func (p *LoginPage) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apiclient.ValidationError("email and password are required")
	}
	userID, err := p.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := p.sessions.Save(domain.Session{UserID: userID, Email: email}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(p.out, "Login successful. Welcome back, %s.\n", email)
	return nil
}

// SignupPage creates an account and persists the session.
type SignupPage struct {
	api      *apiclient.Client
	sessions session.Store
	out      io.Writer
}

func NewSignup(api *apiclient.Client, sessions session.Store, out io.Writer) *SignupPage {
	return &SignupPage{api: api, sessions: sessions, out: out}
}

// Signup checks the password confirmation locally before contacting the
// backend.
func (p *SignupPage) Signup(ctx context.Context, name, email, password, confirm string) error {
	if name == "" || email == "" || password == "" {
		return apiclient.ValidationError("all fields are required")
	}
	if password != confirm {
		return apiclient.ValidationError("passwords don't match")
	}
	userID, err := p.api.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	if err := p.sessions.Save(domain.Session{UserID: userID, Email: email}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(p.out, "Signup successful. Welcome, %s.\n", name)
	return nil
}
