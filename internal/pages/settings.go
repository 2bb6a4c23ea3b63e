package pages

import (
	"context"
	"fmt"
	"io"

	"researchai/internal/apiclient"
	"researchai/internal/session"
	"researchai/pkg/domain"
)

// SettingsPage manages the account and client preference flags.
type SettingsPage struct {
	api      *apiclient.Client
	sessions session.Store
	out      io.Writer
}

func NewSettings(api *apiclient.Client, sessions session.Store, out io.Writer) *SettingsPage {
	return &SettingsPage{api: api, sessions: sessions, out: out}
}

func (p *SettingsPage) requireSession() (domain.Session, error) {
	sess, ok, err := p.sessions.Load()
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return domain.Session{}, apiclient.AuthError("please login first")
	}
	return sess, nil
}

// Show renders the account email and preference flags.
func (p *SettingsPage) Show() error {
	sess, err := p.requireSession()
	if err != nil {
		return err
	}
	prefs, err := p.sessions.LoadPrefs()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	fmt.Fprintf(p.out, "Email: %s\n", sess.Email)
	fmt.Fprintf(p.out, "Dark mode: %v\n", prefs.DarkMode)
	fmt.Fprintf(p.out, "Notifications: %v\n", prefs.Notifications)
	return nil
}

// UpdatePassword changes the account password.
func (p *SettingsPage) UpdatePassword(ctx context.Context, current, newPassword string) error {
	if current == "" || newPassword == "" {
		return apiclient.ValidationError("current and new password are required")
	}
	sess, err := p.requireSession()
	if err != nil {
		return err
	}
	if err := p.api.UpdateAccount(ctx, sess.UserID, current, newPassword); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "Account updated successfully")
	return nil
}

// SetDarkMode persists the dark-mode flag.
func (p *SettingsPage) SetDarkMode(on bool) error {
	return p.updatePrefs(func(prefs *domain.Preferences) { prefs.DarkMode = on })
}

// SetNotifications persists the notifications flag.
func (p *SettingsPage) SetNotifications(on bool) error {
	return p.updatePrefs(func(prefs *domain.Preferences) { prefs.Notifications = on })
}

func (p *SettingsPage) updatePrefs(apply func(*domain.Preferences)) error {
	if _, err := p.requireSession(); err != nil {
		return err
	}
	prefs, err := p.sessions.LoadPrefs()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	apply(&prefs)
	if err := p.sessions.SavePrefs(prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// DeleteAccount removes the account on the backend and wipes all stored
// client state.
func (p *SettingsPage) DeleteAccount(ctx context.Context) error {
	sess, err := p.requireSession()
	if err != nil {
		return err
	}
	if err := p.api.DeleteAccount(ctx, sess.UserID); err != nil {
		return err
	}
	if err := p.sessions.ClearAll(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(p.out, "Account deleted successfully")
	return nil
}

// Logout clears the stored session.
func (p *SettingsPage) Logout() error {
	if err := p.sessions.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(p.out, "Logged out successfully")
	return nil
}
