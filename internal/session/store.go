// Package session persists the authenticated user and preference flags
// across client runs. Pages read it to gate access and personalize output.
package session

import "researchai/pkg/domain"

// Store is durable key/value storage for the session and preferences.
//
// Clear removes the session identity only (logout); ClearAll also wipes
// preferences (account deletion).
type Store interface {
	Load() (domain.Session, bool, error)
	Save(domain.Session) error
	Clear() error
	ClearAll() error
	LoadPrefs() (domain.Preferences, error)
	SavePrefs(domain.Preferences) error
}
