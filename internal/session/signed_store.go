package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"researchai/pkg/domain"
)

// SignedStore keeps the session as an HS256-signed token on disk, so an
// edited session file fails closed instead of impersonating another user.
// Preferences are stored alongside in the clear.
type SignedStore struct {
	path   string
	secret []byte
	ttl    time.Duration
}

type signedState struct {
	Token string             `json:"token,omitempty"`
	Prefs domain.Preferences `json:"prefs"`
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewSignedStore builds a signed session store. ttl bounds how long a saved
// session stays valid.
func NewSignedStore(path, secret string, ttl time.Duration) (*SignedStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session path is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &SignedStore{path: path, secret: []byte(secret), ttl: ttl}, nil
}

func (s *SignedStore) Load() (domain.Session, bool, error) {
	state, err := s.read()
	if err != nil {
		return domain.Session{}, false, err
	}
	if state.Token == "" {
		return domain.Session{}, false, nil
	}
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(state.Token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		// Tampered or expired session reads as logged out.
		return domain.Session{}, false, nil
	}
	sess := domain.Session{UserID: claims.Subject, Email: claims.Email}
	if !sess.Valid() {
		return domain.Session{}, false, nil
	}
	return sess, true, nil
}

func (s *SignedStore) Save(sess domain.Session) error {
	if !sess.Valid() {
		return errors.New("session user ID is required")
	}
	now := time.Now().UTC()
	claims := sessionClaims{
		Email: sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	state, err := s.read()
	if err != nil {
		return err
	}
	state.Token = token
	return s.write(state)
}

func (s *SignedStore) Clear() error {
	state, err := s.read()
	if err != nil {
		return err
	}
	state.Token = ""
	return s.write(state)
}

func (s *SignedStore) ClearAll() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *SignedStore) LoadPrefs() (domain.Preferences, error) {
	state, err := s.read()
	if err != nil {
		return domain.Preferences{}, err
	}
	return state.Prefs, nil
}

func (s *SignedStore) SavePrefs(prefs domain.Preferences) error {
	state, err := s.read()
	if err != nil {
		return err
	}
	state.Prefs = prefs
	return s.write(state)
}

func (s *SignedStore) read() (signedState, error) {
	var state signedState
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("parse session file: %w", err)
	}
	return state, nil
}

func (s *SignedStore) write(state signedState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
