// Package history lists previously uploaded documents and loads stored
// summaries on demand.
package history

import (
	"context"
	"errors"

	"researchai/pkg/domain"
)

// ErrNotAuthenticated indicates there is no session user; callers redirect
// to login instead of querying the backend.
var ErrNotAuthenticated = errors.New("please login to view history")

// Backend is the slice of the API client the browser needs.
type Backend interface {
	ListHistory(ctx context.Context, userID string) ([]domain.DocumentRecord, error)
	GetDocument(ctx context.Context, docID, userID string) (domain.DocumentRecord, error)
}

// Browser reads the session user's document history.
type Browser struct {
	api Backend
}

func NewBrowser(api Backend) *Browser {
	return &Browser{api: api}
}

// List returns the user's documents. Without a valid session it fails with
// ErrNotAuthenticated before any request is issued.
func (b *Browser) List(ctx context.Context, sess domain.Session) ([]domain.DocumentRecord, error) {
	if !sess.Valid() {
		return nil, ErrNotAuthenticated
	}
	return b.api.ListHistory(ctx, sess.UserID)
}

// Detail loads one document with its stored summary. Errors surface inline;
// no login redirect here.
func (b *Browser) Detail(ctx context.Context, docID string, sess domain.Session) (domain.DocumentRecord, error) {
	return b.api.GetDocument(ctx, docID, sess.UserID)
}
