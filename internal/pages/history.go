package pages

import (
	"context"
	"fmt"
	"io"

	"researchai/internal/docsession"
	"researchai/internal/history"
	"researchai/internal/session"
	"researchai/pkg/domain"
)

// HistoryPage lists past uploads and shows a document's stored summary.
type HistoryPage struct {
	browser  *history.Browser
	sessions session.Store
	out      io.Writer
}

func NewHistory(browser *history.Browser, sessions session.Store, out io.Writer) *HistoryPage {
	return &HistoryPage{browser: browser, sessions: sessions, out: out}
}

func (p *HistoryPage) currentSession() (domain.Session, error) {
	sess, _, err := p.sessions.Load()
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// List renders the user's document history. history.ErrNotAuthenticated
// propagates so the caller can redirect to login.
func (p *HistoryPage) List(ctx context.Context) error {
	sess, err := p.currentSession()
	if err != nil {
		return err
	}
	records, err := p.browser.List(ctx, sess)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(p.out, "No documents yet")
		return nil
	}
	fmt.Fprintln(p.out, "Document History")
	for _, rec := range records {
		fmt.Fprintf(p.out, "%s  %-12s %s  %s\n", rec.DocID, rec.Status, rec.Timestamp, rec.Filename)
	}
	return nil
}

// Show renders one document's stored summary. Errors surface inline.
func (p *HistoryPage) Show(ctx context.Context, docID string) error {
	rec, err := p.fetch(ctx, docID)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Summary for %s\n\n", rec.Filename)
	if rec.Summary == "" {
		fmt.Fprintln(p.out, "No summary available for this document")
		return nil
	}
	renderSummary(p.out, domain.Summary{
		Text:          rec.Summary,
		Advantages:    rec.Advantages,
		Disadvantages: rec.Disadvantages,
	})
	return nil
}

// Download saves a stored summary as the artifact file and returns its path.
func (p *HistoryPage) Download(ctx context.Context, docID, dir string) (string, error) {
	rec, err := p.fetch(ctx, docID)
	if err != nil {
		return "", err
	}
	sum := domain.Summary{
		Text:          rec.Summary,
		Advantages:    rec.Advantages,
		Disadvantages: rec.Disadvantages,
	}
	path, err := docsession.SaveSummary(dir, rec.Filename, sum)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "Summary saved to %s\n", path)
	return path, nil
}

func (p *HistoryPage) fetch(ctx context.Context, docID string) (domain.DocumentRecord, error) {
	sess, err := p.currentSession()
	if err != nil {
		return domain.DocumentRecord{}, err
	}
	return p.browser.Detail(ctx, docID, sess)
}
