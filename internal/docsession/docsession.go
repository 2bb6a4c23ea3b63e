// Package docsession holds the typed document-session state a page owns:
// the selected file, its backend document ID, the generated summary, and
// the chat transcript. Flows operate on this value instead of loose shared
// cells.
package docsession

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"

	"researchai/internal/poller"
	"researchai/internal/util"
	"researchai/pkg/domain"
)

// FileInfo is the client-side handle to the user's selected file.
type FileInfo struct {
	Name string
	Size int64
	Path string
}

// Ext returns the lowercase extension without the leading dot.
func (f FileInfo) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
}

// DisplaySize renders the byte size for the UI.
func (f FileInfo) DisplaySize() string {
	return units.HumanSize(float64(f.Size))
}

// DocSession is the per-page document state. Exactly one document is active
// at a time; a new upload replaces the previous file/ID pair.
type DocSession struct {
	mu         sync.Mutex
	file       *FileInfo
	docID      string
	summary    *domain.Summary
	job        poller.Job
	transcript *Transcript
}

func New() *DocSession {
	return &DocSession{transcript: &Transcript{}}
}

// SetDocument replaces the active file/document pair and discards the
// previous summary and job state. The transcript is kept: it is scoped to
// the page, not the document.
func (d *DocSession) SetDocument(file FileInfo, docID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.file = &file
	d.docID = docID
	d.summary = nil
	d.job = poller.Job{DocID: docID, Status: poller.StatusIdle}
}

// File returns the active file, if any.
func (d *DocSession) File() (FileInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return FileInfo{}, false
	}
	return *d.file, true
}

// DocID returns the active document identifier, empty before upload.
func (d *DocSession) DocID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.docID
}

func (d *DocSession) SetSummary(s domain.Summary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summary = &s
}

func (d *DocSession) Summary() (domain.Summary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.summary == nil {
		return domain.Summary{}, false
	}
	return *d.summary, true
}

func (d *DocSession) SetJob(job poller.Job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.job = job
}

func (d *DocSession) Job() poller.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.job
}

func (d *DocSession) Transcript() *Transcript {
	return d.transcript
}

// Transcript is the append-only ordered chat message sequence for one page
// session. Messages are never reordered or mutated after append.
type Transcript struct {
	mu   sync.Mutex
	msgs []domain.ChatMessage
}

// Append adds a message and returns it.
func (t *Transcript) Append(sender domain.Sender, text string) domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:        util.NewID(),
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now().UTC(),
	}
	t.mu.Lock()
	t.msgs = append(t.msgs, msg)
	t.mu.Unlock()
	return msg
}

// Messages returns a copy of the transcript in append order.
func (t *Transcript) Messages() []domain.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.ChatMessage, len(t.msgs))
	copy(out, t.msgs)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}
