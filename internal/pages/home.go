package pages

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"researchai/internal/apiclient"
	"researchai/internal/docsession"
	"researchai/internal/poller"
	"researchai/internal/session"
	"researchai/pkg/domain"
)

// HomeConfig wires the home page's collaborators.
type HomeConfig struct {
	API               *apiclient.Client
	Sessions          session.Store
	MaxUploadBytes    int64
	AllowedExtensions []string
	PollInterval      time.Duration
	Out               io.Writer
}

// HomePage is the main view: upload a paper, generate its summary, chat
// about it. It owns one document session; tearing the page down cancels
// any active poll loop and discards late chat answers.
type HomePage struct {
	ctx    context.Context
	cancel context.CancelFunc

	api      *apiclient.Client
	sessions session.Store
	doc      *docsession.DocSession
	upload   *docsession.UploadFlow
	chat     *docsession.ChatFlow
	poll     *poller.Poller
	out      io.Writer
}

// NewHome builds a home page.
func NewHome(cfg HomeConfig) *HomePage {
	ctx, cancel := context.WithCancel(context.Background())
	doc := docsession.New()
	return &HomePage{
		ctx:      ctx,
		cancel:   cancel,
		api:      cfg.API,
		sessions: cfg.Sessions,
		doc:      doc,
		upload:   docsession.NewUploadFlow(cfg.API, cfg.MaxUploadBytes, cfg.AllowedExtensions),
		chat:     docsession.NewChatFlow(cfg.API, doc),
		poll:     poller.New(cfg.API.PollProgress, cfg.PollInterval),
		out:      cfg.Out,
	}
}

// Close tears the page down: cancels the poll loop and any in-flight chat
// requests, then waits for their goroutines to drain.
func (p *HomePage) Close() {
	p.cancel()
	p.chat.Wait()
}

// Doc exposes the page's document session for rendering.
func (p *HomePage) Doc() *docsession.DocSession {
	return p.doc
}

// Upload validates and uploads a local file, making it the active document.
func (p *HomePage) Upload(path string) error {
	sess, ok, err := p.sessions.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return apiclient.AuthError("please login first")
	}
	info, docID, err := p.upload.Submit(p.ctx, path, sess)
	if err != nil {
		return err
	}
	p.doc.SetDocument(info, docID)
	fmt.Fprintf(p.out, "Document uploaded successfully: %s (%s)\n", info.Name, info.DisplaySize())
	return nil
}

// GenerateSummary triggers summarization for the active document and polls
// progress concurrently until the request resolves. The summary comes from
// the request's response; the poll loop only drives the progress display
// and is cancelled if the backend never reports a terminal status.
func (p *HomePage) GenerateSummary() error {
	docID := p.doc.DocID()
	if docID == "" {
		return apiclient.ValidationError("upload a document first")
	}

	g, gctx := errgroup.WithContext(p.ctx)
	handle := p.poll.Start(gctx, docID, func(job poller.Job) {
		p.doc.SetJob(job)
		if job.Status == poller.StatusProcessing {
			fmt.Fprintf(p.out, "%s %d%%\n", poller.StepLabel(job.Progress), job.Progress)
		}
	})

	var sum domain.Summary
	g.Go(func() error {
		s, err := p.api.GenerateSummary(gctx, docID)
		if err != nil {
			return err
		}
		sum = s
		return nil
	})

	err := g.Wait()
	handle.Cancel()
	<-handle.Done()

	if err != nil {
		p.doc.Transcript().Append(domain.SenderBot, "Error: "+err.Error())
		return err
	}
	p.doc.SetSummary(sum)
	if job := handle.Job(); !job.Status.Terminal() {
		p.doc.SetJob(poller.Job{DocID: docID, Status: poller.StatusCompleted, Progress: 100})
	}
	p.doc.Transcript().Append(domain.SenderBot,
		"Summary generated successfully. You can now ask questions about the document.")
	renderSummary(p.out, sum)
	return nil
}

// Ask sends a question about the active document, waits for the answer and
// renders the new transcript entries. Whitespace-only input is a no-op.
func (p *HomePage) Ask(text string) {
	before := p.doc.Transcript().Len()
	if !p.chat.Send(p.ctx, text) {
		return
	}
	p.chat.Wait()
	msgs := p.doc.Transcript().Messages()
	for _, m := range msgs[before:] {
		renderMessage(p.out, m)
	}
}

// DownloadSummary writes the summary artifact into dir and returns its path.
func (p *HomePage) DownloadSummary(dir string) (string, error) {
	sum, ok := p.doc.Summary()
	if !ok {
		return "", apiclient.ValidationError("no summary available")
	}
	name := "research"
	if file, ok := p.doc.File(); ok {
		name = file.Name
	}
	path, err := docsession.SaveSummary(dir, name, sum)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "Summary saved to %s\n", path)
	return path, nil
}

// Share renders the summary as share text.
func (p *HomePage) Share() (string, error) {
	sum, ok := p.doc.Summary()
	if !ok {
		return "", apiclient.ValidationError("no summary available")
	}
	return docsession.ShareText(sum), nil
}
