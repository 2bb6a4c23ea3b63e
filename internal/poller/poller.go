// Package poller drives the summarization-job lifecycle by polling the
// backend on a fixed interval until the job reaches a terminal state.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"researchai/internal/apiclient"
)

// Status is the four-state job lifecycle. A job only advances
// idle -> processing -> {completed | failed}; a terminal status is never
// reset back to processing for the same job.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status ends the poll loop.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is the transient client-side view of one summarization job.
type Job struct {
	DocID    string
	Status   Status
	Progress int
	Err      string
}

// PollFunc fetches the backend's view of a job.
type PollFunc func(ctx context.Context, docID string) (apiclient.Progress, error)

// Poller starts poll loops for summarization jobs.
type Poller struct {
	poll     PollFunc
	interval time.Duration
}

// New builds a poller. interval defaults to one second when zero.
func New(poll PollFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{poll: poll, interval: interval}
}

// Handle controls one running poll loop. Cancel is idempotent and must be
// called on page teardown regardless of job state.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	job Job
}

// Cancel stops the loop's timer. Safe to call more than once and after the
// loop has already finished.
func (h *Handle) Cancel() {
	h.cancel()
}

// Done is closed when the poll loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Job returns the last observed job state.
func (h *Handle) Job() Job {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.job
}

func (h *Handle) set(job Job, onUpdate func(Job)) {
	h.mu.Lock()
	h.job = job
	h.mu.Unlock()
	if onUpdate != nil {
		onUpdate(job)
	}
}

// Start transitions the job to processing and polls until a terminal status
// or cancellation. Ticks are serialized: the next request is not issued
// until the previous tick's update has run. A transport error on a tick is
// logged and swallowed so polling survives transient blips.
func (p *Poller) Start(ctx context.Context, docID string, onUpdate func(Job)) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
		job:    Job{DocID: docID, Status: StatusIdle},
	}

	go func() {
		defer close(h.done)
		defer cancel()

		h.set(Job{DocID: docID, Status: StatusProcessing}, onUpdate)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				prog, err := p.poll(ctx, docID)
				if ctx.Err() != nil {
					// Late response after teardown: discard.
					return
				}
				if err != nil {
					slog.Warn("progress poll failed", "doc_id", docID, "err", err)
					continue
				}
				job := h.Job()
				switch prog.Status {
				case string(StatusCompleted):
					job.Status = StatusCompleted
					job.Progress = 100
				case string(StatusFailed):
					job.Status = StatusFailed
					job.Err = prog.Err
				default:
					job.Status = StatusProcessing
					job.Progress = prog.Progress
				}
				h.set(job, onUpdate)
				if job.Status.Terminal() {
					return
				}
			}
		}
	}()

	return h
}

// StepLabel names the processing phase implied by a progress percentage,
// mirroring the staged labels the product shows during generation.
func StepLabel(progress int) string {
	switch {
	case progress <= 0:
		return "Initializing..."
	case progress <= 25:
		return "Analyzing document..."
	case progress <= 50:
		return "Generating summary..."
	case progress <= 75:
		return "Extracting key points..."
	default:
		return "Finalizing..."
	}
}
