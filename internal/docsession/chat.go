package docsession

import (
	"context"
	"strings"
	"sync"

	"researchai/pkg/domain"
)

// Asker is the slice of the backend client the chat flow needs.
type Asker interface {
	Ask(ctx context.Context, question, docID string) (string, error)
}

// ChatFlow sends questions about the active document and appends the
// answers to the transcript. Sends are not serialized: multiple questions
// may be in flight, and answers append in completion order.
type ChatFlow struct {
	api Asker
	doc *DocSession
	wg  sync.WaitGroup
}

func NewChatFlow(api Asker, doc *DocSession) *ChatFlow {
	return &ChatFlow{api: api, doc: doc}
}

// Send appends the user message synchronously, then asks the backend in the
// background and appends the bot answer (or an error placeholder) when it
// resolves. Whitespace-only text is a no-op; the returned bool reports
// whether a question was dispatched. An answer arriving after ctx is
// cancelled is discarded.
func (f *ChatFlow) Send(ctx context.Context, text string) bool {
	question := strings.TrimSpace(text)
	if question == "" {
		return false
	}
	f.doc.Transcript().Append(domain.SenderUser, question)
	docID := f.doc.DocID()

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		answer, err := f.api.Ask(ctx, question, docID)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			f.doc.Transcript().Append(domain.SenderBot, "Error: "+err.Error())
			return
		}
		f.doc.Transcript().Append(domain.SenderBot, answer)
	}()
	return true
}

// Wait blocks until all in-flight questions have resolved.
func (f *ChatFlow) Wait() {
	f.wg.Wait()
}
