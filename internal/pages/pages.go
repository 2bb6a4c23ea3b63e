// Package pages composes the client flows into the product's views: home,
// login, signup, settings, history list and history detail. Pages render to
// an injected writer and never terminate the process on a backend error.
package pages

import (
	"fmt"
	"io"

	"researchai/pkg/domain"
)

func renderSummary(w io.Writer, s domain.Summary) {
	fmt.Fprintln(w, "Research Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Text)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Advantages:")
	for _, item := range s.Advantages {
		fmt.Fprintf(w, "  • %s\n", item)
	}
	fmt.Fprintln(w, "Limitations:")
	for _, item := range s.Disadvantages {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}

func renderMessage(w io.Writer, m domain.ChatMessage) {
	fmt.Fprintf(w, "[%s] %s\n", m.Sender, m.Text)
}
