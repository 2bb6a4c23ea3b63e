package docsession

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"researchai/pkg/domain"
)

func TestWriteSummaryFormat(t *testing.T) {
	var b strings.Builder
	err := WriteSummary(&b, domain.Summary{
		Text:          "A",
		Advantages:    []string{"fast"},
		Disadvantages: []string{"costly"},
	})
	if err != nil {
		t.Fatalf("write summary: %v", err)
	}
	want := "Research Paper Summary\n" +
		"===================\n\n" +
		"Summary:\nA\n\n" +
		"Advantages:\n• fast\n\n" +
		"Limitations:\n• costly\n"
	if b.String() != want {
		t.Fatalf("artifact = %q, want %q", b.String(), want)
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	in := domain.Summary{
		Text:          "This paper proposes a retrieval pipeline.\nIt evaluates on three datasets.",
		Advantages:    []string{"fast", "simple to deploy"},
		Disadvantages: []string{"costly", "english only"},
	}
	var b strings.Builder
	if err := WriteSummary(&b, in); err != nil {
		t.Fatalf("write summary: %v", err)
	}

	out, err := ParseSummary(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("parse summary: %v", err)
	}
	if out.Text != in.Text {
		t.Fatalf("text = %q, want %q", out.Text, in.Text)
	}
	if len(out.Advantages) != 2 || out.Advantages[1] != "simple to deploy" {
		t.Fatalf("advantages = %v", out.Advantages)
	}
	if len(out.Disadvantages) != 2 || out.Disadvantages[0] != "costly" {
		t.Fatalf("disadvantages = %v", out.Disadvantages)
	}
}

func TestParseSummaryRejectsArbitraryText(t *testing.T) {
	if _, err := ParseSummary(strings.NewReader("just some notes\nnothing else")); err == nil {
		t.Fatal("expected error for non-artifact input")
	}
}

func TestSummaryFilename(t *testing.T) {
	cases := []struct {
		docName string
		want    string
	}{
		{"paper.pdf", "paper_summary.txt"},
		{"deep learning.docx", "deep learning_summary.txt"},
		{"noext", "noext_summary.txt"},
		{"", "research_summary.txt"},
		{".", "research_summary.txt"},
		{".pdf", "research_summary.txt"},
		{"/", "research_summary.txt"},
	}
	for _, tc := range cases {
		if got := SummaryFilename(tc.docName); got != tc.want {
			t.Errorf("SummaryFilename(%q) = %q, want %q", tc.docName, got, tc.want)
		}
	}
}

func TestSaveSummaryWritesFile(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveSummary(dir, "paper.pdf", domain.Summary{Text: "A", Advantages: []string{"fast"}})
	if err != nil {
		t.Fatalf("save summary: %v", err)
	}
	if filepath.Base(path) != "paper_summary.txt" {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), "Research Paper Summary\n") {
		t.Fatalf("unexpected artifact contents: %q", string(data))
	}
}

func TestShareTextTrimsTrailingNewlines(t *testing.T) {
	text := ShareText(domain.Summary{Text: "A", Advantages: []string{"fast"}, Disadvantages: []string{"costly"}})
	if strings.HasSuffix(text, "\n") {
		t.Fatal("share text must not end with a newline")
	}
	if !strings.Contains(text, "• fast") {
		t.Fatalf("share text missing bullet: %q", text)
	}
}
