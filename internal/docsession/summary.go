package docsession

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"researchai/pkg/domain"
)

const (
	summaryTitle      = "Research Paper Summary"
	summaryRule       = "==================="
	summaryHeader     = "Summary:"
	advantagesHeader  = "Advantages:"
	limitationsHeader = "Limitations:"
	bullet            = "•"
)

// WriteSummary renders the downloadable summary artifact: title, summary
// text, then bulleted Advantages and Limitations blocks.
func WriteSummary(w io.Writer, s domain.Summary) error {
	var b strings.Builder
	b.WriteString(summaryTitle + "\n")
	b.WriteString(summaryRule + "\n\n")
	b.WriteString(summaryHeader + "\n")
	b.WriteString(s.Text + "\n\n")
	b.WriteString(advantagesHeader + "\n")
	for _, item := range s.Advantages {
		b.WriteString(bullet + " " + item + "\n")
	}
	b.WriteString("\n")
	b.WriteString(limitationsHeader + "\n")
	for _, item := range s.Disadvantages {
		b.WriteString(bullet + " " + item + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SummaryFilename derives the artifact name from the document name:
// the extension is dropped and "_summary.txt" appended.
func SummaryFilename(docName string) string {
	base := strings.TrimSuffix(filepath.Base(docName), filepath.Ext(docName))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "research_summary.txt"
	}
	return base + "_summary.txt"
}

// SaveSummary writes the artifact into dir and returns its path.
func SaveSummary(dir, docName string, s domain.Summary) (string, error) {
	path := filepath.Join(dir, SummaryFilename(docName))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create summary file: %w", err)
	}
	defer out.Close()
	if err := WriteSummary(out, s); err != nil {
		return "", fmt.Errorf("write summary file: %w", err)
	}
	return path, nil
}

// ParseSummary reconstructs the three sections from a summary artifact.
func ParseSummary(r io.Reader) (domain.Summary, error) {
	var (
		sum     domain.Summary
		section string
		text    []string
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case summaryTitle, summaryRule:
			continue
		case summaryHeader:
			section = "summary"
			continue
		case advantagesHeader:
			section = "advantages"
			continue
		case limitationsHeader:
			section = "limitations"
			continue
		}
		switch section {
		case "summary":
			if strings.TrimSpace(line) != "" {
				text = append(text, line)
			}
		case "advantages":
			if item, ok := strings.CutPrefix(line, bullet+" "); ok {
				sum.Advantages = append(sum.Advantages, item)
			}
		case "limitations":
			if item, ok := strings.CutPrefix(line, bullet+" "); ok {
				sum.Disadvantages = append(sum.Disadvantages, item)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.Summary{}, err
	}
	if section == "" {
		return domain.Summary{}, fmt.Errorf("not a summary artifact")
	}
	sum.Text = strings.Join(text, "\n")
	return sum, nil
}

// ShareText renders the summary for sharing (clipboard or message body).
func ShareText(s domain.Summary) string {
	var b strings.Builder
	if err := WriteSummary(&b, s); err != nil {
		return ""
	}
	return strings.TrimRight(b.String(), "\n")
}
