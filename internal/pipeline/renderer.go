package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/accordhq/accord/internal/model"
)

// Renderer writes reconciliation reports as JSON, Markdown, or a short
// stdout summary
type Renderer struct {
	includeFooter bool
}

func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Reconciliation Report\n\n")
	fmt.Fprintf(&b, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- **Strategy:** %s\n", report.Strategy)
	fmt.Fprintf(&b, "- **Documents:** %d\n\n", len(report.Documents))

	b.WriteString("## Sources\n\n")
	b.WriteString("| Credibility | Type | Source |\n")
	b.WriteString("|---|---|---|\n")
	for _, d := range report.Documents {
		fmt.Fprintf(&b, "| %.2f | %s | %s |\n", d.Overall, d.DocType, sourceLabel(d))
	}
	b.WriteString("\n")

	b.WriteString("## Resolved Claims\n\n")
	if len(report.ResolvedClaims) == 0 {
		b.WriteString("_No claims extracted._\n\n")
	}
	for _, c := range report.ResolvedClaims {
		fmt.Fprintf(&b, "- [%.2f] %s\n", c.Confidence, c.Text)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Conflicts (%d)\n\n", len(report.Conflicts))
	for i, c := range report.Conflicts {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, c.Topic)
		fmt.Fprintf(&b, "- **Status:** %s (confidence %.2f)\n", c.Status, c.Confidence)
		if c.Resolution != "" {
			fmt.Fprintf(&b, "- **Resolution:** %s\n", c.Resolution)
		}
		b.WriteString("- **Competing claims:**\n")
		for _, claim := range c.Claims {
			fmt.Fprintf(&b, "  - %s\n", claim.Text)
		}
		b.WriteString("\n")
	}

	if report.Summary != nil && report.Summary.Text != "" {
		b.WriteString("## Narrative Summary\n\n")
		fmt.Fprintf(&b, "_Generated by %s (%s); advisory only._\n\n", report.Summary.Provider, report.Summary.Model)
		b.WriteString(report.Summary.Text)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by accord\n")
	}

	return b.String()
}

// RenderSummary prints a short summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	resolved, unresolved := 0, 0
	for _, c := range report.Conflicts {
		if c.Status == model.StatusResolved {
			resolved++
		} else {
			unresolved++
		}
	}

	fmt.Println()
	fmt.Printf("Strategy: %s\n", report.Strategy)
	fmt.Printf("Documents analyzed: %d\n", len(report.Documents))
	for _, d := range report.Documents {
		fmt.Printf("  %.2f  %-15s %s\n", d.Overall, d.DocType, sourceLabel(d))
	}
	fmt.Printf("Claims in reconciled output: %d\n", len(report.ResolvedClaims))
	fmt.Printf("Conflicts: %d resolved, %d unresolved\n", resolved, unresolved)
	if report.Summary != nil && report.Summary.Text != "" {
		fmt.Printf("\nSummary:\n%s\n", report.Summary.Text)
	}
}

func sourceLabel(d model.DocScore) string {
	switch {
	case d.Title != "" && d.SourceURL != "":
		return fmt.Sprintf("%s (%s)", d.Title, d.SourceURL)
	case d.SourceURL != "":
		return d.SourceURL
	case d.Title != "":
		return d.Title
	default:
		return d.DocID
	}
}
