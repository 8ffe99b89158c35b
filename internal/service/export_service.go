package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/Avi0425/Paper-Forge-AI/internal/filestore"
	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

// ExportFormat names a supported rendering of a paper project.
type ExportFormat string

const (
	FormatLaTeX    ExportFormat = "latex"
	FormatMarkdown ExportFormat = "markdown"
	FormatText     ExportFormat = "txt"
	FormatHTML     ExportFormat = "html"
)

var exportExtensions = map[ExportFormat]string{
	FormatLaTeX:    ".tex",
	FormatMarkdown: ".md",
	FormatText:     ".txt",
	FormatHTML:     ".html",
}

// ExportService renders projects into portable documents and writes
// them through the configured file store.
type ExportService struct {
	store filestore.Store
}

func NewExportService(store filestore.Store) *ExportService {
	return &ExportService{store: store}
}

// Export renders the project in the given format and saves the
// artifact under a key derived from the project id. It returns the
// storage key.
func (s *ExportService) Export(ctx context.Context, project *model.PaperProject, format ExportFormat) (string, error) {
	content, err := s.Render(project, format)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s%s", project.ID, exportExtensions[format])
	data := []byte(content)
	if err := s.store.Save(ctx, key, nopCloser{bytes.NewReader(data)}, int64(len(data))); err != nil {
		return "", fmt.Errorf("save export %s: %w", key, err)
	}
	return key, nil
}

// Render produces the document body for the given format without
// persisting it.
func (s *ExportService) Render(project *model.PaperProject, format ExportFormat) (string, error) {
	switch format {
	case FormatLaTeX:
		return renderLaTeX(project), nil
	case FormatMarkdown:
		return renderMarkdown(project), nil
	case FormatText:
		return renderText(project), nil
	case FormatHTML:
		return renderHTML(project)
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", appErr.ErrInvalid, format)
	}
}

func renderLaTeX(project *model.PaperProject) string {
	var b strings.Builder
	b.WriteString("\\documentclass[12pt]{article}\n")
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage{geometry}\n")
	b.WriteString("\\geometry{a4paper, margin=1in}\n\n")
	fmt.Fprintf(&b, "\\title{%s}\n", escapeLaTeX(project.Title))
	fmt.Fprintf(&b, "\\author{%s}\n", escapeLaTeX(project.Author))
	b.WriteString("\\date{\\today}\n\n")
	b.WriteString("\\begin{document}\n\n\\maketitle\n\n")
	for _, name := range model.SectionOrder {
		text := strings.TrimSpace(project.Sections[name])
		if text == "" {
			continue
		}
		if name == model.SectionAbstract {
			fmt.Fprintf(&b, "\\begin{abstract}\n%s\n\\end{abstract}\n\n", escapeLaTeX(text))
			continue
		}
		fmt.Fprintf(&b, "\\section{%s}\n%s\n\n", titleCase(string(name)), escapeLaTeX(text))
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}

func renderMarkdown(project *model.PaperProject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", project.Title)
	if project.Author != "" {
		fmt.Fprintf(&b, "*%s*\n\n", project.Author)
	}
	for _, name := range model.SectionOrder {
		text := strings.TrimSpace(project.Sections[name])
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", titleCase(string(name)), text)
	}
	return b.String()
}

func renderText(project *model.PaperProject) string {
	var b strings.Builder
	b.WriteString(project.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(project.Title)))
	b.WriteString("\n\n")
	if project.Author != "" {
		fmt.Fprintf(&b, "%s\n\n", project.Author)
	}
	for _, name := range model.SectionOrder {
		text := strings.TrimSpace(project.Sections[name])
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "%s\n\n%s\n\n", strings.ToUpper(string(name)), text)
	}
	return b.String()
}

func renderHTML(project *model.PaperProject) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(renderMarkdown(project)), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

var latexReplacer = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
