package citation

import (
	"fmt"
	"strings"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

type Style string

const (
	StyleIEEE    Style = "IEEE"
	StyleAPA     Style = "APA"
	StyleMLA     Style = "MLA"
	StyleChicago Style = "Chicago"
)

// Format renders one citation in the requested style. One fixed
// template per style; the style is caller-selected, never inferred.
func Format(c model.Citation, style Style) (string, error) {
	switch style {
	case StyleIEEE:
		return formatIEEE(c), nil
	case StyleAPA:
		return formatAPA(c), nil
	case StyleMLA:
		return formatMLA(c), nil
	case StyleChicago:
		return formatChicago(c), nil
	}
	return "", fmt.Errorf("%w: unknown citation style %q", appErr.ErrInvalid, style)
}

// ParseStyle accepts style names case-insensitively.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ieee":
		return StyleIEEE, nil
	case "apa":
		return StyleAPA, nil
	case "mla":
		return StyleMLA, nil
	case "chicago":
		return StyleChicago, nil
	}
	return "", fmt.Errorf("%w: unknown citation style %q", appErr.ErrInvalid, name)
}

func formatIEEE(c model.Citation) string {
	parts := []string{fmt.Sprintf("%s, \"%s,\" %s", c.Authors, c.Title, c.Venue())}
	if c.Volume != "" {
		parts = append(parts, "vol. "+c.Volume)
	}
	if c.Issue != "" {
		parts = append(parts, "no. "+c.Issue)
	}
	if c.Pages != "" {
		parts = append(parts, "pp. "+c.Pages)
	}
	parts = append(parts, fmt.Sprintf("%d", c.Year))
	return strings.Join(parts, ", ") + "."
}

func formatAPA(c model.Citation) string {
	issue := ""
	if c.Issue != "" {
		issue = "(" + c.Issue + ")"
	}
	return fmt.Sprintf("%s (%d). %s. %s, %s%s, %s.",
		c.Authors, c.Year, c.Title, c.Venue(), c.Volume, issue, c.Pages)
}

func formatMLA(c model.Citation) string {
	issue := ""
	if c.Issue != "" {
		issue = "." + c.Issue
	}
	pages := ""
	if c.Pages != "" {
		pages = "pp. " + c.Pages
	}
	return fmt.Sprintf("%s. \"%s.\" %s, vol. %s%s, %d, %s.",
		c.Authors, c.Title, c.Venue(), c.Volume, issue, c.Year, pages)
}

func formatChicago(c model.Citation) string {
	issue := ""
	if c.Issue != "" {
		issue = ", no. " + c.Issue
	}
	return fmt.Sprintf("%s. \"%s.\" %s %s%s (%d): %s.",
		c.Authors, c.Title, c.Venue(), c.Volume, issue, c.Year, c.Pages)
}
