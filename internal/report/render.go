// Package report renders summary reports for export.
package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// htmlShell wraps rendered report content in a minimal standalone page.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML converts a markdown report to a standalone HTML document.
func HTML(title, markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return fmt.Appendf(nil, htmlShell, title, buf.String()), nil
}

// Hours formats a duration in hours with one decimal place.
func Hours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

// Percent formats a probability as a percentage with one decimal place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
