// SPDX-License-Identifier: MPL-2.0

// Package render prints entry mappings and pattern roots in the output
// formats supported by the CLI.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

// ErrMismatchedRoots is returned by Roots when patterns and roots differ in length.
var ErrMismatchedRoots = errors.New("patterns and roots differ in length")

type (
	// Options selects the output format and its styling.
	Options struct {
		Format config.OutputFormat
		// ColorScheme picks the glamour style for markdown. Text output
		// follows the color profile of the destination writer.
		ColorScheme config.ColorScheme
		// Plain disables all styling, e.g. for tests or piped output.
		Plain bool
		// Width wraps markdown output; zero means no wrapping.
		Width int
	}

	// RootRow pairs a pattern with its root directory.
	RootRow struct {
		Pattern string `json:"pattern" yaml:"pattern" toml:"pattern"`
		Root    string `json:"root" yaml:"root" toml:"root"`
	}

	rootsDoc struct {
		Roots []RootRow `json:"roots" yaml:"roots" toml:"roots"`
	}

	row struct {
		key, value string
	}
)

// Entries writes the mapping sorted by entry id.
func Entries(w io.Writer, entries globentry.EntryMap, opts Options) error {
	flat := make(map[string]string, len(entries))
	rows := make([]row, 0, len(entries))
	for id, path := range entries {
		flat[id.String()] = path.String()
		rows = append(rows, row{key: id.String(), value: path.String()})
	}
	slices.SortFunc(rows, func(a, b row) int { return strings.Compare(a.key, b.key) })

	return write(w, flat, rows, [2]string{"Entry", "Path"}, opts)
}

// Roots writes each pattern with its root directory, in pattern order.
func Roots(w io.Writer, patterns []types.GlobPattern, roots []types.FilesystemPath, opts Options) error {
	if len(patterns) != len(roots) {
		return fmt.Errorf("%w: %d patterns, %d roots", ErrMismatchedRoots, len(patterns), len(roots))
	}
	doc := rootsDoc{Roots: make([]RootRow, len(patterns))}
	rows := make([]row, len(patterns))
	for i := range patterns {
		doc.Roots[i] = RootRow{Pattern: patterns[i].String(), Root: roots[i].String()}
		rows[i] = row{key: patterns[i].String(), value: roots[i].String()}
	}

	return write(w, doc, rows, [2]string{"Pattern", "Root"}, opts)
}

func write(w io.Writer, doc any, rows []row, headers [2]string, opts Options) error {
	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatText:
		return writeText(w, rows, opts)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case config.FormatMarkdown:
		return writeMarkdown(w, rows, headers, opts)
	default:
		return format.Validate()
	}
}

func writeText(w io.Writer, rows []row, opts Options) error {
	r := lipgloss.NewRenderer(w)
	keyStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	arrowStyle := r.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	if opts.Plain {
		keyStyle, arrowStyle = r.NewStyle(), r.NewStyle()
	}

	width := 0
	for _, rw := range rows {
		width = max(width, lipgloss.Width(rw.key))
	}

	var b strings.Builder
	for _, rw := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(rw.key))
		b.WriteString(keyStyle.Render(rw.key))
		b.WriteString(pad)
		b.WriteString(" ")
		b.WriteString(arrowStyle.Render("->"))
		b.WriteString(" ")
		b.WriteString(rw.value)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// markdownTable renders rows as a GitHub-flavoured markdown table.
func markdownTable(rows []row, headers [2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", headers[0], headers[1])
	for _, rw := range rows {
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", escapeCell(rw.key), escapeCell(rw.value))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeMarkdown(w io.Writer, rows []row, headers [2]string, opts Options) error {
	md := markdownTable(rows, headers)

	var rendererOpts []glamour.TermRendererOption
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}
	switch {
	case opts.Plain:
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle("notty"))
	case opts.ColorScheme == config.ColorSchemeDark || opts.ColorScheme == config.ColorSchemeLight:
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.ColorScheme.String()))
	default:
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
