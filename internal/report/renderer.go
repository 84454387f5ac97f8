// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by NewRenderer for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

// Renderer writes report entries to w.
type Renderer interface {
	// Name returns the format name.
	Name() string

	// Render writes entries to w.
	Render(w io.Writer, entries []Entry) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{Indent: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

const (
	textBanner    = "========== Recommended users and posts =========="
	textSeparator = "------------------------------------------------------------"
)

// TextRenderer renders a human-readable report.
type TextRenderer struct{}

// Name implements Renderer.
func (TextRenderer) Name() string { return FormatText }

// Render implements Renderer.
func (TextRenderer) Render(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\n%s\n", textBanner)
	for _, e := range entries {
		fmt.Fprintf(bw, "\nUser %s (ID: %d)\n", e.User.Username, e.User.ID)
		fmt.Fprintf(bw, "Preferences: %s\n", e.User.Preferences)

		fmt.Fprintln(bw, "Recommended users:")
		for i, s := range e.SimilarUsers {
			fmt.Fprintf(bw, "  %d. %s (ID: %d) - Preferences: %s\n", i+1, s.Item.Username, s.Item.ID, s.Item.Preferences)
		}

		fmt.Fprintln(bw, "Recommended posts:")
		for i, s := range e.Posts {
			fmt.Fprintf(bw, "  %d. %s (ID: %d) - Tags: %s\n", i+1, s.Item.Title, s.Item.ID, s.Item.Tags)
		}

		fmt.Fprintf(bw, "\n%s\n", textSeparator)
	}

	return bw.Flush()
}

// JSONRenderer renders the report as a single JSON document including scores.
type JSONRenderer struct {
	// Indent pretty-prints the document.
	Indent bool
}

// jsonReport is the top-level JSON document.
type jsonReport struct {
	Subjects int     `json:"subjects"`
	Entries  []Entry `json:"entries"`
}

// Name implements Renderer.
func (JSONRenderer) Name() string { return FormatJSON }

// Render implements Renderer.
func (r JSONRenderer) Render(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonReport{Subjects: len(entries), Entries: entries})
}
