// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Error kinds. A *RecordError always matches exactly one of these.
var (
	// ErrIO indicates the source could not be opened or read.
	ErrIO = errors.New("io error")

	// ErrSchema indicates the source does not have the expected shape.
	ErrSchema = errors.New("schema error")

	// ErrParse indicates a field value could not be parsed.
	ErrParse = errors.New("parse error")
)

// Error kind labels returned by ErrorKind.
const (
	KindIO       = "io"
	KindSchema   = "schema"
	KindParse    = "parse"
	KindCanceled = "canceled"
	KindOther    = "other"
)

// RecordError describes a load failure and where it happened.
// It unwraps to both its Kind sentinel and the underlying cause.
type RecordError struct {
	// Source is the file path or reader name.
	Source string

	// Line is the 1-based line number, or 0 when not tied to a line.
	Line int

	// Column is the column name, or empty when not tied to a column.
	Column string

	// Kind is ErrIO, ErrSchema or ErrParse.
	Kind error

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Line > 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Column != "" {
		b.WriteString(": column ")
		b.WriteString(e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the kind sentinel and the cause.
func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ErrorKind classifies err into a short label suitable for metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrSchema):
		return KindSchema
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindOther
	}
}
