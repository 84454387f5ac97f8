// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

func TestRecordError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *RecordError
		want string
	}{
		{
			name: "line and column",
			err:  &RecordError{Source: "users.csv", Line: 3, Column: "id", Kind: ErrParse, Err: strconv.ErrSyntax},
			want: "users.csv:3: column id: parse error: invalid syntax",
		},
		{
			name: "source only",
			err:  &RecordError{Source: "posts.csv", Kind: ErrIO, Err: errors.New("permission denied")},
			want: "posts.csv: io error: permission denied",
		},
		{
			name: "no cause",
			err:  &RecordError{Source: "posts.csv", Line: 1, Kind: ErrSchema},
			want: "posts.csv:1: schema error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load: %w", &RecordError{Source: "u.csv", Kind: ErrParse, Err: strconv.ErrRange})
	if !errors.Is(err, ErrParse) {
		t.Error("expected ErrParse in chain")
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Error("expected cause in chain")
	}
	if errors.Is(err, ErrSchema) {
		t.Error("unexpected ErrSchema in chain")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"io", &RecordError{Kind: ErrIO}, KindIO},
		{"schema", &RecordError{Kind: ErrSchema}, KindSchema},
		{"parse wrapped", fmt.Errorf("x: %w", &RecordError{Kind: ErrParse}), KindParse},
		{"canceled", context.Canceled, KindCanceled},
		{"deadline", ctx.Err(), KindCanceled},
		{"other", errors.New("boom"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}
