// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/models"
	"github.com/tomtom215/affinity/internal/tags"
)

const utf8BOM = "\ufeff"

// schema names the three columns every dataset needs.
type schema struct {
	dataset string
	id      string
	name    string
	tags    string
}

var (
	userSchema = schema{dataset: DatasetUsers, id: "id", name: "username", tags: "preferences"}
	postSchema = schema{dataset: DatasetPosts, id: "id", name: "title", tags: "tags"}
)

// Loader reads user and post datasets.
type Loader struct {
	cfg    Config
	logger zerolog.Logger

	mu    sync.Mutex
	stats []LoadStats
}

// NewLoader creates a Loader.
func NewLoader(cfg Config, logger zerolog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.With().Str("component", "dataset").Logger(),
	}
}

// Stats returns statistics for every load performed so far, oldest first.
func (l *Loader) Stats() []LoadStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LoadStats, len(l.stats))
	copy(out, l.stats)
	return out
}

// LoadUsers reads the users file at path.
func (l *Loader) LoadUsers(ctx context.Context, path string) ([]models.User, error) {
	var users []models.User
	err := l.loadFile(path, func(f io.Reader) error {
		var err error
		users, err = l.ReadUsers(ctx, f, path)
		return err
	})
	return users, err
}

// LoadPosts reads the posts file at path.
func (l *Loader) LoadPosts(ctx context.Context, path string) ([]models.Post, error) {
	var posts []models.Post
	err := l.loadFile(path, func(f io.Reader) error {
		var err error
		posts, err = l.ReadPosts(ctx, f, path)
		return err
	})
	return posts, err
}

// ReadUsers reads users from r. Source names r in errors and stats.
func (l *Loader) ReadUsers(ctx context.Context, r io.Reader, source string) ([]models.User, error) {
	return readRecords(ctx, l, r, source, userSchema, func(id uint32, name string, set tags.Set) models.User {
		return models.User{ID: id, Username: name, Preferences: set}
	})
}

// ReadPosts reads posts from r. Source names r in errors and stats.
func (l *Loader) ReadPosts(ctx context.Context, r io.Reader, source string) ([]models.Post, error) {
	return readRecords(ctx, l, r, source, postSchema, func(id uint32, title string, set tags.Set) models.Post {
		return models.Post{ID: id, Title: title, Tags: set}
	})
}

func (l *Loader) loadFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &RecordError{Source: path, Kind: ErrIO, Err: err}
	}
	defer f.Close()
	return read(f)
}

func (l *Loader) record(s LoadStats) {
	l.mu.Lock()
	l.stats = append(l.stats, s)
	l.mu.Unlock()

	if s.Err != nil {
		l.logger.Error().
			Err(s.Err).
			Str("dataset", s.Dataset).
			Str("source", s.Source).
			Int("rows", s.Rows).
			Str("kind", ErrorKind(s.Err)).
			Msg("Dataset load failed")
		return
	}

	l.logger.Info().
		Str("dataset", s.Dataset).
		Str("source", s.Source).
		Int("rows", s.Rows).
		Dur("duration", s.Duration()).
		Float64("rows_per_second", s.RowsPerSecond()).
		Msg("Dataset loaded")
}

// columnIndex maps required column names to field positions.
type columnIndex struct {
	id, name, tags int
}

func readRecords[T any](
	ctx context.Context,
	l *Loader,
	r io.Reader,
	source string,
	sc schema,
	build func(id uint32, name string, set tags.Set) T,
) (out []T, err error) {
	stats := LoadStats{Dataset: sc.dataset, Source: source, StartTime: time.Now()}
	defer func() {
		stats.EndTime = time.Now()
		stats.Err = err
		if err != nil {
			out = nil
		}
		l.record(stats)
	}()

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &RecordError{Source: source, Line: 1, Kind: ErrSchema, Err: errors.New("missing header row")}
		}
		return nil, readError(source, err)
	}

	cols, err := indexColumns(source, header, sc)
	if err != nil {
		return nil, err
	}

	out = []T{}
	var seen map[uint32]int
	if l.cfg.StrictIDs {
		seen = make(map[uint32]int)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load %s: %w", source, err)
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(source, err)
		}
		line, _ := cr.FieldPos(0)

		id, err := strconv.ParseUint(strings.TrimSpace(rec[cols.id]), 10, 32)
		if err != nil {
			return nil, &RecordError{Source: source, Line: line, Column: sc.id, Kind: ErrParse, Err: err}
		}

		if seen != nil {
			if first, dup := seen[uint32(id)]; dup {
				return nil, &RecordError{
					Source: source,
					Line:   line,
					Column: sc.id,
					Kind:   ErrSchema,
					Err:    fmt.Errorf("duplicate id %d (first seen on line %d)", id, first),
				}
			}
			seen[uint32(id)] = line
		}

		out = append(out, build(uint32(id), rec[cols.name], tags.Parse(rec[cols.tags])))
		stats.Rows++
	}

	return out, nil
}

func indexColumns(source string, header []string, sc schema) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := pos[name]; !ok {
			pos[name] = i
		}
	}

	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, &RecordError{Source: source, Line: 1, Column: name, Kind: ErrSchema, Err: errors.New("missing column")}
		}
		return i, nil
	}

	var (
		idx columnIndex
		err error
	)
	if idx.id, err = lookup(sc.id); err != nil {
		return idx, err
	}
	if idx.name, err = lookup(sc.name); err != nil {
		return idx, err
	}
	if idx.tags, err = lookup(sc.tags); err != nil {
		return idx, err
	}
	return idx, nil
}

// readError classifies an error returned by csv.Reader.Read. Parse errors are
// malformed input; anything else came from the underlying reader.
func readError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RecordError{Source: source, Line: pe.Line, Kind: ErrSchema, Err: pe.Err}
	}
	return &RecordError{Source: source, Kind: ErrIO, Err: err}
}
