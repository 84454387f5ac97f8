// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package generate writes synthetic user and post datasets.
//
// The vocabulary deliberately mixes spellings of the same tag ("Rock",
// "ROCK_") so the output exercises tag normalization. Output is fully
// determined by the seed.
package generate

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Vocabulary is the raw tag pool rows draw from.
var Vocabulary = []string{
	"Anime", "ANIME_", "Manga", "Mangá", "Music", "Rock", "ROCK_", "J-Pop", "Jpop",
	"K-Pop", "Kpop", "Programming", "Technology", "Rust", "Go", "Python", "PYTHON_",
	"Gaming", "Games", "GAMES_", "Hiking", "Cooking",
}

const (
	usernameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	minNameLen       = 5
	maxNameLen       = 15
	minTags          = 2
	maxTags          = 5
	tagJoiner        = ", "
)

// File names written by WriteDir.
const (
	UsersFile = "users.csv"
	PostsFile = "posts.csv"
)

// Options controls generation.
type Options struct {
	// Users is the number of user rows.
	Users int

	// Posts is the number of post rows.
	Posts int

	// Seed makes output reproducible.
	Seed uint64
}

// Generator produces synthetic rows from a seeded source.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Username returns 5 to 15 lowercase letters and digits.
func (g *Generator) Username() string {
	n := minNameLen + g.rng.IntN(maxNameLen-minNameLen+1)
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(usernameAlphabet[g.rng.IntN(len(usernameAlphabet))])
	}
	return b.String()
}

// Tags returns 2 to 5 distinct vocabulary entries joined with ", ".
func (g *Generator) Tags() string {
	n := minTags + g.rng.IntN(maxTags-minTags+1)
	perm := g.rng.Perm(len(Vocabulary))[:n]
	picked := make([]string, n)
	for i, idx := range perm {
		picked[i] = Vocabulary[idx]
	}
	return strings.Join(picked, tagJoiner)
}

// WriteUsers writes a users CSV with n rows and ids 1..n.
func (g *Generator) WriteUsers(ctx context.Context, w io.Writer, n int) error {
	return g.write(ctx, w, []string{"id", "username", "preferences"}, n, func(id int) []string {
		return []string{strconv.Itoa(id), g.Username(), g.Tags()}
	})
}

// WritePosts writes a posts CSV with n rows and ids 1..n.
func (g *Generator) WritePosts(ctx context.Context, w io.Writer, n int) error {
	return g.write(ctx, w, []string{"id", "title", "tags"}, n, func(id int) []string {
		title := fmt.Sprintf("Post: #%d: %s's Content", id, g.Username())
		return []string{strconv.Itoa(id), title, g.Tags()}
	})
}

func (g *Generator) write(ctx context.Context, w io.Writer, header []string, n int, row func(id int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for id := 1; id <= n; id++ {
		if id%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(row(id)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDir writes UsersFile and PostsFile into dir, creating it if needed.
// Users are generated before posts so a given seed always yields the same
// pair of files.
func WriteDir(ctx context.Context, dir string, opts Options, logger zerolog.Logger) error {
	if opts.Users < 0 || opts.Posts < 0 {
		return fmt.Errorf("generate: row counts must be non-negative, got users=%d posts=%d", opts.Users, opts.Posts)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("generate: create %s: %w", dir, err)
	}

	g := New(opts.Seed)
	files := []struct {
		name  string
		rows  int
		write func(context.Context, io.Writer, int) error
	}{
		{UsersFile, opts.Users, g.WriteUsers},
		{PostsFile, opts.Posts, g.WritePosts},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(ctx, path, f.rows, f.write); err != nil {
			return fmt.Errorf("generate: %s: %w", path, err)
		}
		logger.Info().Str("path", path).Int("rows", f.rows).Msg("Dataset generated")
	}
	return nil
}

func writeFile(ctx context.Context, path string, rows int, write func(context.Context, io.Writer, int) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(ctx, f, rows)
}
