// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package dataset loads users and posts from delimited text files.

# File Formats

Both files are comma-separated with a header row. Columns are matched by
name, so their order does not matter and extra columns are ignored:

	users.csv: id,username,preferences
	posts.csv: id,title,tags

The id column holds a base-10 unsigned 32-bit integer. Tag fields are a
comma-separated list inside one quoted field and are canonicalized with
tags.Parse:

	id,username,preferences
	1,alice,"Tech_, gaming ,MUSIC"

# Error Handling

Loading is fail-fast. The first bad row aborts the load and no partial result
is returned. Every failure is a *RecordError that matches one of the kind
sentinels with errors.Is:

  - ErrIO: the file could not be opened or read
  - ErrSchema: header or column missing, wrong field count, malformed
    quoting, or a duplicate id when strict ids are enabled
  - ErrParse: an id is not a valid unsigned integer

	users, err := loader.LoadUsers(ctx, "users.csv")
	if errors.Is(err, dataset.ErrParse) {
	    var rerr *dataset.RecordError
	    errors.As(err, &rerr)
	    log.Printf("bad id on line %d", rerr.Line)
	}

# Thread Safety

A Loader may be shared between goroutines. Each load reads its source
sequentially and checks the context between rows.
*/
package dataset
