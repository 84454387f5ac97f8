// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package report builds and renders the recommendation report.

For each of the first N loaded users (the subjects) the Driver asks the
recommend.Engine for a similar-users list and a matching-posts list, then
hands the collected entries to a Renderer.

	renderer, _ := report.NewRenderer(report.FormatText)
	driver, err := report.NewDriver(engine, renderer, report.Config{
	    Subjects:  15,
	    UserLimit: 5,
	    PostLimit: 5,
	}, logger)
	if err != nil {
	    return err
	}
	if err := driver.Run(ctx, users, posts, os.Stdout); err != nil {
	    return err
	}

Subjects are scored concurrently but entries always come back in subject
order. Nothing is written when building or rendering fails.
*/
package report
