package dossier

import (
	"context"
	"time"
)

// ArticleSource returns a reporter's recent bylines, most recent first, with
// whatever social links the provider knows about. Articles without a parseable
// publish date are dropped by the adapter before they get here.
type ArticleSource interface {
	AuthorArticles(ctx context.Context, reporterName string, limit int) (AuthorSearchResult, error)
}

// Assistant produces a one-line topical summary plus an optional beat tag for
// a single article, and a short reporter bio composed from a set of bylines.
// Failures never abort an aggregation; the caller degrades to empty output.
type Assistant interface {
	Summarize(ctx context.Context, headline, outlet string) (summary string, beat string, err error)
	ComposeBio(ctx context.Context, reporterName string, articles []Article) (string, error)
}

// Store is the persistent dossier cache. Get returns the cached dossier and
// its computation timestamp, or nil when the key is unknown; the staleness
// decision belongs to the caller. Put fully replaces any prior value.
type Store interface {
	Get(key string) (*Dossier, time.Time, error)
	Put(key string, d *Dossier) error
}

// ReporterProfiles receives best-effort profile updates after a recomputation.
type ReporterProfiles interface {
	TouchProfile(p Profile) error
}
