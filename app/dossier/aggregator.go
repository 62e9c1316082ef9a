package dossier

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Options are the aggregation policy knobs. All of them come from
// configuration; nothing here is hard-coded.
type Options struct {
	ArticleLimit int
	Staleness    time.Duration
	MinShare     int
}

// Aggregator orchestrates the article source and the text assistant into a
// cached dossier per reporter.
type Aggregator struct {
	source    ArticleSource
	assistant Assistant
	store     Store
	profiles  ReporterProfiles
	beats     *Beats
	opts      Options
}

func NewAggregator(source ArticleSource, assistant Assistant, store Store,
	profiles ReporterProfiles, beats *Beats, opts Options) *Aggregator {
	if beats == nil {
		beats = DefaultBeats()
	}
	return &Aggregator{
		source:    source,
		assistant: assistant,
		store:     store,
		profiles:  profiles,
		beats:     beats,
		opts:      opts,
	}
}

// GetDossier returns the cached dossier when it is fresh enough, otherwise
// recomputes from the article source and text assistant and replaces the
// cached value. A source failure leaves the prior cached value untouched.
func (a *Aggregator) GetDossier(ctx context.Context, reporterName string, forceRefresh bool) (*Dossier, error) {
	name := NormalizeName(reporterName)
	if name == "" {
		return nil, ErrInvalidName
	}
	key := Key(name)

	if !forceRefresh {
		cached, computedAt, err := a.store.Get(key)
		if err != nil {
			slog.Warn("Dossier cache read failed, recomputing", "reporter", key, "error", err)
		} else if cached != nil && time.Since(computedAt) <= a.opts.Staleness {
			slog.Debug("Dossier cache hit", "reporter", key, "computed_at", computedAt)
			return cached, nil
		}
	}

	result, err := a.source.AuthorArticles(ctx, name, a.opts.ArticleLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles for %q: %w", name, err)
	}

	articles := a.summarize(ctx, result.Articles)

	changed, note := DetectOutletChange(articles, a.opts.MinShare)

	d := &Dossier{
		ReporterName:         name,
		Articles:             articles,
		OutletHistory:        BuildOutletHistory(articles),
		BeatHistory:          BuildBeatHistory(articles),
		CurrentOutlet:        CurrentPrimaryOutlet(articles),
		OutletChangeDetected: changed,
		OutletChangeNote:     note,
		Bio:                  a.composeBio(ctx, name, articles),
		SocialLinks:          result.SocialLinks,
		ComputedAt:           time.Now().UTC(),
	}

	if err := a.store.Put(key, d); err != nil {
		// The dossier itself is still good; the next lookup just recomputes.
		slog.Warn("Dossier cache write failed", "reporter", key, "error", err)
	}

	a.touchProfile(d)

	slog.Info("Dossier computed",
		"reporter", key,
		"articles", len(d.Articles),
		"outlets", len(d.OutletHistory),
		"beats", len(d.BeatHistory),
		"outlet_change", d.OutletChangeDetected)

	return d, nil
}

// summarize fills in missing summaries and classifies beats. Assistant
// failures are per-article: the article keeps an empty summary and falls back
// to keyword classification.
func (a *Aggregator) summarize(ctx context.Context, articles []Article) []Article {
	out := make([]Article, len(articles))
	copy(out, articles)

	for i := range out {
		if out[i].Summary == "" {
			summary, beat, err := a.assistant.Summarize(ctx, out[i].Headline, out[i].Outlet)
			if err != nil {
				slog.Warn("Summarization failed, keeping article without summary",
					"url", out[i].URL, "error", err)
			} else {
				out[i].Summary = summary
				if out[i].Beat == "" {
					out[i].Beat = beat
				}
			}
		}

		if out[i].Beat == "" {
			text := out[i].Summary
			if text == "" {
				text = out[i].Headline
			}
			out[i].Beat = a.beats.Classify(text)
		}
	}

	return out
}

// composeBio asks the assistant for a short byline-grounded bio. Failures
// leave the bio empty; a dossier is complete without one.
func (a *Aggregator) composeBio(ctx context.Context, name string, articles []Article) string {
	if len(articles) == 0 {
		return ""
	}
	bio, err := a.assistant.ComposeBio(ctx, name, articles)
	if err != nil {
		slog.Warn("Bio composition failed, leaving bio empty", "reporter", name, "error", err.Error())
		return ""
	}
	return bio
}

func (a *Aggregator) touchProfile(d *Dossier) {
	if a.profiles == nil {
		return
	}
	if d.SocialLinks == nil && d.CurrentOutlet == "" && d.Bio == "" {
		return
	}
	p := Profile{
		Name:        Key(d.ReporterName),
		DisplayName: d.ReporterName,
		Outlet:      d.CurrentOutlet,
		Bio:         d.Bio,
		SocialLinks: d.SocialLinks,
	}
	if err := a.profiles.TouchProfile(p); err != nil {
		slog.Warn("Reporter profile update failed", "reporter", p.Name, "error", err)
	}
}
