package dossier

import (
	"fmt"
	"sort"
	"time"
)

// BuildOutletHistory counts articles per non-empty outlet. Entries are sorted
// by count descending, ties broken by outlet name ascending, so output is
// deterministic for any input order.
func BuildOutletHistory(articles []Article) []OutletHistoryEntry {
	counts := make(map[string]int)
	for _, a := range articles {
		if a.Outlet != "" {
			counts[a.Outlet]++
		}
	}

	entries := make([]OutletHistoryEntry, 0, len(counts))
	for outlet, count := range counts {
		entries = append(entries, OutletHistoryEntry{Outlet: outlet, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Outlet < entries[j].Outlet
	})

	return entries
}

// BuildBeatHistory counts articles per classified beat, same ordering rule as
// BuildOutletHistory. Articles without a beat are not counted.
func BuildBeatHistory(articles []Article) []BeatEntry {
	counts := make(map[string]int)
	for _, a := range articles {
		if a.Beat != "" {
			counts[a.Beat]++
		}
	}

	entries := make([]BeatEntry, 0, len(counts))
	for beat, count := range counts {
		entries = append(entries, BeatEntry{Beat: beat, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Beat < entries[j].Beat
	})

	return entries
}

// CurrentPrimaryOutlet is the outlet of the single most recent article by
// publish date. Date ties keep the earlier article in provider order.
func CurrentPrimaryOutlet(articles []Article) string {
	if len(articles) == 0 {
		return ""
	}
	best := articles[0]
	for _, a := range articles[1:] {
		if a.PublishedAt.After(best.PublishedAt) {
			best = a
		}
	}
	return best.Outlet
}

// DetectOutletChange flags a reporter whose most recent outlet differs from
// their historically dominant one. The prior-outlet candidate is the
// highest-count outlet excluding the current primary; a change is flagged only
// when that candidate still matches or beats the current outlet's own count
// and reaches minShare articles. The note names both outlets and the observed
// date range at the prior outlet, phrased as observation, not employment fact.
func DetectOutletChange(articles []Article, minShare int) (bool, string) {
	current := CurrentPrimaryOutlet(articles)
	if current == "" {
		return false, ""
	}

	history := BuildOutletHistory(articles)
	if len(history) < 2 {
		return false, ""
	}

	currentCount := 0
	var prior *OutletHistoryEntry
	for i := range history {
		if history[i].Outlet == current {
			currentCount = history[i].Count
		} else if prior == nil {
			prior = &history[i]
		}
	}
	if prior == nil {
		return false, ""
	}

	if prior.Count < currentCount || prior.Count < minShare {
		return false, ""
	}

	start, end := outletDateRange(articles, prior.Outlet)
	note := fmt.Sprintf(
		"Possible outlet change based on observed article outlets: previously %s (%s to %s), now %s.",
		prior.Outlet, start.Format("Jan 2006"), end.Format("Jan 2006"), current)

	return true, note
}

func outletDateRange(articles []Article, outlet string) (time.Time, time.Time) {
	var start, end time.Time
	for _, a := range articles {
		if a.Outlet != outlet {
			continue
		}
		if start.IsZero() || a.PublishedAt.Before(start) {
			start = a.PublishedAt
		}
		if end.IsZero() || a.PublishedAt.After(end) {
			end = a.PublishedAt
		}
	}
	return start, end
}
