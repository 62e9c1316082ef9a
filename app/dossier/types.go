package dossier

import (
	"time"
)

// Article is one published piece attributed to a reporter. Summary stays empty
// until the text assistant succeeds for it; Beat stays empty when neither the
// assistant nor the keyword buckets produce a classification.
type Article struct {
	Headline    string    `json:"headline"`
	Outlet      string    `json:"outlet"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
	Summary     string    `json:"summary,omitempty"`
	Beat        string    `json:"beat,omitempty"`
}

type OutletHistoryEntry struct {
	Outlet string `json:"outlet"`
	Count  int    `json:"count"`
}

type BeatEntry struct {
	Beat  string `json:"beat"`
	Count int    `json:"count"`
}

type SocialLinks struct {
	TwitterHandle string `json:"twitter_handle,omitempty"`
	TwitterURL    string `json:"twitter_url,omitempty"`
	LinkedInURL   string `json:"linkedin_url,omitempty"`
	WebsiteURL    string `json:"website_url,omitempty"`
	Title         string `json:"title,omitempty"`
}

// Dossier is the aggregate artifact for one reporter. It is written whole by
// the aggregator and read-only everywhere else.
type Dossier struct {
	ReporterName         string               `json:"reporter_name"`
	Articles             []Article            `json:"articles"`
	OutletHistory        []OutletHistoryEntry `json:"outlet_history"`
	BeatHistory          []BeatEntry          `json:"beat_history"`
	CurrentOutlet        string               `json:"current_outlet,omitempty"`
	OutletChangeDetected bool                 `json:"outlet_change_detected"`
	OutletChangeNote     string               `json:"outlet_change_note,omitempty"`
	Bio                  string               `json:"bio,omitempty"`
	SocialLinks          *SocialLinks         `json:"social_links,omitempty"`
	ComputedAt           time.Time            `json:"computed_at"`
}

// AuthorSearchResult is the article source's answer for one reporter query.
type AuthorSearchResult struct {
	Articles    []Article
	SocialLinks *SocialLinks
}

// Profile is the slice of a dossier worth persisting on the reporter record.
type Profile struct {
	Name        string
	DisplayName string
	Outlet      string
	Bio         string
	SocialLinks *SocialLinks
}
