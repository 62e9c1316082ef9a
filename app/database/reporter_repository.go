package database

import (
	"database/sql"
	"fmt"

	"github.com/madisonhq/press-dossier/app/dossier"
)

// ReporterRepository handles database operations for reporter contact records
type ReporterRepository struct {
	db *DB
}

func NewReporterRepository(db *DB) *ReporterRepository {
	return &ReporterRepository{db: db}
}

// GetByName looks a reporter up under case/whitespace-insensitive comparison.
// Returns nil without error when no record exists.
func (r *ReporterRepository) GetByName(name string) (*Reporter, error) {
	var rep Reporter
	err := r.db.QueryRow(`
		SELECT id, name, display_name, outlet, bio,
		       twitter_handle, twitter_url, linkedin_url, website_url, title,
		       source, created_at, updated_at
		FROM reporters
		WHERE name = ?
	`, dossier.Key(name)).Scan(
		&rep.ID, &rep.Name, &rep.DisplayName, &rep.Outlet, &rep.Bio,
		&rep.TwitterHandle, &rep.TwitterURL, &rep.LinkedInURL, &rep.WebsiteURL, &rep.Title,
		&rep.Source, &rep.CreatedAt, &rep.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter by name: %w", err)
	}

	return &rep, nil
}

// Save inserts a reporter or overwrites the existing record's fields wholesale.
// The import confirm path uses this both for new rows and for explicit
// duplicate overwrite.
func (r *ReporterRepository) Save(rep Reporter) error {
	_, err := r.db.Exec(`
		INSERT INTO reporters (
			name, display_name, outlet, bio,
			twitter_handle, twitter_url, linkedin_url, website_url, title, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			display_name = excluded.display_name,
			outlet = excluded.outlet,
			bio = excluded.bio,
			twitter_handle = excluded.twitter_handle,
			twitter_url = excluded.twitter_url,
			linkedin_url = excluded.linkedin_url,
			website_url = excluded.website_url,
			title = excluded.title,
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP
	`, dossier.Key(rep.Name), rep.DisplayName, rep.Outlet, rep.Bio,
		rep.TwitterHandle, rep.TwitterURL, rep.LinkedInURL, rep.WebsiteURL, rep.Title,
		rep.Source)

	if err != nil {
		return fmt.Errorf("failed to save reporter: %w", err)
	}

	return nil
}

// TouchProfile merges dossier-derived profile data into the reporter record.
// Empty incoming fields never clobber existing values; this is the implicit
// update path, not an operator-confirmed import.
func (r *ReporterRepository) TouchProfile(p dossier.Profile) error {
	var handle, twitterURL, linkedinURL, websiteURL, title string
	if p.SocialLinks != nil {
		handle = p.SocialLinks.TwitterHandle
		twitterURL = p.SocialLinks.TwitterURL
		linkedinURL = p.SocialLinks.LinkedInURL
		websiteURL = p.SocialLinks.WebsiteURL
		title = p.SocialLinks.Title
	}

	_, err := r.db.Exec(`
		INSERT INTO reporters (
			name, display_name, outlet, bio,
			twitter_handle, twitter_url, linkedin_url, website_url, title, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'dossier')
		ON CONFLICT(name) DO UPDATE SET
			display_name = COALESCE(NULLIF(excluded.display_name, ''), reporters.display_name),
			outlet = COALESCE(NULLIF(excluded.outlet, ''), reporters.outlet),
			bio = COALESCE(NULLIF(excluded.bio, ''), reporters.bio),
			twitter_handle = COALESCE(NULLIF(excluded.twitter_handle, ''), reporters.twitter_handle),
			twitter_url = COALESCE(NULLIF(excluded.twitter_url, ''), reporters.twitter_url),
			linkedin_url = COALESCE(NULLIF(excluded.linkedin_url, ''), reporters.linkedin_url),
			website_url = COALESCE(NULLIF(excluded.website_url, ''), reporters.website_url),
			title = COALESCE(NULLIF(excluded.title, ''), reporters.title),
			updated_at = CURRENT_TIMESTAMP
	`, dossier.Key(p.Name), p.DisplayName, p.Outlet, p.Bio,
		handle, twitterURL, linkedinURL, websiteURL, title)

	if err != nil {
		return fmt.Errorf("failed to touch reporter profile: %w", err)
	}

	return nil
}

// Count returns the total number of reporter records
func (r *ReporterRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM reporters").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get reporter count: %w", err)
	}
	return count, nil
}
