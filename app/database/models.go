package database

import (
	"time"
)

// Reporter is a confirmed contact record. Name holds the normalized
// (trimmed, whitespace-collapsed, lowercased) form used as the unique key;
// DisplayName preserves the casing the record arrived with.
type Reporter struct {
	ID            int64
	Name          string
	DisplayName   string
	Outlet        string
	Bio           string
	TwitterHandle string
	TwitterURL    string
	LinkedInURL   string
	WebsiteURL    string
	Title         string
	Source        string // "csv_import" or "dossier"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
