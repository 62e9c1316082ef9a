package importer

import (
	"time"

	"github.com/madisonhq/press-dossier/app/assistant"
)

// Session states. A session is created in StateAnalyzed; confirm moves it to
// StateConfirmed and removes it. Re-uploading the same file always creates a
// fresh session with a new id.
const (
	StateAnalyzed  = "analyzed"
	StateConfirmed = "confirmed"
)

// Session holds one uploaded CSV between analyze and confirm. Sessions live
// in memory only and expire after a TTL.
type Session struct {
	ID        string
	State     string
	Filename  string
	Headers   []string
	Rows      [][]string
	Sample    [][]string
	Analysis  assistant.Analysis
	CreatedAt time.Time
}

// AnalyzeResult is what the operator sees after upload: the proposed mapping,
// a preview, and any duplicates already present in the contact store.
type AnalyzeResult struct {
	SessionID  string             `json:"session_id"`
	Filename   string             `json:"filename"`
	TotalRows  int                `json:"total_rows"`
	Headers    []string           `json:"headers"`
	SampleRows [][]string         `json:"sample_rows"`
	Duplicates []string           `json:"duplicates,omitempty"`
	Analysis   assistant.Analysis `json:"analysis"`
}

// RowError describes one data row that could not be imported. Row numbers are
// file line numbers, so the header row is line 1 and the first data row is 2.
type RowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// Result is the per-row accounting of a confirmed import. Imported + Skipped +
// Errors always equals TotalRows.
type Result struct {
	TotalRows    int        `json:"total_rows"`
	Imported     int        `json:"imported"`
	Skipped      int        `json:"skipped"`
	Errors       int        `json:"errors"`
	ErrorDetails []RowError `json:"error_details,omitempty"`
}
