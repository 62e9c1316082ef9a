package importer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/madisonhq/press-dossier/app/assistant"
	"github.com/madisonhq/press-dossier/app/database"
)

// mappableFields are the reporter fields a CSV column can bind to. Anything
// else in a confirm request's mapping is rejected.
var mappableFields = []string{"name", "outlet", "bio", "twitter", "linkedin"}

// Analyzer is the assistant capability the pipeline needs. A failing analyzer
// degrades analysis to an empty mapping; it never fails the upload.
type Analyzer interface {
	AnalyzeCSV(ctx context.Context, headers []string, sampleRows [][]string) (assistant.Analysis, error)
}

type Options struct {
	MaxUploadBytes int64
	MaxRows        int
	SampleRows     int
}

// Pipeline drives the two-phase CSV import: Analyze parses and stages an
// upload, Confirm applies an operator-approved column mapping row by row.
type Pipeline struct {
	analyzer  Analyzer
	sessions  *SessionStore
	reporters database.ReporterStore
	opts      Options
}

func NewPipeline(analyzer Analyzer, sessions *SessionStore, reporters database.ReporterStore, opts Options) *Pipeline {
	return &Pipeline{
		analyzer:  analyzer,
		sessions:  sessions,
		reporters: reporters,
		opts:      opts,
	}
}

// Analyze parses the upload, asks the assistant for a column mapping, flags
// duplicates against the contact store, and stages a session for confirm.
func (p *Pipeline) Analyze(ctx context.Context, filename string, contents []byte) (*AnalyzeResult, error) {
	if int64(len(contents)) > p.opts.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrMalformedInput, p.opts.MaxUploadBytes)
	}
	if len(strings.TrimSpace(string(contents))) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedInput)
	}

	headers, rows, err := parseCSV(contents, p.opts.MaxRows)
	if err != nil {
		return nil, err
	}

	sample := rows
	if len(sample) > p.opts.SampleRows {
		sample = sample[:p.opts.SampleRows]
	}

	analysis, err := p.analyzer.AnalyzeCSV(ctx, headers, sample)
	if err != nil {
		slog.Warn("CSV analysis degraded, column mapping left to the operator", "filename", filename, "error", err.Error())
		analysis = assistant.Analysis{
			ColumnMapping: map[string]string{},
			Confidence:    "low",
			Issues:        []string{"automatic column mapping unavailable, map columns manually"},
		}
	}

	session := &Session{
		ID:        uuid.NewString(),
		State:     StateAnalyzed,
		Filename:  filename,
		Headers:   headers,
		Rows:      rows,
		Sample:    sample,
		Analysis:  analysis,
		CreatedAt: time.Now(),
	}
	p.sessions.Put(session)

	result := &AnalyzeResult{
		SessionID:  session.ID,
		Filename:   filename,
		TotalRows:  len(rows),
		Headers:    headers,
		SampleRows: sample,
		Duplicates: p.findDuplicates(headers, rows, analysis.ColumnMapping["name"]),
		Analysis:   analysis,
	}

	slog.Info("Import session analyzed",
		"session_id", session.ID, "filename", filename,
		"rows", len(rows), "duplicates", len(result.Duplicates))

	return result, nil
}

// Confirm applies the operator's mapping to every staged row. Rows fail
// independently; one bad row never aborts the batch. The session is consumed
// on success.
func (p *Pipeline) Confirm(ctx context.Context, sessionID string, mapping map[string]string, skipDuplicates bool) (*Result, error) {
	session := p.sessions.Get(sessionID)
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if err := validateMapping(mapping, session.Headers); err != nil {
		return nil, err
	}

	colIdx := make(map[string]int, len(session.Headers))
	for i, h := range session.Headers {
		colIdx[h] = i
	}
	value := func(row []string, field string) string {
		col, ok := mapping[field]
		if !ok || col == "" {
			return ""
		}
		return strings.TrimSpace(row[colIdx[col]])
	}

	result := &Result{TotalRows: len(session.Rows)}

	for i, row := range session.Rows {
		// Header is file line 1.
		line := i + 2

		name := value(row, "name")
		if name == "" {
			result.Skipped++
			continue
		}

		existing, err := p.reporters.GetByName(name)
		if err != nil {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, RowError{
				Row: line, Field: "name", Value: name, Reason: "lookup failed: " + err.Error(),
			})
			continue
		}
		if existing != nil && skipDuplicates {
			result.Skipped++
			continue
		}

		handle, twitterURL, err := normalizeTwitter(value(row, "twitter"))
		if err != nil {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, RowError{
				Row: line, Field: "twitter", Value: value(row, "twitter"), Reason: err.Error(),
			})
			continue
		}

		linkedinURL, err := normalizeLinkedIn(value(row, "linkedin"))
		if err != nil {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, RowError{
				Row: line, Field: "linkedin", Value: value(row, "linkedin"), Reason: err.Error(),
			})
			continue
		}

		rep := database.Reporter{
			Name:          name,
			DisplayName:   name,
			Outlet:        value(row, "outlet"),
			Bio:           value(row, "bio"),
			TwitterHandle: handle,
			TwitterURL:    twitterURL,
			LinkedInURL:   linkedinURL,
			Source:        "csv_import",
		}
		if err := p.reporters.Save(rep); err != nil {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, RowError{
				Row: line, Field: "name", Value: name, Reason: "save failed: " + err.Error(),
			})
			continue
		}

		result.Imported++
	}

	session.State = StateConfirmed
	p.sessions.Delete(sessionID)

	slog.Info("Import session confirmed",
		"session_id", sessionID, "total", result.TotalRows,
		"imported", result.Imported, "skipped", result.Skipped, "errors", result.Errors)

	return result, nil
}

// validateMapping re-checks the confirm request's mapping against the staged
// file. The mapping arrives from the operator, not from the analyze response,
// so nothing about it is trusted.
func validateMapping(mapping map[string]string, headers []string) error {
	if mapping["name"] == "" {
		return fmt.Errorf("%w: a name column mapping is required", ErrValidation)
	}
	for field, col := range mapping {
		if !slices.Contains(mappableFields, field) {
			return fmt.Errorf("%w: unknown field %q in column mapping", ErrValidation, field)
		}
		if col != "" && !slices.Contains(headers, col) {
			return fmt.Errorf("%w: column %q not present in file", ErrValidation, col)
		}
	}
	return nil
}

func (p *Pipeline) findDuplicates(headers []string, rows [][]string, nameCol string) []string {
	if nameCol == "" || !slices.Contains(headers, nameCol) {
		return nil
	}
	idx := slices.Index(headers, nameCol)

	var duplicates []string
	seen := make(map[string]bool)
	for _, row := range rows {
		name := strings.TrimSpace(row[idx])
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		existing, err := p.reporters.GetByName(name)
		if err != nil {
			slog.Warn("Duplicate check skipped for row", "name", name, "error", err.Error())
			continue
		}
		if existing != nil {
			duplicates = append(duplicates, name)
		}
	}
	return duplicates
}
