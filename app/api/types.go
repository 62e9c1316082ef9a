package api

import (
	"context"

	"github.com/madisonhq/press-dossier/app/database"
	"github.com/madisonhq/press-dossier/app/dossier"
	"github.com/madisonhq/press-dossier/app/importer"
	"github.com/madisonhq/press-dossier/app/source"
)

// DossierService builds or serves a cached dossier for one reporter.
type DossierService interface {
	GetDossier(ctx context.Context, reporterName string, forceRefresh bool) (*dossier.Dossier, error)
}

// TopicSearcher finds reporters covering a beat or topic.
type TopicSearcher interface {
	TopicReporters(ctx context.Context, topic string, limit int) ([]source.TopicMatch, error)
}

// ImportService is the two-phase CSV import pipeline.
type ImportService interface {
	Analyze(ctx context.Context, filename string, contents []byte) (*importer.AnalyzeResult, error)
	Confirm(ctx context.Context, sessionID string, mapping map[string]string, skipDuplicates bool) (*importer.Result, error)
}

// DossierCache is the slice of the dossier store the handlers need.
type DossierCache interface {
	Count() (int, error)
}

var _ DossierCache = (*database.DossierStore)(nil)

type Handler struct {
	dossiers       DossierService
	topics         TopicSearcher
	imports        ImportService
	reporterRepo   database.ReporterStore
	dossierStore   DossierCache
	sessions       *importer.SessionStore
	maxUploadBytes int64
}

type confirmRequest struct {
	SessionID      string            `json:"session_id" binding:"required"`
	ColumnMapping  map[string]string `json:"column_mapping" binding:"required"`
	SkipDuplicates bool              `json:"skip_duplicates"`
}
