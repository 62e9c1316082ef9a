package database

// ReporterStore defines the repository operations the import pipeline and the
// API surface need. The dossier aggregator reaches the same table through
// dossier.ReporterProfiles instead.
type ReporterStore interface {
	GetByName(name string) (*Reporter, error)
	Save(rep Reporter) error
	Count() (int, error)
}

var _ ReporterStore = (*ReporterRepository)(nil)
