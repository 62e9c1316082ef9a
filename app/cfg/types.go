package cfg

type Cfg struct {
	// HTTP surface
	Port         string
	APIAccessKey string

	// Persistence
	DBPath string

	// Article source (journalist search + bylines)
	SourceURL     string
	SourceAPIKey  string
	SourceTimeout int // seconds
	ArticleLimit  int

	// Text assistant (summaries, CSV analysis)
	AssistantURL     string
	AssistantAPIKey  string
	AssistantModel   string
	AssistantTimeout int // seconds

	// Dossier policy
	StalenessHours int
	MinOutletShare int
	BeatsFile      string

	// Import policy
	SampleRows     int
	SessionTTL     int // minutes
	MaxUploadBytes int64
	MaxRows        int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
