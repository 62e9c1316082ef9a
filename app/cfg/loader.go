package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP surface
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Persistence
	DBPath string `long:"db-path" env:"DB_PATH" default:"./press_dossier.db" description:"SQLite database file path"`

	// Article source
	SourceURL     string `long:"source-url" env:"SOURCE_URL" default:"https://api.goperigon.com/v1" description:"Article source base URL"`
	SourceAPIKey  string `long:"source-api-key" env:"SOURCE_API_KEY" description:"Article source API key"`
	SourceTimeout int    `long:"source-timeout" env:"SOURCE_TIMEOUT" default:"30" description:"Article source request timeout in seconds"`
	ArticleLimit  int    `long:"article-limit" env:"ARTICLE_LIMIT" default:"100" description:"Maximum articles fetched per reporter"`

	// Text assistant
	AssistantURL     string `long:"assistant-url" env:"ASSISTANT_URL" default:"https://api.anthropic.com/v1" description:"Text assistant base URL"`
	AssistantAPIKey  string `long:"assistant-api-key" env:"ASSISTANT_API_KEY" description:"Text assistant API key"`
	AssistantModel   string `long:"assistant-model" env:"ASSISTANT_MODEL" default:"claude-3-haiku-20240307" description:"Text assistant model"`
	AssistantTimeout int    `long:"assistant-timeout" env:"ASSISTANT_TIMEOUT" default:"30" description:"Text assistant request timeout in seconds"`

	// Dossier policy
	StalenessHours int    `long:"staleness-hours" env:"STALENESS_HOURS" default:"24" description:"Dossier cache staleness window in hours"`
	MinOutletShare int    `long:"min-outlet-share" env:"MIN_OUTLET_SHARE" default:"2" description:"Minimum article count for an outlet to count as historically dominant"`
	BeatsFile      string `long:"beats-file" env:"BEATS_FILE" description:"YAML file overriding built-in beat keyword buckets (optional)"`

	// Import policy
	SampleRows     int   `long:"sample-rows" env:"SAMPLE_ROWS" default:"10" description:"Number of preview rows shown during import analysis"`
	SessionTTL     int   `long:"session-ttl" env:"SESSION_TTL" default:"30" description:"Import session time-to-live in minutes"`
	MaxUploadBytes int64 `long:"max-upload-bytes" env:"MAX_UPLOAD_BYTES" default:"2097152" description:"Maximum CSV upload size in bytes"`
	MaxRows        int   `long:"max-rows" env:"MAX_ROWS" default:"5000" description:"Maximum CSV data rows accepted per upload"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Press Dossier/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:             raw.Port,
		APIAccessKey:     raw.APIAccessKey,
		DBPath:           raw.DBPath,
		SourceURL:        raw.SourceURL,
		SourceAPIKey:     raw.SourceAPIKey,
		SourceTimeout:    raw.SourceTimeout,
		ArticleLimit:     raw.ArticleLimit,
		AssistantURL:     raw.AssistantURL,
		AssistantAPIKey:  raw.AssistantAPIKey,
		AssistantModel:   raw.AssistantModel,
		AssistantTimeout: raw.AssistantTimeout,
		StalenessHours:   raw.StalenessHours,
		MinOutletShare:   raw.MinOutletShare,
		BeatsFile:        raw.BeatsFile,
		SampleRows:       raw.SampleRows,
		SessionTTL:       raw.SessionTTL,
		MaxUploadBytes:   raw.MaxUploadBytes,
		MaxRows:          raw.MaxRows,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
