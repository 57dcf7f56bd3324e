package config

import "time"

// Numbering configures the allocation dataset pipeline.
type Numbering struct {
	// BaseURL is the directory the source files are downloaded from.
	BaseURL string `env:"NUMBERING_BASE_URL" envDefault:"https://static.ofcom.org.uk/static/numbering/"`

	// Files are the source documents under BaseURL, in rule set order.
	Files []string `env:"NUMBERING_FILES" envSeparator:"," envDefault:"sabcde11.csv,sabcde12.csv,sabcde13.csv,sabcde14.csv,sabcde15.csv,sabcde16.csv,sabcde17.csv,sabcde18.csv,sabcde19.csv,sabcde2.csv,sabcde3.csv,sabcde5.csv,sabcde7.csv,sabcde8.csv,sabcde9.csv"`

	// StatusPolicy selects which allocation statuses count as dead,
	// "current" or "legacy".
	StatusPolicy string `env:"NUMBERING_STATUS_POLICY" envDefault:"current"`

	// RefreshCron is the asynq scheduler spec for the periodic refresh.
	RefreshCron string `env:"NUMBERING_REFRESH_CRON" envDefault:"@every 24h"`

	// SeedFile optionally points at a JSON rule array published when no
	// snapshot is archived yet.
	SeedFile string `env:"NUMBERING_SEED_FILE"`

	// DriftThresholdPct is the rule count change, in percent, above which a
	// publish raises a warning.
	DriftThresholdPct float64 `env:"NUMBERING_DRIFT_THRESHOLD_PCT" envDefault:"20"`

	// SnapshotRetention bounds how long archived snapshots are kept.
	SnapshotRetention time.Duration `env:"NUMBERING_SNAPSHOT_RETENTION" envDefault:"2160h"`
}
