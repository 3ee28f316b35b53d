// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/okian/pulse/internal/domain/aggregate"
	"github.com/okian/pulse/internal/domain/model"
)

// SharePoint holds the Graph API connection settings for the document
// store that publishes the source sheets.
type SharePoint struct {
	TenantID     string `koanf:"tenant_id"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	Host         string `koanf:"host"`
	SitePath     string `koanf:"site_path"`
	FolderPath   string `koanf:"folder_path"`
}

// Documents names the four exported sheets inside the dashboard folder.
type Documents struct {
	Master    string `koanf:"master"`
	Proposals string `koanf:"proposals"`
	Summary   string `koanf:"summary"`
	Marketing string `koanf:"marketing"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheTTLSeconds bounds how long a snapshot is served before refetch.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// BackgroundRefresh refreshes the snapshot on the TTL interval so
	// requests rarely wait on the upstream fetch.
	BackgroundRefresh bool `koanf:"background_refresh"`

	// MonthlyCapacity is the per-person monthly billing capacity.
	MonthlyCapacity float64 `koanf:"monthly_capacity"`

	// CrunchWatch and CrunchHire are the utilization tier boundaries.
	CrunchWatch float64 `koanf:"crunch_watch"`
	CrunchHire  float64 `koanf:"crunch_hire"`

	// Partners is the enumerated partner code set used for fee grouping.
	Partners []string `koanf:"partners"`

	// Principals is the enumerated principal code set used for capacity.
	Principals []string `koanf:"principals"`

	// ProbabilityWeights maps proposal probability tiers to [0,1] weights.
	ProbabilityWeights map[string]float64 `koanf:"probability_weights"`

	// CriticalMarkets lists market names that boost client priority.
	CriticalMarkets []string `koanf:"critical_markets"`

	// Teams maps principal codes to their static team definitions.
	Teams map[string]model.Team `koanf:"teams"`

	// Offices maps filter names to directory match rules.
	Offices map[string]aggregate.OfficeFilter `koanf:"offices"`

	SharePoint SharePoint `koanf:"sharepoint"`
	Documents  Documents  `koanf:"documents"`
}

// New creates a Config carrying the firm's current structure as defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		CacheTTLSeconds:   300,
		BackgroundRefresh: true,
		MonthlyCapacity:   21000,
		CrunchWatch:       1.00,
		CrunchHire:        1.25,
		Partners:          []string{"RJ", "CB", "MB", "TJ"},
		Principals:        []string{"RW", "AB", "MM", "HD"},
		ProbabilityWeights: map[string]float64{
			"XL": 0.00,
			"L":  0.25,
			"M":  0.65,
			"H":  0.85,
		},
		CriticalMarkets: []string{"Parks", "Campus", "Mixed-Use", "Civic", "State"},
		Teams: map[string]model.Team{
			"RW": {
				Name:    "Robert Whittemore",
				Office:  "Nashville",
				Members: []string{"Maggie Ackerman", "Carly Shows", "Elizabeth Crimmins", "John Yakimicki", "Ellie Hyzik"},
			},
			"AB": {
				Name:    "Austen Berry",
				Office:  "Nashville",
				Members: []string{"Watts Brown", "Margaret Apperson", "Taylor Uren", "Madeline Easter"},
			},
			"MM": {
				Name:    "Mary Miller",
				Office:  "Nashville",
				Members: []string{"Thomas Schneider", "Savannah Alexander", "Samie Hubbard", "Jackson Davis"},
			},
			"HD": {
				Name:    "Hank Dalton",
				Office:  "Dallas",
				Members: []string{"Yuan Ren", "Robert Cunning", "Andy Molina", "Alex Ramirez"},
			},
		},
		Offices: map[string]aggregate.OfficeFilter{
			"Nashville": {State: "TN", Location: "Nashville"},
			"Dallas":    {State: "TX", Location: "Dallas"},
		},
		SharePoint: SharePoint{
			Host:       "example.sharepoint.com",
			SitePath:   "/sites/Studio",
			FolderPath: "/Dashboard",
		},
		Documents: Documents{
			Master:    "Master Data.csv",
			Proposals: "Proposal Log.csv",
			Summary:   "Summary.csv",
			Marketing: "Marketing.csv",
		},
	}
}
