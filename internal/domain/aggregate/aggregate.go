// Package aggregate derives the dashboard read models from a snapshot.
//
// Every computation here is pure: it reads an immutable snapshot plus the
// fixed business configuration and produces a fresh result, so the five
// views can run in any order or concurrently without coordination.
package aggregate

import (
	"math"
	"time"

	"github.com/okian/pulse/internal/domain/coerce"
	"github.com/okian/pulse/internal/domain/model"
)

// Default business configuration. Mirrors the firm's current structure;
// production values come from config.
const (
	defaultMonthlyCapacity = 21000.0
	defaultWatchThreshold  = 1.00
	defaultHireThreshold   = 1.25
)

func defaultPartners() []string   { return []string{"RJ", "CB", "MB", "TJ"} }
func defaultPrincipals() []string { return []string{"RW", "AB", "MM", "HD"} }

func defaultProbabilityWeights() map[string]float64 {
	return map[string]float64{"XL": 0.00, "L": 0.25, "M": 0.65, "H": 0.85}
}

func defaultCriticalMarkets() []string {
	return []string{"Parks", "Campus", "Mixed-Use", "Civic", "State"}
}

// OfficeFilter restricts the client directory to one office by matching
// either the state or the location column.
type OfficeFilter struct {
	State    string `koanf:"state"`
	Location string `koanf:"location"`
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithPartners sets the enumerated partner codes.
func WithPartners(partners []string) Option {
	return func(a *Aggregator) {
		if len(partners) > 0 {
			a.partners = partners
		}
	}
}

// WithPrincipals sets the enumerated principal codes.
func WithPrincipals(principals []string) Option {
	return func(a *Aggregator) {
		if len(principals) > 0 {
			a.principals = principals
		}
	}
}

// WithTeams sets the static team definitions keyed by principal code.
func WithTeams(teams map[string]model.Team) Option {
	return func(a *Aggregator) {
		if len(teams) > 0 {
			a.teams = teams
		}
	}
}

// WithProbabilityWeights sets the probability-tier weight map. Weights
// outside [0,1] are ignored.
func WithProbabilityWeights(weights map[string]float64) Option {
	return func(a *Aggregator) {
		if len(weights) == 0 {
			return
		}
		a.probWeights = make(map[string]float64, len(weights))
		for tier, w := range weights {
			if w >= 0 && w <= 1 {
				a.probWeights[tier] = w
			}
		}
	}
}

// WithMonthlyCapacity sets the per-person monthly billing capacity.
func WithMonthlyCapacity(rate float64) Option {
	return func(a *Aggregator) {
		if rate > 0 {
			a.monthlyCapacity = rate
		}
	}
}

// WithCrunchThresholds sets the utilization boundaries between the healthy,
// watch and hire-now tiers.
func WithCrunchThresholds(watch, hire float64) Option {
	return func(a *Aggregator) {
		if watch > 0 && hire > watch {
			a.watchThreshold = watch
			a.hireThreshold = hire
		}
	}
}

// WithCriticalMarkets sets the market names that carry a priority boost.
func WithCriticalMarkets(markets []string) Option {
	return func(a *Aggregator) {
		if len(markets) > 0 {
			a.criticalMarkets = markets
		}
	}
}

// WithOffices sets the office filters available to client scoring.
func WithOffices(offices map[string]OfficeFilter) Option {
	return func(a *Aggregator) {
		if len(offices) > 0 {
			a.offices = offices
		}
	}
}

// WithClock sets the time source used by aging and recency windows.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// Aggregator computes the dashboard views from a snapshot.
type Aggregator struct {
	partners        []string
	principals      []string
	teams           map[string]model.Team
	probWeights     map[string]float64
	monthlyCapacity float64
	watchThreshold  float64
	hireThreshold   float64
	criticalMarkets []string
	offices         map[string]OfficeFilter
	now             func() time.Time
}

// New constructs an Aggregator with default business configuration.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		partners:        defaultPartners(),
		principals:      defaultPrincipals(),
		teams:           map[string]model.Team{},
		probWeights:     defaultProbabilityWeights(),
		monthlyCapacity: defaultMonthlyCapacity,
		watchThreshold:  defaultWatchThreshold,
		hireThreshold:   defaultHireThreshold,
		criticalMarkets: defaultCriticalMarkets(),
		offices:         map[string]OfficeFilter{},
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// KnownOffice reports whether an office filter is configured under name.
func (a *Aggregator) KnownOffice(name string) bool {
	_, ok := a.offices[name]
	return ok
}

// weight maps a probability tier to its numeric weight. Unknown tiers carry
// no weight so they contribute nothing to weighted sums.
func (a *Aggregator) weight(tier string) float64 {
	return a.probWeights[tier]
}

func (a *Aggregator) isCriticalMarket(market string) bool {
	for _, m := range a.criticalMarkets {
		if m == market {
			return true
		}
	}
	return false
}

// engagementsByStatus filters master ledger rows to one status subset.
func engagementsByStatus(t model.Table, status model.EngagementStatus) []model.Row {
	var out []model.Row
	for _, row := range t.Rows {
		if row.EngagementStatus() == status {
			out = append(out, row)
		}
	}
	return out
}

// proposalsByStatus filters proposal log rows to one status subset.
func proposalsByStatus(t model.Table, status model.ProposalStatus) []model.Row {
	var out []model.Row
	for _, row := range t.Rows {
		if row.ProposalStatus() == status {
			out = append(out, row)
		}
	}
	return out
}

// sumColumn totals one coerced column across rows.
func sumColumn(rows []model.Row, col string) float64 {
	var sum float64
	for _, row := range rows {
		sum += coerce.String(row.Get(col))
	}
	return sum
}

// round matches spreadsheet half-up rounding for displayed scores.
func round(v float64) int {
	return int(math.Round(v))
}
