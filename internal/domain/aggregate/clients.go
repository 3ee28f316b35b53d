package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/okian/pulse/internal/domain/coerce"
	"github.com/okian/pulse/internal/domain/dates"
	"github.com/okian/pulse/internal/domain/model"
)

// Client scoring constants. The traction formula weighs active work,
// projected work and open proposals; priority layers relationship-health
// boosts on top.
const (
	defaultRating = 5

	tractionActiveWeight    = 0.45
	tractionProjectedWeight = 0.20
	tractionProposalWeight  = 0.35
	tractionBoost           = 15
	tractionCap             = 100

	recentWindowDays = 120
	maxRecentLosses  = 30

	highProbabilityTier = "H"
)

// Qualitative flags, in evaluation order.
const (
	FlagGoingCold        = "Going cold"
	FlagHighProbProposal = "H-probability proposal"
	FlagProjectedPending = "PR work pending"
	FlagActiveGoneCold   = "Active client gone cold"
	FlagWeakRelationship = "Weak relationship with active work"
)

// ClientInsight is one directory client enriched with engagement and
// proposal joins plus the two composite scores.
type ClientInsight struct {
	Name           string `json:"client"`
	Tier           int    `json:"tier"`
	Relationship   int    `json:"relationship"`
	Touchpoint     int    `json:"touchpoint"`
	Market         string `json:"market,omitempty"`
	OfficeState    string `json:"office_state,omitempty"`
	OfficeLocation string `json:"office_location,omitempty"`
	Strategic      bool   `json:"strategic"`

	ActiveProjects     int     `json:"active_projects"`
	ActiveFee          float64 `json:"active_fee"`
	ProjectedFee       float64 `json:"projected_fee"`
	ProposalCount      int     `json:"proposal_count"`
	ProposalFee        float64 `json:"proposal_fee"`
	HasHighProbability bool    `json:"has_high_probability"`

	Traction int      `json:"traction"`
	Priority int      `json:"priority"`
	Flags    []string `json:"flags"`
}

// ClientScores is the client-relationship read model.
type ClientScores struct {
	All     []ClientInsight         `json:"all"`
	ByTier  map[int][]ClientInsight `json:"by_tier"`
	Flagged []ClientInsight         `json:"flagged"`
	Wins    []ProposalItem          `json:"wins"`
	Losses  []ProposalItem          `json:"losses"`
}

// Clients computes client traction and priority scores, joined by exact
// client-name match against the ledger and proposal log. office optionally
// restricts the directory before scoring; an empty or unconfigured office
// leaves it unfiltered.
func (a *Aggregator) Clients(snap *model.Snapshot, office string) ClientScores {
	rows := snap.Clients.Rows
	if of, ok := a.offices[office]; ok {
		var filtered []model.Row
		for _, row := range rows {
			if row.Get(model.ColOfficeState) == of.State || row.Get(model.ColOfficeLocation) == of.Location {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	enriched := make([]ClientInsight, 0, len(rows))
	for _, row := range rows {
		enriched = append(enriched, a.scoreClient(snap, row))
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Priority > enriched[j].Priority
	})

	out := ClientScores{
		All:    enriched,
		ByTier: map[int][]ClientInsight{1: {}, 2: {}, 3: {}, 4: {}, 5: {}},
	}
	for _, c := range enriched {
		if bucket, ok := out.ByTier[c.Tier]; ok {
			out.ByTier[c.Tier] = append(bucket, c)
		}
		if len(c.Flags) > 0 {
			out.Flagged = append(out.Flagged, c)
		}
	}

	out.Wins, out.Losses = a.recentOutcomes(snap.Proposals)
	return out
}

// scoreClient joins one directory row against the snapshot and computes
// its traction and priority scores.
func (a *Aggregator) scoreClient(snap *model.Snapshot, client model.Row) ClientInsight {
	name := client.Get(model.ColClient)

	c := ClientInsight{
		Name:           name,
		Tier:           coerce.Int(client.Get(model.ColTier), defaultRating),
		Relationship:   coerce.Int(client.Get(model.ColRelationship), defaultRating),
		Touchpoint:     coerce.Int(client.Get(model.ColTouchpoint), defaultRating),
		Market:         client.Get(model.ColMarket),
		OfficeState:    client.Get(model.ColOfficeState),
		OfficeLocation: client.Get(model.ColOfficeLocation),
		Strategic:      truthy(client.Get("Strategic")),
	}

	for _, row := range snap.Engagements.Rows {
		if row.Get(model.ColClient) != name {
			continue
		}
		switch row.EngagementStatus() {
		case model.EngagementOpen:
			c.ActiveProjects++
			c.ActiveFee += coerce.String(row.Get(model.ColFeeRemaining))
		case model.EngagementProjected:
			c.ProjectedFee += coerce.String(row.Get(model.ColFeeRemaining))
		}
	}

	for _, row := range snap.Proposals.Rows {
		if row.Get(model.ColClient) != name || row.ProposalStatus() != model.ProposalOpen {
			continue
		}
		c.ProposalCount++
		c.ProposalFee += coerce.String(row.Get(model.ColFee))
		if row.Get(model.ColProbability) == highProbabilityTier {
			c.HasHighProbability = true
		}
	}

	traction := tractionActiveWeight*(float64(c.ActiveProjects)*10+c.ActiveFee/10000) +
		tractionProjectedWeight*(c.ProjectedFee/10000) +
		tractionProposalWeight*(float64(c.ProposalCount)*5+c.ProposalFee/10000)
	if c.ProjectedFee > 0 || c.HasHighProbability {
		traction += tractionBoost
	}
	if traction > tractionCap {
		traction = tractionCap
	}
	c.Traction = round(traction)

	priority := float64(6-c.Tier)*2.0 + traction*0.25
	if a.isCriticalMarket(c.Market) {
		priority += 8
	}
	if c.Touchpoint <= 4 {
		priority += 12
	}
	if c.Relationship <= 4 && c.ActiveFee > 0 {
		priority += 10
	}
	if c.Relationship >= 7 && c.Touchpoint <= 4 {
		priority += 15
	}
	if c.HasHighProbability {
		priority += 12
	}
	if c.ProjectedFee > 0 {
		priority += 10
	}
	c.Priority = round(priority)

	if c.Relationship >= 7 && c.Touchpoint <= 4 {
		c.Flags = append(c.Flags, FlagGoingCold)
	}
	if c.HasHighProbability {
		c.Flags = append(c.Flags, FlagHighProbProposal)
	}
	if c.ProjectedFee > 0 {
		c.Flags = append(c.Flags, FlagProjectedPending)
	}
	if c.ActiveFee > 0 && c.Touchpoint <= 4 {
		c.Flags = append(c.Flags, FlagActiveGoneCold)
	}
	if c.Relationship <= 4 && c.ActiveFee > 0 {
		c.Flags = append(c.Flags, FlagWeakRelationship)
	}

	return c
}

// recentOutcomes windows awarded and not-awarded proposals to the trailing
// 120 days. The outcome date tries the awarded cell first and falls back
// to the submission cell; a row whose date resolves under neither encoding
// is excluded, never defaulted to recent.
func (a *Aggregator) recentOutcomes(proposals model.Table) (wins, losses []ProposalItem) {
	cutoff := a.now().Add(-recentWindowDays * 24 * time.Hour)

	for _, row := range proposals.Rows {
		status := row.ProposalStatus()
		if status != model.ProposalAwarded && status != model.ProposalNotAwarded {
			continue
		}
		cell := row.Get(model.ColAwarded)
		if cell == "" {
			cell = row.Get(model.ColSubmitted)
		}
		resolved, ok := dates.Resolve(cell, row.Get(model.ColYear))
		if !ok || resolved.Before(cutoff) {
			continue
		}
		if status == model.ProposalAwarded {
			wins = append(wins, proposalItem(row))
		} else {
			losses = append(losses, proposalItem(row))
		}
	}

	byYearDesc := func(items []ProposalItem) func(i, j int) bool {
		return func(i, j int) bool { return items[i].Year > items[j].Year }
	}
	sort.SliceStable(wins, byYearDesc(wins))
	sort.SliceStable(losses, byYearDesc(losses))

	if len(losses) > maxRecentLosses {
		losses = losses[:maxRecentLosses]
	}
	return wins, losses
}

// truthy accepts the directory's assorted boolean spellings.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true
	}
	return false
}
