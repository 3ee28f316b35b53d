package aggregate

import (
	"github.com/okian/pulse/internal/domain/coerce"
	"github.com/okian/pulse/internal/domain/model"
)

// quarterMonths is the first-quarter billing window.
const quarterMonths = 3

// Capacity status tiers by crunch ratio.
const (
	CapacityHealthy = "healthy"
	CapacityWatch   = "watch"
	CapacityHireNow = "hire-now"
)

// TeamCapacity is one principal's utilization record.
type TeamCapacity struct {
	Name            string   `json:"name"`
	Office          string   `json:"office"`
	TeamSize        int      `json:"team_size"`
	Members         []string `json:"members"`
	QuarterBilling  float64  `json:"q1_billing"`
	QuarterCapacity float64  `json:"q1_capacity"`
	Crunch          float64  `json:"crunch"`
	CrunchPercent   int      `json:"crunch_percent"`
	Status          string   `json:"status"`
}

// Capacity computes per-principal utilization from the master ledger and
// the static team definitions. Principals without a configured team are a
// lookup miss and simply absent from the result.
func (a *Aggregator) Capacity(snap *model.Snapshot) map[string]TeamCapacity {
	cols := snap.Engagements.BillingColumns()
	if len(cols) > quarterMonths {
		cols = cols[:quarterMonths]
	}

	out := make(map[string]TeamCapacity, len(a.principals))
	for _, principal := range a.principals {
		team, ok := a.teams[principal]
		if !ok {
			continue
		}

		var quarterBilling float64
		for _, row := range snap.Engagements.Rows {
			if row.Get(model.ColPM) != principal || row.EngagementStatus() != model.EngagementOpen {
				continue
			}
			for _, col := range cols {
				quarterBilling += coerce.String(row.Get(col))
			}
		}

		size := team.Size()
		capacity := float64(size) * a.monthlyCapacity * quarterMonths
		var crunch float64
		if capacity > 0 {
			crunch = quarterBilling / capacity
		}

		status := CapacityHealthy
		switch {
		case crunch > a.hireThreshold:
			status = CapacityHireNow
		case crunch >= a.watchThreshold:
			status = CapacityWatch
		}

		out[principal] = TeamCapacity{
			Name:            team.Name,
			Office:          team.Office,
			TeamSize:        size,
			Members:         team.Members,
			QuarterBilling:  quarterBilling,
			QuarterCapacity: capacity,
			Crunch:          crunch,
			CrunchPercent:   round(crunch * 100),
			Status:          status,
		}
	}
	return out
}
