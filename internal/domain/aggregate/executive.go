package aggregate

import (
	"github.com/okian/pulse/internal/domain/coerce"
	"github.com/okian/pulse/internal/domain/dates"
	"github.com/okian/pulse/internal/domain/model"
)

// Forecast horizon constants. Billing columns past the seventh discovered
// month exist in the sheet but are not projected.
const (
	projectionMonths  = 7
	shortHorizon      = 3
	mediumHorizon     = 6
	rollingActualsLen = 12
)

// MonthProjection is one forecast month split by engagement status.
type MonthProjection struct {
	Month     string  `json:"month"`
	Open      float64 `json:"o"`
	Projected float64 `json:"pr"`
	Total     float64 `json:"total"`
}

// ExecutiveSummary is the top-level financial read model.
type ExecutiveSummary struct {
	TotalFeeOpen      float64 `json:"total_fee_o"`
	TotalFeeProjected float64 `json:"total_fee_pr"`
	TotalFeeRemaining float64 `json:"total_fee_remaining"`
	ProjectCountOpen  int     `json:"project_count_o"`
	ClientCount       int     `json:"client_count"`

	FeeByPartnerOpen      map[string]float64 `json:"fee_by_partner_o"`
	FeeByPartnerProjected map[string]float64 `json:"fee_by_partner_pr"`
	FeeByPMOpen           map[string]float64 `json:"fee_by_pm_o"`
	FeeByPMProjected      map[string]float64 `json:"fee_by_pm_pr"`

	MonthlyProjections []MonthProjection `json:"monthly_projections"`

	AvgBillingMonthly  float64 `json:"avg_billing_mo"`
	AvgExpensesMonthly float64 `json:"avg_expenses_mo"`
	AvgMargin          float64 `json:"avg_margin"`

	Avg3MoOpen      float64 `json:"avg_3mo_o"`
	Avg3MoProjected float64 `json:"avg_3mo_pr"`
	Avg6MoOpen      float64 `json:"avg_6mo_o"`
	Avg6MoProjected float64 `json:"avg_6mo_pr"`

	PipelineTotal    float64 `json:"pipeline_total"`
	WeightedPipeline float64 `json:"weighted_pipeline"`
	ProposalCount    int     `json:"proposal_count"`
}

// Executive computes the executive summary from a snapshot.
func (a *Aggregator) Executive(snap *model.Snapshot) ExecutiveSummary {
	open := engagementsByStatus(snap.Engagements, model.EngagementOpen)
	projected := engagementsByStatus(snap.Engagements, model.EngagementProjected)

	out := ExecutiveSummary{
		TotalFeeOpen:      sumColumn(open, model.ColFeeRemaining),
		TotalFeeProjected: sumColumn(projected, model.ColFeeRemaining),
		ProjectCountOpen:  len(open),
	}
	out.TotalFeeRemaining = out.TotalFeeOpen + out.TotalFeeProjected

	seen := map[string]struct{}{}
	for _, row := range open {
		if c := row.Get(model.ColClient); c != "" {
			seen[c] = struct{}{}
		}
	}
	out.ClientCount = len(seen)

	out.FeeByPartnerOpen = a.feeByPartner(open)
	out.FeeByPartnerProjected = a.feeByPartner(projected)
	out.FeeByPMOpen, out.FeeByPMProjected = feeByPM(open, projected)

	out.MonthlyProjections = monthlyProjections(snap.Engagements, open, projected)

	avgBilling, avgExpenses := recentActualAverages(snap.Summary)
	out.AvgBillingMonthly = avgBilling
	out.AvgExpensesMonthly = avgExpenses
	if avgBilling > 0 {
		out.AvgMargin = (avgBilling - avgExpenses) / avgBilling
	}

	out.Avg3MoOpen, out.Avg3MoProjected = projectionAverages(out.MonthlyProjections, shortHorizon)
	out.Avg6MoOpen, out.Avg6MoProjected = projectionAverages(out.MonthlyProjections, mediumHorizon)

	openProposals := proposalsByStatus(snap.Proposals, model.ProposalOpen)
	out.ProposalCount = len(openProposals)
	for _, row := range openProposals {
		fee := coerce.String(row.Get(model.ColFee))
		out.PipelineTotal += fee
		out.WeightedPipeline += fee * a.weight(row.Get(model.ColProbability))
	}

	return out
}

// feeByPartner groups fee remaining over the fixed partner set. Rows whose
// partner is outside the set are left out of the map entirely.
func (a *Aggregator) feeByPartner(rows []model.Row) map[string]float64 {
	out := make(map[string]float64, len(a.partners))
	for _, p := range a.partners {
		out[p] = 0
	}
	for _, row := range rows {
		partner := row.Get(model.ColPartner)
		if _, ok := out[partner]; ok && partner != "" {
			out[partner] += coerce.String(row.Get(model.ColFeeRemaining))
		}
	}
	return out
}

// feeByPM groups fee remaining by project manager. PM grouping is
// open-ended: any non-blank PM gets a key, and both maps carry the union
// of keys so the two subsets line up.
func feeByPM(open, projected []model.Row) (map[string]float64, map[string]float64) {
	byOpen := map[string]float64{}
	byProjected := map[string]float64{}
	for _, row := range open {
		if pm := row.Get(model.ColPM); pm != "" {
			byOpen[pm] += coerce.String(row.Get(model.ColFeeRemaining))
		}
	}
	for _, row := range projected {
		if pm := row.Get(model.ColPM); pm != "" {
			byProjected[pm] += coerce.String(row.Get(model.ColFeeRemaining))
		}
	}
	for pm := range byOpen {
		if _, ok := byProjected[pm]; !ok {
			byProjected[pm] = 0
		}
	}
	for pm := range byProjected {
		if _, ok := byOpen[pm]; !ok {
			byOpen[pm] = 0
		}
	}
	return byOpen, byProjected
}

// monthlyProjections sums the first seven discovered billing columns per
// status subset.
func monthlyProjections(engagements model.Table, open, projected []model.Row) []MonthProjection {
	cols := engagements.BillingColumns()
	if len(cols) > projectionMonths {
		cols = cols[:projectionMonths]
	}
	out := make([]MonthProjection, 0, len(cols))
	for _, col := range cols {
		o := sumColumn(open, col)
		pr := sumColumn(projected, col)
		out = append(out, MonthProjection{
			Month:     model.BillingMonthLabel(col),
			Open:      o,
			Projected: pr,
			Total:     o + pr,
		})
	}
	return out
}

// recentActualAverages averages billing and expenses over the most recent
// twelve complete months. A month counts as complete only when its billing
// is strictly positive; the sheet's chronological direction is detected by
// comparing the first and last kept month.
//
// Known limitation: direction detection looks only at the endpoints, so a
// sheet unsorted in the middle can pick the wrong window. Matching the
// documented source behavior; flagged for product review rather than fixed
// here.
func recentActualAverages(summary model.Table) (avgBilling, avgExpenses float64) {
	var complete []model.Row
	for _, row := range summary.Rows {
		if coerce.String(row.Get(model.ColBilling)) > 0 {
			complete = append(complete, row)
		}
	}

	recent := complete
	if len(complete) >= 2 {
		first, firstOK := dates.Parse(complete[0].Get(model.ColMonth))
		last, lastOK := dates.Parse(complete[len(complete)-1].Get(model.ColMonth))
		if firstOK && lastOK && first.After(last) {
			// Newest first: keep the head of the list.
			if len(complete) > rollingActualsLen {
				recent = complete[:rollingActualsLen]
			}
		} else if len(complete) > rollingActualsLen {
			recent = complete[len(complete)-rollingActualsLen:]
		}
	}

	if len(recent) == 0 {
		return 0, 0
	}
	n := float64(len(recent))
	return sumColumn(recent, model.ColBilling) / n, sumColumn(recent, model.ColExpenses) / n
}

// projectionAverages averages the first n projection months per subset.
func projectionAverages(months []MonthProjection, n int) (avgOpen, avgProjected float64) {
	if len(months) < n {
		n = len(months)
	}
	if n == 0 {
		return 0, 0
	}
	for _, m := range months[:n] {
		avgOpen += m.Open
		avgProjected += m.Projected
	}
	return avgOpen / float64(n), avgProjected / float64(n)
}
