package aggregate

import (
	"github.com/okian/pulse/internal/domain/coerce"
	"github.com/okian/pulse/internal/domain/dates"
	"github.com/okian/pulse/internal/domain/model"
)

// Risk aging thresholds in whole days since submission.
const (
	warningAgeDays  = 90
	criticalAgeDays = 180
)

// fallbackTier buckets proposals whose probability cell is blank.
const fallbackTier = "XL"

// ProposalItem is a proposal row projected into the read shape with its
// fee coerced.
type ProposalItem struct {
	Client      string  `json:"client"`
	Partner     string  `json:"partner"`
	Market      string  `json:"market,omitempty"`
	Probability string  `json:"probability"`
	Status      string  `json:"status"`
	Submitted   string  `json:"submitted,omitempty"`
	Awarded     string  `json:"awarded,omitempty"`
	Year        int     `json:"year,omitempty"`
	Fee         float64 `json:"fee"`
}

// RiskItem is an open proposal that has aged past a risk threshold.
type RiskItem struct {
	ProposalItem
	DaysOpen int `json:"days_open"`
}

// PartnerPipeline totals open proposals for one partner.
type PartnerPipeline struct {
	Count    int     `json:"count"`
	Fee      float64 `json:"fee"`
	Weighted float64 `json:"weighted"`
}

// Pipeline is the proposal-log read model.
type Pipeline struct {
	Open          []ProposalItem             `json:"open_proposals"`
	ByProbability map[string][]ProposalItem  `json:"by_probability"`
	ByPartner     map[string]PartnerPipeline `json:"by_partner"`
	AtRisk90      []RiskItem                 `json:"at_risk_90"`
	AtRisk180     []RiskItem                 `json:"at_risk_180"`
	Losses        []ProposalItem             `json:"losses"`
	TotalOpen     float64                    `json:"total_open"`
	TotalWeighted float64                    `json:"total_weighted"`
}

func proposalItem(row model.Row) ProposalItem {
	return ProposalItem{
		Client:      row.Get(model.ColClient),
		Partner:     row.Get(model.ColPartner),
		Market:      row.Get(model.ColMarket),
		Probability: row.Get(model.ColProbability),
		Status:      row.Get(model.ColStatus),
		Submitted:   row.Get(model.ColSubmitted),
		Awarded:     row.Get(model.ColAwarded),
		Year:        coerce.Int(row.Get(model.ColYear), 0),
		Fee:         coerce.String(row.Get(model.ColFee)),
	}
}

// Pipeline computes the pipeline read model from a snapshot.
func (a *Aggregator) Pipeline(snap *model.Snapshot) Pipeline {
	open := proposalsByStatus(snap.Proposals, model.ProposalOpen)

	out := Pipeline{
		Open:          make([]ProposalItem, 0, len(open)),
		ByProbability: map[string][]ProposalItem{"H": {}, "M": {}, "L": {}, "XL": {}},
		ByPartner:     make(map[string]PartnerPipeline, len(a.partners)),
	}
	for _, p := range a.partners {
		out.ByPartner[p] = PartnerPipeline{}
	}

	now := a.now()
	for _, row := range open {
		item := proposalItem(row)
		out.Open = append(out.Open, item)
		out.TotalOpen += item.Fee
		out.TotalWeighted += item.Fee * a.weight(item.Probability)

		// Probability buckets are fixed; a blank tier lands in XL and any
		// other unknown tier stays out of the grouping.
		tier := item.Probability
		if tier == "" {
			tier = fallbackTier
		}
		if bucket, ok := out.ByProbability[tier]; ok {
			out.ByProbability[tier] = append(bucket, item)
		}

		if pp, ok := out.ByPartner[item.Partner]; ok && item.Partner != "" {
			pp.Count++
			pp.Fee += item.Fee
			pp.Weighted += item.Fee * a.weight(item.Probability)
			out.ByPartner[item.Partner] = pp
		}

		if submitted, ok := dates.Parse(item.Submitted); ok {
			daysOpen := int(now.Sub(submitted).Hours() / 24)
			switch {
			case daysOpen >= criticalAgeDays:
				out.AtRisk180 = append(out.AtRisk180, RiskItem{ProposalItem: item, DaysOpen: daysOpen})
			case daysOpen >= warningAgeDays:
				out.AtRisk90 = append(out.AtRisk90, RiskItem{ProposalItem: item, DaysOpen: daysOpen})
			}
		}
	}

	for _, row := range snap.Proposals.Rows {
		if row.ProposalStatus().Lost() {
			out.Losses = append(out.Losses, proposalItem(row))
		}
	}

	return out
}
