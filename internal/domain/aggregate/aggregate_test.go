package aggregate_test

import (
	"time"

	"github.com/okian/pulse/internal/domain/model"
)

// fixedNow anchors aging and recency windows for deterministic assertions.
var fixedNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// mkTable builds a table from a header and cell maps, defaulting missing
// cells to the empty string the way the source parser does.
func mkTable(cols []string, rows ...map[string]string) model.Table {
	t := model.Table{Columns: cols}
	for _, cells := range rows {
		row := model.Row{}
		for _, c := range cols {
			row[c] = cells[c]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func mkSnapshot(engagements, proposals, summary, clients model.Table) *model.Snapshot {
	return model.NewSnapshot(engagements, proposals, summary, clients, fixedNow)
}

var engagementCols = []string{
	model.ColStatus, model.ColPartner, model.ColPM, model.ColClient, model.ColFeeRemaining,
	"PM Adjusted Billing Nov-25", "PM Adjusted Billing Dec-25", "Projected Billing Jan-26",
	"PM Adjusted Billing % Nov-25",
}

var proposalCols = []string{
	model.ColStatus, model.ColPartner, model.ColClient, model.ColMarket, model.ColProbability,
	model.ColFee, model.ColSubmitted, model.ColAwarded, model.ColYear,
}

var summaryCols = []string{
	model.ColMonth, model.ColBilling, model.ColExpenses, model.ColUnderContract,
	model.ColPipeline, model.ColDeposits, model.ColBalance,
}

var clientCols = []string{
	model.ColClient, model.ColTier, model.ColRelationship, model.ColTouchpoint,
	model.ColMarket, model.ColOfficeState, model.ColOfficeLocation, "Strategic",
}
