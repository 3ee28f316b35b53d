package aggregate

import (
	"github.com/okian/pulse/internal/domain/coerce"
	"github.com/okian/pulse/internal/domain/model"
)

// rollingWindow is the trailing average span; it shrinks at the start of
// the series instead of requiring a full lookback.
const rollingWindow = 3

// TrendMonth is one monthly summary row with rolling averages attached.
type TrendMonth struct {
	Month            string  `json:"month"`
	UnderContract    float64 `json:"under_contract"`
	Pipeline         float64 `json:"pipeline"`
	Billing          float64 `json:"billing"`
	Expenses         float64 `json:"expenses"`
	Deposits         float64 `json:"deposits"`
	Balance          float64 `json:"balance"`
	BillingRolling3  float64 `json:"billing_rolling3"`
	ExpensesRolling3 float64 `json:"expenses_rolling3"`
}

// Trends is the time-series read model.
type Trends struct {
	Months []TrendMonth `json:"months"`
}

// Trends computes rolling three-month billing and expense averages over
// the monthly summary series.
func (a *Aggregator) Trends(snap *model.Snapshot) Trends {
	months := make([]TrendMonth, 0, len(snap.Summary.Rows))
	for _, row := range snap.Summary.Rows {
		months = append(months, TrendMonth{
			Month:         row.Get(model.ColMonth),
			UnderContract: coerce.String(row.Get(model.ColUnderContract)),
			Pipeline:      coerce.String(row.Get(model.ColPipeline)),
			Billing:       coerce.String(row.Get(model.ColBilling)),
			Expenses:      coerce.String(row.Get(model.ColExpenses)),
			Deposits:      coerce.String(row.Get(model.ColDeposits)),
			Balance:       coerce.String(row.Get(model.ColBalance)),
		})
	}

	for i := range months {
		start := i - (rollingWindow - 1)
		if start < 0 {
			start = 0
		}
		var billing, expenses float64
		for _, m := range months[start : i+1] {
			billing += m.Billing
			expenses += m.Expenses
		}
		n := float64(i - start + 1)
		months[i].BillingRolling3 = billing / n
		months[i].ExpensesRolling3 = expenses / n
	}

	return Trends{Months: months}
}
