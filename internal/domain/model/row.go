// Package model contains domain models passed between layers.
package model

import "strings"

// Well-known column names shared by the source sheets. Everything else is
// discovered at runtime from the header row.
const (
	ColStatus         = "Status"
	ColPartner        = "Partner"
	ColPM             = "PM"
	ColClient         = "Client"
	ColFeeRemaining   = "Fee Remaining"
	ColFee            = "Fee"
	ColProbability    = "Probability"
	ColSubmitted      = "Submitted"
	ColAwarded        = "Awarded"
	ColYear           = "Year"
	ColMonth          = "Month"
	ColBilling        = "Billing"
	ColExpenses       = "Expenses"
	ColUnderContract  = "Under Contract"
	ColPipeline       = "Pipeline"
	ColDeposits       = "Deposits"
	ColBalance        = "Balance"
	ColTier           = "Tier"
	ColRelationship   = "Relationship Status"
	ColTouchpoint     = "Touchpoint Value"
	ColMarket         = "Market"
	ColOfficeState    = "Office State"
	ColOfficeLocation = "Office Location"
)

// Billing-projection column name markers. A matching column holds one
// forecast month; the month label is the remainder of the column name.
const (
	billingPrefixProjected  = "Projected Billing"
	billingPrefixPMAdjusted = "PM Adjusted Billing"
)

// Row is a single sheet row keyed by header name. Cell values are kept as
// raw text; numeric interpretation happens in the coerce package at the
// point of use. A missing column reads as the empty string.
type Row map[string]string

// Get returns the raw cell value for a column, or "" when absent.
func (r Row) Get(col string) string { return r[col] }

// Table is an ordered collection of rows parsed from one sheet. Columns
// preserves the source column order so positional discovery of the monthly
// billing columns stays chronological.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// BillingColumns returns the monthly billing-projection columns in sheet
// order. Percentage columns share the name prefix and are skipped.
func (t Table) BillingColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if strings.Contains(c, "%") {
			continue
		}
		if strings.Contains(c, billingPrefixProjected) || strings.Contains(c, billingPrefixPMAdjusted) {
			cols = append(cols, c)
		}
	}
	return cols
}

// BillingMonthLabel strips the billing column prefix, leaving the month
// token the column name encodes (e.g. "PM Adjusted Billing Nov-25" -> "Nov-25").
func BillingMonthLabel(col string) string {
	col = strings.ReplaceAll(col, billingPrefixPMAdjusted+" ", "")
	col = strings.ReplaceAll(col, billingPrefixProjected+" ", "")
	return col
}
