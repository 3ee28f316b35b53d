package model

// EngagementStatus is the master-ledger status vocabulary. Engagements and
// proposals use overlapping short codes with different meanings, so the two
// vocabularies are distinct types to keep them from crossing domains.
type EngagementStatus string

const (
	// EngagementOpen marks work under contract.
	EngagementOpen EngagementStatus = "O"
	// EngagementProjected marks work expected but not yet contracted.
	EngagementProjected EngagementStatus = "PR"
)

// ProposalStatus is the proposal-log lifecycle vocabulary.
type ProposalStatus string

const (
	ProposalOpen       ProposalStatus = "O"
	ProposalAwarded    ProposalStatus = "A"
	ProposalNotAwarded ProposalStatus = "NA"
	ProposalDead       ProposalStatus = "D"
)

// EngagementStatus reads the row status as an engagement code. Any value
// outside the closed vocabulary is excluded from every aggregate, so no
// validation happens here.
func (r Row) EngagementStatus() EngagementStatus {
	return EngagementStatus(r.Get(ColStatus))
}

// ProposalStatus reads the row status as a proposal code.
func (r Row) ProposalStatus() ProposalStatus {
	return ProposalStatus(r.Get(ColStatus))
}

// Lost reports whether the proposal status is one of the two loss codes.
func (s ProposalStatus) Lost() bool {
	return s == ProposalNotAwarded || s == ProposalDead
}
