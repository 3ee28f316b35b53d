package model

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot bundles the four normalized row collections fetched together
// from the document store. It is immutable after construction and replaced
// wholesale on refresh, never patched.
type Snapshot struct {
	ID          uuid.UUID
	Engagements Table // master ledger rows
	Proposals   Table // proposal log rows
	Summary     Table // monthly summary rows
	Clients     Table // marketing directory rows
	FetchedAt   time.Time
}

// NewSnapshot stamps a fresh snapshot with an identity and fetch time.
func NewSnapshot(engagements, proposals, summary, clients Table, fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		ID:          uuid.New(),
		Engagements: engagements,
		Proposals:   proposals,
		Summary:     summary,
		Clients:     clients,
		FetchedAt:   fetchedAt,
	}
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
