package aggregate_test

import (
	"testing"

	"github.com/okian/pulse/internal/domain/aggregate"
	"github.com/okian/pulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClients(t *testing.T) {
	Convey("Given a client directory joined against the ledger and log", t, func() {
		clients := mkTable(clientCols,
			map[string]string{
				model.ColClient: "Acme", model.ColTier: "1", model.ColRelationship: "8",
				model.ColTouchpoint: "3", model.ColMarket: "Parks",
				model.ColOfficeState: "TN", model.ColOfficeLocation: "Nashville", "Strategic": "Yes",
			},
			map[string]string{
				model.ColClient: "Beta", model.ColTier: "", model.ColRelationship: "",
				model.ColTouchpoint: "", model.ColMarket: "Retail",
				model.ColOfficeState: "TX", model.ColOfficeLocation: "Dallas",
			},
		)
		engagements := mkTable(engagementCols,
			map[string]string{model.ColStatus: "O", model.ColClient: "Acme", model.ColFeeRemaining: "100000"},
			map[string]string{model.ColStatus: "PR", model.ColClient: "Acme", model.ColFeeRemaining: "50000"},
		)
		proposals := mkTable(proposalCols,
			map[string]string{
				model.ColStatus: "O", model.ColClient: "Acme", model.ColProbability: "H", model.ColFee: "200000",
			},
			map[string]string{
				model.ColStatus: "A", model.ColClient: "Won Co", model.ColFee: "10000",
				model.ColAwarded: "Dec-25", model.ColYear: "2025",
			},
			map[string]string{
				model.ColStatus: "A", model.ColClient: "Old Win", model.ColFee: "10000",
				model.ColSubmitted: "Jan-25", model.ColYear: "2025",
			},
			map[string]string{
				model.ColStatus: "A", model.ColClient: "Full Month Win", model.ColFee: "10000",
				model.ColAwarded: "November", model.ColYear: "2025",
			},
			map[string]string{
				model.ColStatus: "NA", model.ColClient: "Fresh Loss", model.ColFee: "10000",
				model.ColSubmitted: "Nov-25", model.ColYear: "2025",
			},
			map[string]string{
				model.ColStatus: "NA", model.ColClient: "Undated Loss", model.ColFee: "10000",
				model.ColSubmitted: "sometime", model.ColYear: "2026",
			},
		)
		snap := mkSnapshot(engagements, proposals, mkTable(summaryCols), clients)
		agg := aggregate.New(
			aggregate.WithClock(clock),
			aggregate.WithOffices(map[string]aggregate.OfficeFilter{
				"Nashville": {State: "TN", Location: "Nashville"},
				"Dallas":    {State: "TX", Location: "Dallas"},
			}),
		)

		Convey("When clients are scored", func() {
			scores := agg.Clients(snap, "")
			var acme, beta aggregate.ClientInsight
			for _, c := range scores.All {
				switch c.Name {
				case "Acme":
					acme = c
				case "Beta":
					beta = c
				}
			}

			Convey("Then joins aggregate by exact name match", func() {
				So(acme.ActiveProjects, ShouldEqual, 1)
				So(acme.ActiveFee, ShouldEqual, 100000)
				So(acme.ProjectedFee, ShouldEqual, 50000)
				So(acme.ProposalCount, ShouldEqual, 1)
				So(acme.ProposalFee, ShouldEqual, 200000)
				So(acme.HasHighProbability, ShouldBeTrue)
				So(acme.Strategic, ShouldBeTrue)

				So(beta.ActiveProjects, ShouldEqual, 0)
				So(beta.Tier, ShouldEqual, 5)
				So(beta.Relationship, ShouldEqual, 5)
			})

			Convey("Then traction stays within its bounds", func() {
				So(acme.Traction, ShouldEqual, 34)
				So(beta.Traction, ShouldEqual, 0)
				for _, c := range scores.All {
					So(c.Traction, ShouldBeBetweenOrEqual, 0, 100)
				}
			})

			Convey("Then priority boosts are cumulative", func() {
				// (6-1)*2 + 33.75*0.25 + 8 + 12 + 15 + 12 + 10 = 75.4375
				So(acme.Priority, ShouldEqual, 75)
				So(beta.Priority, ShouldEqual, 2)
			})

			Convey("Then flags fire independently and in order", func() {
				So(acme.Flags, ShouldResemble, []string{
					aggregate.FlagGoingCold,
					aggregate.FlagHighProbProposal,
					aggregate.FlagProjectedPending,
					aggregate.FlagActiveGoneCold,
				})
				So(beta.Flags, ShouldBeEmpty)
			})

			Convey("Then the list is sorted by priority with tier partitions", func() {
				So(scores.All[0].Name, ShouldEqual, "Acme")
				So(scores.ByTier, ShouldHaveLength, 5)
				So(scores.ByTier[1], ShouldHaveLength, 1)
				So(scores.ByTier[5], ShouldHaveLength, 1)
				So(scores.ByTier[3], ShouldBeEmpty)
				So(scores.Flagged, ShouldHaveLength, 1)
			})

			Convey("Then recent outcomes honor the 120-day window", func() {
				winNames := make([]string, 0, len(scores.Wins))
				for _, w := range scores.Wins {
					winNames = append(winNames, w.Client)
				}
				So(winNames, ShouldContain, "Won Co")
				So(winNames, ShouldContain, "Full Month Win")
				So(winNames, ShouldNotContain, "Old Win")

				So(scores.Losses, ShouldHaveLength, 1)
				So(scores.Losses[0].Client, ShouldEqual, "Fresh Loss")
			})
		})

		Convey("When an office filter is applied", func() {
			scores := agg.Clients(snap, "Nashville")

			Convey("Then only matching clients are scored", func() {
				So(scores.All, ShouldHaveLength, 1)
				So(scores.All[0].Name, ShouldEqual, "Acme")
			})
		})

		Convey("When the office is not configured", func() {
			scores := agg.Clients(snap, "Chicago")

			Convey("Then the directory passes through unfiltered", func() {
				So(scores.All, ShouldHaveLength, 2)
			})
		})
	})
}
