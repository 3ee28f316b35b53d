package aggregate_test

import (
	"testing"

	"github.com/okian/pulse/internal/domain/aggregate"
	"github.com/okian/pulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCapacity(t *testing.T) {
	Convey("Given teams of five and a 21000 monthly rate", t, func() {
		teams := map[string]model.Team{
			"RW": {Name: "Robert", Office: "Nashville", Members: []string{"a", "b", "c", "d"}},
			"AB": {Name: "Austen", Office: "Nashville", Members: []string{"a", "b", "c", "d"}},
			"MM": {Name: "Mary", Office: "Nashville", Members: []string{"a", "b", "c", "d"}},
		}
		cols := []string{
			model.ColStatus, model.ColPM, model.ColClient, model.ColFeeRemaining,
			"PM Adjusted Billing Nov-25", "PM Adjusted Billing Dec-25", "Projected Billing Jan-26",
			"Projected Billing Feb-26",
		}
		engagements := mkTable(cols,
			map[string]string{
				model.ColStatus: "O", model.ColPM: "RW",
				"PM Adjusted Billing Nov-25": "200000", "PM Adjusted Billing Dec-25": "100000",
				"Projected Billing Jan-26": "100000", "Projected Billing Feb-26": "500000",
			},
			map[string]string{
				model.ColStatus: "O", model.ColPM: "AB",
				"PM Adjusted Billing Nov-25": "300000",
			},
			map[string]string{
				model.ColStatus: "O", model.ColPM: "MM",
				"PM Adjusted Billing Nov-25": "350000",
			},
			map[string]string{
				model.ColStatus: "PR", model.ColPM: "RW",
				"PM Adjusted Billing Nov-25": "900000",
			},
		)
		snap := mkSnapshot(engagements, mkTable(proposalCols), mkTable(summaryCols), mkTable(clientCols))
		agg := aggregate.New(aggregate.WithTeams(teams), aggregate.WithClock(clock))

		Convey("When capacity is computed", func() {
			caps := agg.Capacity(snap)

			Convey("Then quarterly capacity is size x rate x 3", func() {
				So(caps["RW"].TeamSize, ShouldEqual, 5)
				So(caps["RW"].QuarterCapacity, ShouldEqual, 315000)
			})

			Convey("Then only the first quarter of open work counts", func() {
				So(caps["RW"].QuarterBilling, ShouldEqual, 400000)
			})

			Convey("Then the crunch ratio drives the status tier", func() {
				So(caps["RW"].Status, ShouldEqual, aggregate.CapacityHireNow)
				So(caps["RW"].CrunchPercent, ShouldEqual, 127)

				So(caps["AB"].QuarterBilling, ShouldEqual, 300000)
				So(caps["AB"].Status, ShouldEqual, aggregate.CapacityHealthy)
				So(caps["AB"].CrunchPercent, ShouldEqual, 95)

				So(caps["MM"].Status, ShouldEqual, aggregate.CapacityWatch)
				So(caps["MM"].CrunchPercent, ShouldEqual, 111)
			})

			Convey("Then a principal without a roster is absent", func() {
				So(caps, ShouldNotContainKey, "HD")
			})
		})
	})
}
