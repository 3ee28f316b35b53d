package dates_test

import (
	"testing"
	"time"

	"github.com/okian/pulse/internal/domain/dates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given the three sheet date encodings", t, func() {
		Convey("When the cell is an abbreviated month-year token", func() {
			d, ok := dates.Resolve("Nov-25", "")
			So(ok, ShouldBeTrue)
			So(d.Year(), ShouldEqual, 2025)
			So(d.Month(), ShouldEqual, time.November)
			So(d.Day(), ShouldEqual, 15)

			Convey("And two-digit years pivot at 50", func() {
				d, ok := dates.Resolve("Jan-49", "")
				So(ok, ShouldBeTrue)
				So(d.Year(), ShouldEqual, 2049)

				d, ok = dates.Resolve("Jan-51", "")
				So(ok, ShouldBeTrue)
				So(d.Year(), ShouldEqual, 1951)
			})
		})

		Convey("When the cell is a full month name with a year cell", func() {
			d, ok := dates.Resolve("November", "2025")
			So(ok, ShouldBeTrue)
			So(d.Year(), ShouldEqual, 2025)
			So(d.Month(), ShouldEqual, time.November)

			Convey("And a missing year leaves it unresolved", func() {
				_, ok := dates.Resolve("November", "")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the cell is a complete date string", func() {
			d, ok := dates.Resolve("2025-09-01", "")
			So(ok, ShouldBeTrue)
			So(d.Year(), ShouldEqual, 2025)
			So(d.Month(), ShouldEqual, time.September)
			So(d.Day(), ShouldEqual, 1)

			d, ok = dates.Resolve("9/1/2025", "")
			So(ok, ShouldBeTrue)
			So(d.Month(), ShouldEqual, time.September)
		})

		Convey("When the cell is noise", func() {
			for _, s := range []string{"", "soon", "Q3", "Foo-25", "13/45/9999"} {
				_, ok := dates.Resolve(s, "2025")
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a standalone submission date cell", t, func() {
		d, ok := dates.Parse("Mar-24")
		So(ok, ShouldBeTrue)
		So(d.Year(), ShouldEqual, 2024)
		So(d.Month(), ShouldEqual, time.March)
	})
}
