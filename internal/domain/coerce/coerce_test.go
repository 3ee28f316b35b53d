package coerce_test

import (
	"fmt"
	"testing"

	"github.com/okian/pulse/internal/domain/coerce"
	. "github.com/smartystreets/goconvey/convey"
)

func TestString(t *testing.T) {
	Convey("Given raw cell text", t, func() {
		Convey("When the cell carries currency formatting", func() {
			So(coerce.String("$1,234"), ShouldEqual, 1234)
			So(coerce.String("$1,234,567.89"), ShouldEqual, 1234567.89)
			So(coerce.String("  $42 "), ShouldEqual, 42)
		})

		Convey("When the cell uses K/M shorthand", func() {
			So(coerce.String("2.5K"), ShouldEqual, 2500)
			So(coerce.String("2.5k"), ShouldEqual, 2500)
			So(coerce.String("3M"), ShouldEqual, 3000000)
			So(coerce.String("3m"), ShouldEqual, 3000000)
			So(coerce.String("$1.2M"), ShouldEqual, 1200000)
		})

		Convey("When the cell is blank or a placeholder dash", func() {
			So(coerce.String(""), ShouldEqual, 0)
			So(coerce.String("   "), ShouldEqual, 0)
			So(coerce.String("-"), ShouldEqual, 0)
		})

		Convey("When the cell is plain numeric text", func() {
			So(coerce.String("42"), ShouldEqual, 42)
			So(coerce.String("-17.5"), ShouldEqual, -17.5)
			So(coerce.String("0.001"), ShouldEqual, 0.001)
		})

		Convey("When the cell is garbage it falls back to zero", func() {
			So(coerce.String("#N/A"), ShouldEqual, 0)
			So(coerce.String("TBD"), ShouldEqual, 0)
			So(coerce.String("12abc"), ShouldEqual, 0)
		})

		Convey("Then shorthand equals the bare prefix times the multiplier", func() {
			cases := map[string]float64{"7K": 1000, "7M": 1000000, "0.5K": 1000, "12.25M": 1000000}
			for s, mult := range cases {
				bare := s[:len(s)-1]
				So(coerce.String(s), ShouldEqual, coerce.String(bare)*mult)
			}
		})

		Convey("Then coercion is idempotent over its own output", func() {
			for _, s := range []string{"$1,234", "2.5K", "3M", "", "-", "99.9"} {
				once := coerce.String(s)
				So(coerce.String(fmt.Sprintf("%g", once)), ShouldEqual, once)
			}
		})
	})
}

func TestNumber(t *testing.T) {
	Convey("Given arbitrary values", t, func() {
		Convey("Then nil and unknown types are zero", func() {
			So(coerce.Number(nil), ShouldEqual, 0)
			So(coerce.Number(struct{}{}), ShouldEqual, 0)
		})

		Convey("Then numbers pass through unchanged", func() {
			So(coerce.Number(42), ShouldEqual, 42)
			So(coerce.Number(42.5), ShouldEqual, 42.5)
			So(coerce.Number(int64(7)), ShouldEqual, 7)
		})

		Convey("Then strings follow the text rules", func() {
			So(coerce.Number("$2,000"), ShouldEqual, 2000)
		})
	})
}

func TestInt(t *testing.T) {
	Convey("Given tier and rating cells", t, func() {
		So(coerce.Int("3", 5), ShouldEqual, 3)
		So(coerce.Int("3.7", 5), ShouldEqual, 3)
		So(coerce.Int(" 2 ", 5), ShouldEqual, 2)

		Convey("Then blank, junk and zero fall back to the default", func() {
			So(coerce.Int("", 5), ShouldEqual, 5)
			So(coerce.Int("n/a", 5), ShouldEqual, 5)
			So(coerce.Int("0", 5), ShouldEqual, 5)
		})
	})
}
