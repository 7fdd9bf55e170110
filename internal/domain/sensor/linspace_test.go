package sensor

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLinspace(t *testing.T) {
	Convey("Given a 0->15 ramp over 50 samples", t, func() {
		r := linspace(0, 15, 50)

		Convey("Then both endpoints are included", func() {
			So(len(r), ShouldEqual, 50)
			So(r[0], ShouldEqual, 0)
			So(r[49], ShouldAlmostEqual, 15, 1e-9)
		})

		Convey("And the steps are even", func() {
			So(r[1]-r[0], ShouldAlmostEqual, 15.0/49, 1e-12)
		})
	})

	Convey("Given a single-sample ramp", t, func() {
		So(linspace(3, 9, 1), ShouldResemble, []float64{3})
	})

	Convey("Given values outside a range", t, func() {
		So(clamp(-1, 0, 10), ShouldEqual, 0)
		So(clamp(11, 0, 10), ShouldEqual, 10)
		So(clamp(4.2, 0, 10), ShouldEqual, 4.2)
	})
}
