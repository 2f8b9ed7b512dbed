package view_test

import (
	"testing"

	"github.com/eden-chan/life-flies/internal/domain/timeline"
	"github.com/eden-chan/life-flies/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

func TestView(t *testing.T) {
	Convey("Given a fresh view", t, func() {
		v := view.New(timeline.New())

		Convey("Then it should start at the span floor with no hover", func() {
			So(v.CurrentAge(), ShouldEqual, 5)
			_, hovered := v.HoveredAge()
			So(hovered, ShouldBeFalse)
			_, tooltip := v.TooltipAge()
			So(tooltip, ShouldBeFalse)
		})

		Convey("When scrolling", func() {
			Convey("Then the fraction endpoints should map to the span endpoints", func() {
				So(v.Scroll(0), ShouldEqual, 5)
				So(v.Scroll(0.5), ShouldEqual, 40)
				So(v.Scroll(1), ShouldEqual, 80)
			})

			Convey("And repeating the same fraction should not change anything", func() {
				first := v.Scroll(0.7)
				So(v.Scroll(0.7), ShouldEqual, first)
			})

			Convey("And only the latest scroll should matter", func() {
				v.Scroll(1)
				v.Scroll(0.25)
				So(v.CurrentAge(), ShouldEqual, 20)
			})
		})

		Convey("When hovering a segment", func() {
			v.Scroll(0.5) // current age 40
			v.HoverEnter(62)

			Convey("Then the hovered age should be recorded", func() {
				age, hovered := v.HoveredAge()
				So(hovered, ShouldBeTrue)
				So(age, ShouldEqual, 62)
			})

			Convey("And the tooltip should show it", func() {
				age, ok := v.TooltipAge()
				So(ok, ShouldBeTrue)
				So(age, ShouldEqual, 62)
			})

			Convey("And rapid movement should keep only the last segment", func() {
				v.HoverEnter(63)
				v.HoverEnter(64)
				age, _ := v.HoveredAge()
				So(age, ShouldEqual, 64)
			})

			Convey("And leaving should clear it", func() {
				v.HoverLeave()
				_, hovered := v.HoveredAge()
				So(hovered, ShouldBeFalse)
				_, tooltip := v.TooltipAge()
				So(tooltip, ShouldBeFalse)
			})
		})

		Convey("When hovering the segment the page is currently at", func() {
			v.Scroll(0.5)
			v.HoverEnter(40)

			Convey("Then the hover is recorded but the tooltip stays hidden", func() {
				age, hovered := v.HoveredAge()
				So(hovered, ShouldBeTrue)
				So(age, ShouldEqual, 40)
				_, tooltip := v.TooltipAge()
				So(tooltip, ShouldBeFalse)
			})

			Convey("And scrolling away should bring the tooltip back", func() {
				v.Scroll(1)
				age, tooltip := v.TooltipAge()
				So(tooltip, ShouldBeTrue)
				So(age, ShouldEqual, 40)
			})
		})

		Convey("When hovering outside the span", func() {
			v.HoverEnter(300)

			Convey("Then the age should clamp into the span", func() {
				age, _ := v.HoveredAge()
				So(age, ShouldEqual, 80)
			})
		})

		Convey("When taking a snapshot", func() {
			v.Scroll(0.5)
			v.HoverEnter(41)
			s := v.Snapshot()

			Convey("Then it should mirror the state", func() {
				So(s.CurrentAge, ShouldEqual, 40)
				So(s.VisibleCount, ShouldEqual, 36)
				So(s.HoveredAge, ShouldNotBeNil)
				So(*s.HoveredAge, ShouldEqual, 41)
				So(s.TooltipAge, ShouldNotBeNil)
				So(*s.TooltipAge, ShouldEqual, 41)
			})

			Convey("And the suppressed tooltip should be absent from it", func() {
				v.HoverEnter(40)
				s = v.Snapshot()
				So(s.HoveredAge, ShouldNotBeNil)
				So(s.TooltipAge, ShouldBeNil)
			})
		})
	})
}
