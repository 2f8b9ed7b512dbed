package model_test

import (
	"math"
	"testing"

	"github.com/eden-chan/life-flies/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEventValidate(t *testing.T) {
	Convey("Given viewer interaction events", t, func() {
		Convey("When validating scroll events", func() {
			So(model.Event{Kind: model.KindScroll, Fraction: 0.5}.Validate(), ShouldBeNil)
			So(model.Event{Kind: model.KindScroll, Fraction: -2}.Validate(), ShouldBeNil)
			So(model.Event{Kind: model.KindScroll, Fraction: 7}.Validate(), ShouldBeNil)

			Convey("Then non-finite fractions should be rejected", func() {
				err := model.Event{Kind: model.KindScroll, Fraction: math.NaN()}.Validate()
				So(err, ShouldWrap, model.ErrInvalidFraction)
				err = model.Event{Kind: model.KindScroll, Fraction: math.Inf(-1)}.Validate()
				So(err, ShouldWrap, model.ErrInvalidFraction)
			})
		})

		Convey("When validating hover events", func() {
			So(model.Event{Kind: model.KindHover, Age: 42}.Validate(), ShouldBeNil)
			So(model.Event{Kind: model.KindHover, Age: -3}.Validate(), ShouldBeNil)
			So(model.Event{Kind: model.KindUnhover}.Validate(), ShouldBeNil)
		})

		Convey("When validating reveal events", func() {
			So(model.Event{Kind: model.KindReveal, Index: 0, Ratio: 0.1}.Validate(), ShouldBeNil)
			So(model.Event{Kind: model.KindReveal, Index: 9, Ratio: 1}.Validate(), ShouldBeNil)

			Convey("Then negative indices should be rejected", func() {
				err := model.Event{Kind: model.KindReveal, Index: -1, Ratio: 0.5}.Validate()
				So(err, ShouldWrap, model.ErrInvalidIndex)
			})

			Convey("And out-of-range ratios should be rejected", func() {
				err := model.Event{Kind: model.KindReveal, Index: 0, Ratio: 1.1}.Validate()
				So(err, ShouldWrap, model.ErrInvalidRatio)
				err = model.Event{Kind: model.KindReveal, Index: 0, Ratio: math.NaN()}.Validate()
				So(err, ShouldWrap, model.ErrInvalidRatio)
			})
		})

		Convey("When validating an unknown kind", func() {
			err := model.Event{Kind: "drag"}.Validate()
			So(err, ShouldWrap, model.ErrUnknownKind)
		})
	})
}
