package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/eden-chan/life-flies/internal/adapters/sessions"
	"github.com/eden-chan/life-flies/internal/domain/reveal"
	"github.com/eden-chan/life-flies/internal/domain/timeline"
	"github.com/eden-chan/life-flies/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

func newFactory() sessions.Factory {
	model := timeline.New()
	return func() (*view.View, *reveal.Tracker) {
		return view.New(model), reveal.NewTracker(8)
	}
}

func TestMemStore(t *testing.T) {
	Convey("Given an in-memory session store", t, func() {
		ctx := context.Background()
		store := sessions.NewMemStore(newFactory())

		Convey("When creating a session", func() {
			sess, err := store.Create(ctx)
			So(err, ShouldBeNil)

			Convey("Then it should have a non-empty id and fresh state", func() {
				So(sess.ID(), ShouldNotBeEmpty)
				sess.Read(func(v *view.View, tr *reveal.Tracker) {
					So(v.CurrentAge(), ShouldEqual, 5)
					So(tr.Count(), ShouldEqual, 0)
				})
			})

			Convey("And it should be retrievable by id", func() {
				got, err := store.Get(ctx, sess.ID())
				So(err, ShouldBeNil)
				So(got.ID(), ShouldEqual, sess.ID())
			})

			Convey("And the count should reflect it", func() {
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When looking up an unknown id", func() {
			_, err := store.Get(ctx, "nope")

			Convey("Then it should report ErrNotFound", func() {
				So(err, ShouldWrap, sessions.ErrNotFound)
			})
		})

		Convey("When two sessions update independently", func() {
			a, _ := store.Create(ctx)
			b, _ := store.Create(ctx)
			a.Update(func(v *view.View, _ *reveal.Tracker) { v.Scroll(1) })

			Convey("Then the other session should be untouched", func() {
				b.Read(func(v *view.View, _ *reveal.Tracker) {
					So(v.CurrentAge(), ShouldEqual, 5)
				})
				a.Read(func(v *view.View, _ *reveal.Tracker) {
					So(v.CurrentAge(), ShouldEqual, 80)
				})
			})
		})

		Convey("When sweeping idle sessions", func() {
			sess, _ := store.Create(ctx)

			Convey("Then a sweep inside the TTL should keep them", func() {
				So(store.Sweep(ctx, time.Now()), ShouldEqual, 0)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And a sweep past the TTL should drop them", func() {
				So(store.Sweep(ctx, time.Now().Add(31*time.Minute)), ShouldEqual, 1)
				So(store.Count(ctx), ShouldEqual, 0)
				_, err := store.Get(ctx, sess.ID())
				So(err, ShouldWrap, sessions.ErrNotFound)
			})
		})
	})

	Convey("Given a store capped at two sessions", t, func() {
		ctx := context.Background()
		store := sessions.NewMemStore(newFactory(), sessions.WithMaxSessions(2))

		Convey("When a third session arrives", func() {
			first, _ := store.Create(ctx)
			time.Sleep(time.Millisecond)
			second, _ := store.Create(ctx)
			time.Sleep(time.Millisecond)
			// Touch the first so the second becomes the idlest.
			first.Update(func(_ *view.View, _ *reveal.Tracker) {})
			third, _ := store.Create(ctx)

			Convey("Then the idlest session should have been evicted", func() {
				So(store.Count(ctx), ShouldEqual, 2)
				_, err := store.Get(ctx, second.ID())
				So(err, ShouldWrap, sessions.ErrNotFound)
				_, err = store.Get(ctx, first.ID())
				So(err, ShouldBeNil)
				_, err = store.Get(ctx, third.ID())
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a short custom TTL", t, func() {
		ctx := context.Background()
		store := sessions.NewMemStore(newFactory(), sessions.WithTTL(time.Minute))

		Convey("Then the sweep horizon should honor it", func() {
			_, _ = store.Create(ctx)
			So(store.Sweep(ctx, time.Now().Add(2*time.Minute)), ShouldEqual, 1)
		})
	})
}
