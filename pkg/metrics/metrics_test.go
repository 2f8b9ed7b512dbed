package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then the manager should be configured with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "lifeflies")
				So(manager.subsystem, ShouldEqual, "page")
				So(manager.enabled, ShouldBeTrue)
			})

			Convey("And all metrics should have registered", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				// Gauges report even before first Set; counters after first Inc.
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("custom"),
				WithSubsystem("strip"),
				WithHistogramBuckets([]float64{1, 5, 10}),
			)

			Convey("Then the options should take effect", func() {
				So(manager.namespace, ShouldEqual, "custom")
				So(manager.subsystem, ShouldEqual, "strip")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording interaction metrics", func() {
			// These must not panic against the package-level registry.
			RecordScrollEvent()
			RecordHoverEvent()
			RecordUnhoverEvent()
			RecordRevealEvent()
			RecordItemRevealed()
			RecordPageRender("vertical")
			RecordTimelineBuildDuration(0.2)
			RecordSessionCreated()
			RecordSessionsExpired(2)
			UpdateActiveSessions(3)
			RecordHTTPRequest("timeline", "GET", "200")
			RecordHTTPRequestDuration("timeline", "GET", "200", 1.5)
			RecordErrorByEndpoint("events", "POST", "client_error")
			RecordErrorByType("client_error", "medium")
			RecordErrorLatency("http", "client_error", 0.7)
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(10)
			RecordSystemGCPauseTime(0.1)

			Convey("Then the registry should gather them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
