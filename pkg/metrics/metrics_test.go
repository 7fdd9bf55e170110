package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the service namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "swiri")
				So(manager.subsystem, ShouldEqual, "monitor")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "swiri")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When pipeline events are recorded", func() {
			m.RecordWindowGenerated("DANGER")
			m.RecordWindowGenerated("DANGER")
			m.RecordClassification("DANGER", 92, 0.2)
			m.RecordDangerAlert()
			m.RecordConfirmation("CONFIRMED")
			m.RecordDomainError("unknown_label")
			m.SetModelLoaded(true)
			m.UpdateActiveSessions(3)
			m.RecordSessionsExpired(2)

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(m.windowsGenerated.WithLabelValues("DANGER")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.classifications.WithLabelValues("DANGER")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.dangerAlerts), ShouldEqual, 1)
				So(testutil.ToFloat64(m.confirmations.WithLabelValues("CONFIRMED")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.domainErrors.WithLabelValues("unknown_label")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.modelLoaded), ShouldEqual, 1)
				So(testutil.ToFloat64(m.activeSessions), ShouldEqual, 3)
				So(testutil.ToFloat64(m.sessionsExpired), ShouldEqual, 2)
			})

			Convey("And unloading the model zeroes the gauge", func() {
				m.SetModelLoaded(false)
				So(testutil.ToFloat64(m.modelLoaded), ShouldEqual, 0)
			})
		})

		Convey("When HTTP traffic is recorded", func() {
			m.RecordHTTPRequest("classify", "POST", "200", 1.5)
			m.RecordErrorByEndpoint("classify", "POST", "client_error")

			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("classify", "POST", "200")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("classify", "POST", "client_error")), ShouldEqual, 1)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package helpers do not panic", func() {
			So(func() {
				RecordWindowGenerated("NORMAL")
				RecordClassification("NORMAL", 88, 0.1)
				SetModelLoaded(false)
				UpdateActiveSessions(1)
				RecordSessionCreated()
				RecordSessionsExpired(0)
				RecordDangerAlert()
				RecordCapture()
				RecordConfirmation("FALSE_ALARM")
				RecordDomainError("empty_window")
				RecordHTTPRequest("healthz", "GET", "200", 0.3)
				RecordErrorByEndpoint("healthz", "GET", "not_found")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(4)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})

		Convey("And the custom registry gathers them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
