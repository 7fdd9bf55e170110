package scenariorun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/swiri/internal/adapters/http/api"
	service "github.com/okian/swiri/internal/app"
	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// echoPredictor labels every window with the label named like its scenario.
type echoPredictor struct{}

func (echoPredictor) Predict(_ context.Context, fv model.FeatureVector) (model.Prediction, error) {
	// Heart-rate bands do not overlap between scenarios.
	label := model.LabelNormal
	switch {
	case fv.HRMean >= 125:
		label = model.LabelDanger
	case fv.HRMean >= 98:
		label = model.LabelPlaying
	}
	probs := []float64{0, 0, 0}
	probs[label.Code()] = 1
	return model.Prediction{Label: label, Code: label.Code(), Confidence: 100, Probabilities: probs}, nil
}

func newServer(opts ...service.Option) (*httptest.Server, func()) {
	svc := service.New(append([]service.Option{service.WithRandomSeed(7)}, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)
	ts := httptest.NewServer(mux)
	return ts, func() {
		ts.Close()
		svc.Stop()
	}
}

func TestRun(t *testing.T) {
	Convey("Given a server with the shipped classifier", t, func() {
		ts, closeFn := newServer(service.WithModelPath("../../models/swiri_rf_model.json"))
		defer closeFn()

		cfg := &Config{BaseURL: ts.URL, Rounds: 5, Workers: 3, Timeout: 5 * time.Second}

		Convey("When running the scenarios", func() {
			var out bytes.Buffer
			report, err := Run(context.Background(), cfg, &out)

			Convey("Then every cycle lands in the matrix", func() {
				So(err, ShouldBeNil)
				So(report.RunID, ShouldNotBeEmpty)
				So(report.Failed, ShouldEqual, 0)
				for _, sc := range scenarioNames {
					So(report.Matrix.Total(sc), ShouldEqual, 5)
				}
				So(report.Accuracy, ShouldBeGreaterThanOrEqualTo, 0.8)
				So(out.String(), ShouldContainSubstring, "accuracy")
			})
		})

		Convey("When an output file is requested", func() {
			cfg.OutputFile = filepath.Join(t.TempDir(), "reports", "run.json")
			report, err := Run(context.Background(), cfg, &bytes.Buffer{})
			So(err, ShouldBeNil)

			Convey("Then the report is written as JSON", func() {
				data, readErr := os.ReadFile(cfg.OutputFile)
				So(readErr, ShouldBeNil)
				var saved Report
				So(json.Unmarshal(data, &saved), ShouldBeNil)
				So(saved.RunID, ShouldEqual, report.RunID)
				So(saved.Matrix.Counts, ShouldContainKey, "DANGER")
			})
		})
	})

	Convey("Given a server with a predictor that follows the heart rate", t, func() {
		ts, closeFn := newServer(service.WithPredictor(echoPredictor{}))
		defer closeFn()

		Convey("When running with a single worker", func() {
			report, err := Run(context.Background(), &Config{BaseURL: ts.URL, Rounds: 3, Workers: 1, Timeout: time.Second}, &bytes.Buffer{})

			Convey("Then each scenario is classified three times", func() {
				So(err, ShouldBeNil)
				So(report.Failed, ShouldEqual, 0)
				So(report.Matrix.Total("NORMAL"), ShouldEqual, 3)
				So(report.Matrix.Total("PLAYING"), ShouldEqual, 3)
				So(report.Matrix.Total("DANGER"), ShouldEqual, 3)
				So(report.Accuracy, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a server without a classifier", t, func() {
		ts, closeFn := newServer()
		defer closeFn()

		Convey("When running", func() {
			_, err := Run(context.Background(), &Config{BaseURL: ts.URL, Rounds: 1, Workers: 1, Timeout: time.Second}, &bytes.Buffer{})

			Convey("Then it refuses to start", func() {
				So(errors.Is(err, ErrModelUnavailable), ShouldBeTrue)
			})
		})
	})

	Convey("Given an invalid configuration", t, func() {
		_, err := Run(context.Background(), &Config{BaseURL: "http://127.0.0.1:0", Rounds: 0}, &bytes.Buffer{})

		Convey("Then rounds are rejected before any request", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "rounds must be positive")
		})
	})
}

func TestHTTPClient(t *testing.T) {
	Convey("Given a client against an API", t, func() {
		ts, closeFn := newServer(service.WithPredictor(echoPredictor{}))
		defer closeFn()
		c := newHTTPClient(ts.URL, "run-1", time.Second)
		ctx := context.Background()

		Convey("When selecting an unknown scenario", func() {
			sess, err := c.CreateSession(ctx)
			So(err, ShouldBeNil)
			err = c.SelectScenario(ctx, sess.ID, "SLEEPING")

			Convey("Then the API error code is surfaced", func() {
				So(errors.Is(err, ErrRequest), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "invalid_scenario")
			})
		})

		Convey("When classifying before any window exists", func() {
			sess, err := c.CreateSession(ctx)
			So(err, ShouldBeNil)
			_, err = c.Classify(ctx, sess.ID)

			Convey("Then the request fails with a conflict", func() {
				So(errors.Is(err, ErrRequest), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "409")
			})
		})

		Convey("When a cycle completes", func() {
			sess, err := c.CreateSession(ctx)
			So(err, ShouldBeNil)
			So(c.SelectScenario(ctx, sess.ID, "DANGER"), ShouldBeNil)
			v, err := c.Classify(ctx, sess.ID)

			Convey("Then the prediction is decoded", func() {
				So(err, ShouldBeNil)
				So(v.ID, ShouldEqual, sess.ID)
				So(v.Prediction, ShouldNotBeNil)
				So(v.Prediction.Confidence, ShouldEqual, 100)
			})
		})
	})
}
