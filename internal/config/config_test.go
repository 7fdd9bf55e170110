package config_test

import (
	"testing"

	"github.com/okian/swiri/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "models/swiri_rf_model.json")
			convey.So(cfg.SessionTTLMinutes, convey.ShouldEqual, 60)
			convey.So(cfg.MaxSessions, convey.ShouldEqual, 1_000)
			convey.So(cfg.MaxLogEntries, convey.ShouldEqual, 500)
			convey.So(cfg.Location, convey.ShouldEqual, "School Playground")
			convey.So(cfg.RandomSeed, convey.ShouldEqual, 0)
			convey.So(cfg.ChartTail, convey.ShouldEqual, 20)
		})

		convey.Convey("And the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
