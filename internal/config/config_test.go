package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/okian/ringside/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DataDir, convey.ShouldEqual, "game-data")
			convey.So(cfg.SaveFile, convey.ShouldEqual, "save-data.json")
			convey.So(cfg.SettingsFile, convey.ShouldEqual, "settings.json")
			convey.So(cfg.PersistOnMutation, convey.ShouldBeTrue)
			convey.So(cfg.WeeklyFinances, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then paths resolve under the data directory", func() {
			convey.So(cfg.SavePath(), convey.ShouldEqual, filepath.Join("game-data", "save-data.json"))
			convey.So(cfg.SettingsPath(), convey.ShouldEqual, filepath.Join("game-data", "settings.json"))
		})

		convey.Convey("Then absolute file names are kept", func() {
			abs := filepath.Join(t.TempDir(), "slot1.json")
			cfg.SaveFile = abs
			convey.So(cfg.SavePath(), convey.ShouldEqual, abs)
		})
	})
}
