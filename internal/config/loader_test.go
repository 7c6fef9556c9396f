package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/ringside/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "game-data")
				convey.So(cfg.SaveFile, convey.ShouldEqual, "save-data.json")
				convey.So(cfg.PersistOnMutation, convey.ShouldBeTrue)
				convey.So(cfg.Difficulty, convey.ShouldEqual, "normal")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RINGSIDE_DATA_DIR", "/tmp/ringside")
			_ = os.Setenv("RINGSIDE_LOG_LEVEL", "debug")
			_ = os.Setenv("RINGSIDE_PERSIST_ON_MUTATION", "false")
			_ = os.Setenv("RINGSIDE_WEEKLY_FINANCES", "true")
			_ = os.Setenv("RINGSIDE_METRICS_FILE", "/tmp/ringside.prom")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/ringside")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.PersistOnMutation, convey.ShouldBeFalse)
				convey.So(cfg.WeeklyFinances, convey.ShouldBeTrue)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/ringside.prom")
				convey.So(cfg.SaveFile, convey.ShouldEqual, "save-data.json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# slot two
data_dir: "saves"
save_file: "slot2.json"
log_format: json
difficulty: hard
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RINGSIDE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "saves")
				convey.So(cfg.SaveFile, convey.ShouldEqual, "slot2.json")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Difficulty, convey.ShouldEqual, "hard")
				convey.So(cfg.SettingsFile, convey.ShouldEqual, "settings.json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("data_dir: from-file\nlog_level: warn\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RINGSIDE_CONFIG", tmpFile)
			_ = os.Setenv("RINGSIDE_DATA_DIR", "from-env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataDir, convey.ShouldEqual, "from-env")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("RINGSIDE_CONFIG", "/nonexistent/ringside.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML is malformed", func() {
			tmpFile := createTempConfigFile("data_dir: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RINGSIDE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When save and settings resolve to the same file", func() {
			_ = os.Setenv("RINGSIDE_SETTINGS_FILE", "save-data.json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, config.ErrDataPaths), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the difficulty is unknown", func() {
			_ = os.Setenv("RINGSIDE_DIFFICULTY", "nightmare")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, config.ErrDifficulty), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "nightmare")
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("RINGSIDE_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLogFormat), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RINGSIDE_CONFIG",
		"RINGSIDE_DATA_DIR",
		"RINGSIDE_LOG_LEVEL",
		"RINGSIDE_LOG_FORMAT",
		"RINGSIDE_SAVE_FILE",
		"RINGSIDE_SETTINGS_FILE",
		"RINGSIDE_METRICS_FILE",
		"RINGSIDE_PERSIST_ON_MUTATION",
		"RINGSIDE_WEEKLY_FINANCES",
		"RINGSIDE_DIFFICULTY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "ringside-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
