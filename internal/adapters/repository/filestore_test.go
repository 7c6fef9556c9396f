package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileStore(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	Convey("Given a file store in an empty directory", t, func() {
		dir := t.TempDir()
		savePath := filepath.Join(dir, "game-data", "save-data.json")
		settingsPath := filepath.Join(dir, "game-data", "settings.json")
		store := repository.NewFileStore(savePath, settingsPath,
			repository.WithClock(calendar.NewFakeClock(now)))

		Convey("When nothing has been saved", func() {
			So(store.GameExists(ctx), ShouldBeFalse)

			_, err := store.LoadGame(ctx)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

			_, err = store.LoadSettings(ctx)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a game is saved and loaded back", func() {
			promo := model.NewPromotion(now)
			w := model.NewWrestler(now)
			promo.AddWrestler(w)
			title := model.NewChampionship(now)
			title.ChangeChampion(w.ID, w.Name, "2024-01-01", "Week 1")
			event := model.NewEvent(now)
			event.AddMatch(model.MatchInput{Title: "Opener"})

			state := model.NewGameState(now, "")
			state.PlayerPromotionID = &promo.ID

			snap := &repository.Snapshot{
				GameState:     state,
				Wrestlers:     []*model.Wrestler{w},
				Championships: []*model.Championship{title},
				Events:        []*model.Event{event},
				Promotions:    []*model.Promotion{promo},
			}
			So(store.SaveGame(ctx, snap), ShouldBeNil)

			Convey("Then the document is pretty-printed JSON on disk", func() {
				So(store.GameExists(ctx), ShouldBeTrue)
				data, err := os.ReadFile(savePath)
				So(err, ShouldBeNil)
				So(strings.HasPrefix(string(data), "{\n  \"gameState\""), ShouldBeTrue)
				_, err = os.Stat(savePath + ".tmp")
				So(os.IsNotExist(err), ShouldBeTrue)
			})

			Convey("Then loading reproduces every entity", func() {
				back, err := store.LoadGame(ctx)
				So(err, ShouldBeNil)
				So(back, ShouldResemble, snap)
			})
		})

		Convey("When an empty game is saved", func() {
			So(store.SaveGame(ctx, &repository.Snapshot{GameState: model.NewGameState(now, "")}), ShouldBeNil)
			back, err := store.LoadGame(ctx)
			So(err, ShouldBeNil)
			So(back.Wrestlers, ShouldNotBeNil)
			So(back.Wrestlers, ShouldBeEmpty)
			So(back.GameState.PlayerPromotionID, ShouldBeNil)
		})

		Convey("When the save document holds partial entities", func() {
			So(os.MkdirAll(filepath.Dir(savePath), 0o755), ShouldBeNil)
			doc := `{"gameState":{"currentDate":"2024-01-01","gameWeek":3},"wrestlers":[{"name":"Solo"}]}`
			So(os.WriteFile(savePath, []byte(doc), 0o644), ShouldBeNil)

			snap, err := store.LoadGame(ctx)

			Convey("Then they are completed with defaults", func() {
				So(err, ShouldBeNil)
				So(snap.GameState.GameWeek, ShouldEqual, 3)
				So(snap.Wrestlers, ShouldHaveLength, 1)
				So(snap.Wrestlers[0].ID, ShouldNotBeEmpty)
				So(snap.Wrestlers[0].Contract.Signed, ShouldEqual, "2024-01-01T00:00:00.000Z")
				So(snap.Promotions, ShouldBeEmpty)
			})
		})

		Convey("When the save document is corrupt", func() {
			So(os.MkdirAll(filepath.Dir(savePath), 0o755), ShouldBeNil)
			So(os.WriteFile(savePath, []byte(`{"wrestlers":[{"name":1}]}`), 0o644), ShouldBeNil)

			snap, err := store.LoadGame(ctx)
			So(snap, ShouldBeNil)
			So(errors.Is(err, repository.ErrCorrupt), ShouldBeTrue)
		})

		Convey("When settings are saved and loaded back", func() {
			s := model.NewSettings()
			s.Display.Theme = "dark"
			So(store.SaveSettings(ctx, s), ShouldBeNil)

			back, err := store.LoadSettings(ctx)
			So(err, ShouldBeNil)
			So(back, ShouldResemble, s)
		})

		Convey("When the target directory cannot be created", func() {
			blocker := filepath.Join(dir, "blocker")
			So(os.WriteFile(blocker, []byte("x"), 0o644), ShouldBeNil)
			bad := repository.NewFileStore(filepath.Join(blocker, "save.json"), settingsPath)

			err := bad.SaveGame(ctx, &repository.Snapshot{})
			So(errors.Is(err, repository.ErrWrite), ShouldBeTrue)
		})
	})
}
