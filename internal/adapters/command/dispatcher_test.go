package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/ringside/internal/adapters/command"
	repository "github.com/okian/ringside/internal/adapters/repository"
	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type harness struct {
	svc   *service.Service
	store *repository.FileStore
	d     *command.Dispatcher
}

func newHarness(t *testing.T, opts ...command.Option) *harness {
	dir := t.TempDir()
	clock := calendar.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := repository.NewFileStore(
		filepath.Join(dir, "save-data.json"),
		filepath.Join(dir, "settings.json"),
		repository.WithClock(clock),
	)
	svc := service.New(service.WithStore(store), service.WithClock(clock))
	return &harness{svc: svc, store: store, d: command.NewDispatcher(svc, opts...)}
}

func (h *harness) run(name string, args any) command.Response {
	var raw json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		So(err, ShouldBeNil)
		raw = b
	}
	return h.d.Execute(context.Background(), name, raw)
}

// roundTrip renders a response the way the CLI prints it.
func roundTrip(resp command.Response) map[string]any {
	b, err := json.Marshal(resp)
	So(err, ShouldBeNil)
	var out map[string]any
	So(json.Unmarshal(b, &out), ShouldBeNil)
	return out
}

func TestDispatcher_Commands(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		h := newHarness(t)

		Convey("Then every command of the game is registered", func() {
			names := h.d.Commands()
			for _, entity := range []string{"wrestler", "championship", "event", "promotion"} {
				So(names, ShouldContain, "get-"+entity)
				So(names, ShouldContain, "add-"+entity)
				So(names, ShouldContain, "update-"+entity)
				So(names, ShouldContain, "delete-"+entity)
			}
			for _, name := range []string{
				"get-all-wrestlers", "get-all-championships", "get-all-events", "get-all-promotions",
				"get-player-promotion", "new-game", "new-sample-game", "save-game", "load-game",
				"advance-week", "get-settings", "update-settings", "reset-settings",
				"change-champion", "record-defense", "vacate-title", "add-match", "finalize-event",
				"process-weekly-finances", "upgrade-facility", "reconcile-roster",
			} {
				So(names, ShouldContain, name)
			}
		})

		Convey("When an unknown command is sent", func() {
			resp := h.run("summon-wrestler", nil)

			Convey("Then it fails with its kind", func() {
				So(resp.Success, ShouldBeFalse)
				So(resp.Kind, ShouldEqual, command.KindUnknownCommand)
				So(resp.Message, ShouldContainSubstring, "summon-wrestler")
			})
		})
	})
}

func TestDispatcher_CRUD(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new game behind the dispatcher", t, func() {
		h := newHarness(t)
		resp := h.run("new-game", nil)
		So(resp.Success, ShouldBeTrue)
		So(resp.Message, ShouldEqual, "New game created successfully")

		Convey("When a wrestler is added", func() {
			resp := h.run("add-wrestler", map[string]any{"name": "Rookie"})
			So(resp.Success, ShouldBeTrue)
			w := resp.Data.(*model.Wrestler)

			Convey("Then the save on disk already holds it", func() {
				snap, err := h.store.LoadGame(ctx)
				So(err, ShouldBeNil)
				So(snap.Wrestlers, ShouldHaveLength, 4)
				So(snap.Wrestlers[3].ID, ShouldEqual, w.ID)
			})

			Convey("Then it can be fetched, updated and deleted", func() {
				got := h.run("get-wrestler", map[string]any{"id": w.ID})
				So(got.Success, ShouldBeTrue)

				upd := h.run("update-wrestler", map[string]any{"id": w.ID, "data": map[string]any{"age": 31}})
				So(upd.Success, ShouldBeTrue)
				So(upd.Data.(*model.Wrestler).Age, ShouldEqual, 31)

				del := roundTrip(h.run("delete-wrestler", map[string]any{"id": w.ID}))
				So(del["success"], ShouldEqual, true)
				So(del["data"].(map[string]any)["deleted"], ShouldEqual, true)
				So(del["message"], ShouldEqual, "wrestler deleted")
			})
		})

		Convey("When a missing wrestler is fetched", func() {
			resp := h.run("get-wrestler", map[string]any{"id": "nobody"})
			So(resp.Success, ShouldBeFalse)
			So(resp.Kind, ShouldEqual, command.KindNotFound)
		})

		Convey("When arguments are malformed", func() {
			resp := h.d.Execute(ctx, "update-event", json.RawMessage(`{"id": 7}`))
			So(resp.Success, ShouldBeFalse)
			So(resp.Kind, ShouldEqual, command.KindBadRequest)

			resp = h.run("get-championship", map[string]any{})
			So(resp.Kind, ShouldEqual, command.KindBadRequest)
		})

		Convey("When the player promotion is deleted", func() {
			p, err := h.svc.PlayerPromotion()
			So(err, ShouldBeNil)
			resp := h.run("delete-promotion", map[string]any{"id": p.ID})
			So(resp.Success, ShouldBeFalse)
			So(resp.Kind, ShouldEqual, command.KindForbidden)
		})

		Convey("When a rule is broken", func() {
			resp := h.run("upgrade-facility", map[string]any{"facility": "headquarters", "quality": 1})
			So(resp.Success, ShouldBeFalse)
			So(resp.Kind, ShouldEqual, command.KindRuleViolation)
		})

		Convey("When the week advances", func() {
			out := roundTrip(h.run("advance-week", nil))
			So(out["success"], ShouldEqual, true)
			data := out["data"].(map[string]any)
			So(data["week"], ShouldEqual, float64(2))
			So(data["currentDate"], ShouldEqual, "2024-01-08T00:00:00.000Z")
		})
	})

	Convey("Given a dispatcher that does not persist on mutation", t, func() {
		h := newHarness(t, command.WithPersistOnMutation(false))
		So(h.run("add-wrestler", map[string]any{"name": "Ghost"}).Success, ShouldBeTrue)

		Convey("Then nothing is written until the game is saved", func() {
			So(h.store.GameExists(ctx), ShouldBeFalse)
			So(h.run("save-game", nil).Success, ShouldBeTrue)
			So(h.store.GameExists(ctx), ShouldBeTrue)
		})
	})
}

func TestDispatcher_RunScript(t *testing.T) {
	Convey("Given a script of commands", t, func() {
		h := newHarness(t)
		script := strings.Join([]string{
			"# set up a sample game",
			"new-sample-game",
			"",
			"process-weekly-finances",
			`get-event {"id": "missing"}`,
			"reconcile-roster",
		}, "\n")

		var out bytes.Buffer
		failed, err := h.d.RunScript(context.Background(), strings.NewReader(script), &out)

		Convey("Then every command answers on its own line", func() {
			So(err, ShouldBeNil)
			So(failed, ShouldEqual, 1)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			So(lines, ShouldHaveLength, 4)

			var third map[string]any
			So(json.Unmarshal([]byte(lines[2]), &third), ShouldBeNil)
			So(third["command"], ShouldEqual, "get-event")
			So(third["success"], ShouldEqual, false)
			So(third["kind"], ShouldEqual, command.KindNotFound)
		})
	})

	Convey("Given command lines", t, func() {
		name, args := command.ParseLine(`  add-event {"name": "Clash"}  `)
		So(name, ShouldEqual, "add-event")
		So(string(args), ShouldEqual, `{"name": "Clash"}`)

		name, args = command.ParseLine("save-game")
		So(name, ShouldEqual, "save-game")
		So(args, ShouldBeNil)
	})
}

func TestKind(t *testing.T) {
	Convey("Given errors from every layer", t, func() {
		cases := map[error]string{
			command.ErrUnknownCommand:                                        command.KindUnknownCommand,
			fmt.Errorf("%w: x", command.ErrBadArguments):                     command.KindBadRequest,
			model.ErrDecode:                                                  command.KindBadRequest,
			fmt.Errorf("%w: wrestler x", service.ErrNotFound):                command.KindNotFound,
			model.ErrStaffNotFound:                                           command.KindNotFound,
			service.ErrPlayerPromotion:                                       command.KindForbidden,
			service.ErrNoPlayer:                                              command.KindNoGame,
			fmt.Errorf("%w: %w", service.ErrLoadGame, repository.ErrNotFound): command.KindLoadFailed,
			fmt.Errorf("%w: disk", service.ErrSaveGame):                      command.KindSaveFailed,
			service.ErrSettings:                                              command.KindSettings,
			service.ErrAdvanceWeek:                                           command.KindInvalidState,
			model.ErrTitleVacant:                                             command.KindRuleViolation,
			model.ErrFacilityDowngrade:                                       command.KindRuleViolation,
			errors.New("boom"):                                               command.KindInternal,
		}

		for err, kind := range cases {
			So(command.Kind(err), ShouldEqual, kind)
		}
		So(command.Kind(nil), ShouldBeEmpty)
	})
}
