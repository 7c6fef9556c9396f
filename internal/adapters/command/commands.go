package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/ringside/internal/domain/model"
)

type idArgs struct {
	ID string `json:"id"`
}

type updateArgs[P any] struct {
	ID   string `json:"id"`
	Data P      `json:"data"`
}

// Deleted is the result of a delete command.
type Deleted struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

func (d *Dispatcher) handle(name string, mutates bool, fn handlerFunc) {
	d.routes[name] = route{fn: fn, mutates: mutates}
}

func (d *Dispatcher) register() {
	g := d.game

	d.handle("get-all-wrestlers", false, list(g.AllWrestlers))
	d.handle("get-wrestler", false, get(g.WrestlerByID))
	d.handle("add-wrestler", true, add(g.AddWrestler))
	d.handle("update-wrestler", true, update(g.UpdateWrestler))
	d.handle("delete-wrestler", true, remove("wrestler", g.DeleteWrestler))

	d.handle("get-all-championships", false, list(g.AllChampionships))
	d.handle("get-championship", false, get(g.ChampionshipByID))
	d.handle("add-championship", true, add(g.AddChampionship))
	d.handle("update-championship", true, update(g.UpdateChampionship))
	d.handle("delete-championship", true, remove("championship", g.DeleteChampionship))

	d.handle("get-all-events", false, list(g.AllEvents))
	d.handle("get-event", false, get(g.EventByID))
	d.handle("add-event", true, add(g.AddEvent))
	d.handle("update-event", true, update(g.UpdateEvent))
	d.handle("delete-event", true, remove("event", g.DeleteEvent))

	d.handle("get-all-promotions", false, list(g.AllPromotions))
	d.handle("get-promotion", false, get(g.PromotionByID))
	d.handle("add-promotion", true, add(g.AddPromotion))
	d.handle("update-promotion", true, update(g.UpdatePromotion))
	d.handle("delete-promotion", true, d.deletePromotion)
	d.handle("get-player-promotion", false, func(context.Context, json.RawMessage) (any, error) {
		return g.PlayerPromotion()
	})

	d.handle("new-game", false, noArgs(g.CreateNewGame))
	d.handle("new-sample-game", false, noArgs(g.CreateSampleGame))
	d.handle("save-game", false, noArgs(g.SaveGame))
	d.handle("load-game", false, noArgs(g.LoadGame))
	d.handle("advance-week", true, noArgs(g.AdvanceGameWeek))
	d.handle("get-game-state", false, func(context.Context, json.RawMessage) (any, error) {
		return g.GameState(), nil
	})

	d.handle("get-settings", false, noArgs(g.Settings))
	d.handle("update-settings", false, withArgs(g.UpdateSettings))
	d.handle("reset-settings", false, noArgs(g.ResetSettings))

	d.handle("change-champion", true, withArgs(g.ChangeChampion))
	d.handle("record-defense", true, withArgs(g.RecordDefense))
	d.handle("vacate-title", true, withArgs(g.VacateTitle))
	d.handle("add-match", true, d.addMatch)
	d.handle("start-event", true, byID(g.StartEvent))
	d.handle("cancel-event", true, byID(g.CancelEvent))
	d.handle("finalize-event", true, d.finalizeEvent)

	d.handle("process-weekly-finances", true, noArgs(g.ProcessWeeklyFinances))
	d.handle("record-transaction", true, withArgs(g.RecordTransaction))
	d.handle("add-media-deal", true, withArgs(g.AddMediaDeal))
	d.handle("schedule-show", true, d.scheduleShow)
	d.handle("cancel-show", true, d.cancelShow)
	d.handle("hire-staff", true, d.hireStaff)
	d.handle("fire-staff", true, d.fireStaff)
	d.handle("upgrade-facility", true, d.upgradeFacility)
	d.handle("update-fan-base", true, withArgs(g.UpdateFanBase))
	d.handle("refresh-fan-satisfaction", true, func(ctx context.Context, _ json.RawMessage) (any, error) {
		rating, err := g.RefreshFanSatisfaction(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]int{"satisfactionRating": rating}, nil
	})
	d.handle("reconcile-roster", true, noArgs(g.ReconcilePlayerRoster))
}

func list[T any](fn func() []T) handlerFunc {
	return func(context.Context, json.RawMessage) (any, error) {
		return fn(), nil
	}
}

func get[T any](fn func(string) (T, error)) handlerFunc {
	return func(_ context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		if err := requireID(a.ID); err != nil {
			return nil, err
		}
		return fn(a.ID)
	}
}

func add[T any](fn func(context.Context, []byte) (T, error)) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		return fn(ctx, args)
	}
}

func update[P, T any](fn func(context.Context, string, P) (T, error)) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		var a updateArgs[P]
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		if err := requireID(a.ID); err != nil {
			return nil, err
		}
		return fn(ctx, a.ID, a.Data)
	}
}

func remove(entity string, fn func(context.Context, string) bool) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		if err := requireID(a.ID); err != nil {
			return nil, err
		}
		return deleted(entity, fn(ctx, a.ID)), nil
	}
}

func deleted(entity string, ok bool) Deleted {
	if ok {
		return Deleted{Message: fmt.Sprintf("%s deleted", entity), Deleted: true}
	}
	return Deleted{Message: fmt.Sprintf("%s not found", entity)}
}

func noArgs[T any](fn func(context.Context) (T, error)) handlerFunc {
	return func(ctx context.Context, _ json.RawMessage) (any, error) {
		return fn(ctx)
	}
}

func withArgs[A, T any](fn func(context.Context, A) (T, error)) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		var a A
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		return fn(ctx, a)
	}
}

func byID[T any](fn func(context.Context, string) (T, error)) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		var a idArgs
		if err := bind(args, &a); err != nil {
			return nil, err
		}
		if err := requireID(a.ID); err != nil {
			return nil, err
		}
		return fn(ctx, a.ID)
	}
}

func (d *Dispatcher) deletePromotion(ctx context.Context, args json.RawMessage) (any, error) {
	var a idArgs
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	if err := requireID(a.ID); err != nil {
		return nil, err
	}
	ok, err := d.game.DeletePromotion(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return deleted("promotion", ok), nil
}

func (d *Dispatcher) addMatch(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		EventID string           `json:"eventId"`
		Match   model.MatchInput `json:"match"`
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	if err := requireID(a.EventID); err != nil {
		return nil, err
	}
	id, err := d.game.AddMatch(ctx, a.EventID, a.Match)
	if err != nil {
		return nil, err
	}
	return map[string]string{"matchId": id}, nil
}

func (d *Dispatcher) finalizeEvent(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		ID      string             `json:"id"`
		Results model.EventResults `json:"results"`
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	if err := requireID(a.ID); err != nil {
		return nil, err
	}
	return d.game.FinalizeEvent(ctx, a.ID, a.Results)
}

func (d *Dispatcher) scheduleShow(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Kind model.ShowKind  `json:"kind"`
		Show model.ShowInput `json:"show"`
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	return d.game.ScheduleShow(ctx, a.Kind, a.Show)
}

func (d *Dispatcher) cancelShow(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Kind model.ShowKind `json:"kind"`
		ID   string         `json:"id"`
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	return d.game.CancelShow(ctx, a.Kind, a.ID)
}

func (d *Dispatcher) hireStaff(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Role   model.StaffRole   `json:"role"`
		Member model.StaffMember `json:"member"`
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	return d.game.HireStaff(ctx, a.Role, a.Member)
}

func (d *Dispatcher) fireStaff(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Role model.StaffRole `json:"role"`
		ID   string          `json:"id"`
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	return d.game.FireStaff(ctx, a.Role, a.ID)
}

func (d *Dispatcher) upgradeFacility(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Facility model.FacilityKind `json:"facility"`
		model.FacilityUpgrade
	}
	if err := bind(args, &a); err != nil {
		return nil, err
	}
	return d.game.UpgradeFacility(ctx, a.Facility, a.FacilityUpgrade)
}
