package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_Championships(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sample game", t, func() {
		f := newFixture(t)
		_, err := f.svc.CreateSampleGame(ctx)
		So(err, ShouldBeNil)
		world := f.svc.AllChampionships()[0]
		challenger := f.svc.AllWrestlers()[2]

		Convey("When the title changes hands", func() {
			change, err := f.svc.ChangeChampion(ctx, service.TitleChangeRequest{
				ChampionshipID: world.ID,
				WrestlerID:     challenger.ID,
				EventName:      "Weekly Showdown",
			})
			So(err, ShouldBeNil)

			Convey("Then the outgoing reign goes to the lineage", func() {
				So(change.NewChampionName, ShouldEqual, "The Powerhouse")
				So(change.Date, ShouldEqual, f.svc.GameState().CurrentDate)
				So(change.PreviousChampion, ShouldNotBeNil)
				So(change.PreviousChampion.Name, ShouldEqual, "The Champion")
				So(change.PreviousChampion.DefenseCount, ShouldEqual, 4)
				So(change.PreviousChampion.ReignDays, ShouldEqual, 90)

				title, err := f.svc.ChampionshipByID(world.ID)
				So(err, ShouldBeNil)
				So(title.Lineage, ShouldHaveLength, 1)
				So(title.CurrentChampion.DefenseCount, ShouldEqual, 0)
			})

			Convey("Then the new holder's record lists the title", func() {
				w, err := f.svc.WrestlerByID(challenger.ID)
				So(err, ShouldBeNil)
				So(w.Stats.Championships, ShouldContain, world.ID)
			})
		})

		Convey("When the title is crowned to an unknown wrestler", func() {
			_, err := f.svc.ChangeChampion(ctx, service.TitleChangeRequest{ChampionshipID: world.ID, WrestlerID: "ghost"})

			Convey("Then nothing changes", func() {
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
				title, _ := f.svc.ChampionshipByID(world.ID)
				So(title.Lineage, ShouldBeEmpty)
			})
		})

		Convey("When the title is vacated and then defended", func() {
			v, err := f.svc.VacateTitle(ctx, service.VacateRequest{ChampionshipID: world.ID, Reason: "Injury"})
			So(err, ShouldBeNil)
			So(v.FormerChampion.VacatedReason, ShouldEqual, "Injury")

			_, err = f.svc.RecordDefense(ctx, service.DefenseRequest{ChampionshipID: world.ID, Opponent: "Anyone"})

			Convey("Then the defense is refused", func() {
				So(errors.Is(err, model.ErrTitleVacant), ShouldBeTrue)
				title, _ := f.svc.ChampionshipByID(world.ID)
				So(title.IsVacant(), ShouldBeTrue)
				So(title.CurrentChampion.Name, ShouldEqual, model.VacantName)
			})
		})

		Convey("When the champion retains", func() {
			d, err := f.svc.RecordDefense(ctx, service.DefenseRequest{ChampionshipID: world.ID, Opponent: "The Powerhouse"})

			Convey("Then the defense count grows", func() {
				So(err, ShouldBeNil)
				So(d.DefenseCount, ShouldEqual, 5)
			})
		})
	})
}

func TestService_Events(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sample game", t, func() {
		f := newFixture(t)
		_, err := f.svc.CreateSampleGame(ctx)
		So(err, ShouldBeNil)
		show := f.svc.AllEvents()[0]
		ws := f.svc.AllWrestlers()

		Convey("When a match is booked by wrestler id only", func() {
			id, err := f.svc.AddMatch(ctx, show.ID, model.MatchInput{
				Title:        "Opener",
				Participants: []model.Participant{{ID: ws[3].ID, Role: model.RoleHeel}, {ID: "unknown"}},
			})
			So(err, ShouldBeNil)

			Convey("Then it closes the card with names filled in", func() {
				e, err := f.svc.EventByID(show.ID)
				So(err, ShouldBeNil)
				So(e.Card, ShouldHaveLength, 3)
				m := e.Card[2]
				So(m.ID, ShouldEqual, id)
				So(m.ScheduledOrder, ShouldEqual, 3)
				So(m.Participants[0].Name, ShouldEqual, "The Veteran")
				So(m.Participants[1].Name, ShouldBeEmpty)
			})
		})

		Convey("When the event is run and finalized", func() {
			_, err := f.svc.StartEvent(ctx, show.ID)
			So(err, ShouldBeNil)

			e, err := f.svc.FinalizeEvent(ctx, show.ID, model.EventResults{
				Attendance: 4500,
				Ratings:    &model.Ratings{Overall: 4},
			})
			So(err, ShouldBeNil)

			Convey("Then the actuals are recorded", func() {
				So(e.Status, ShouldEqual, model.EventCompleted)
				So(e.Attendance.Actual, ShouldEqual, 4500)
				So(e.Attendance.PercentFull, ShouldEqual, 90)
				So(e.Ratings.Overall, ShouldEqual, 4)
			})

			Convey("Then the event cannot be cancelled any more", func() {
				_, err := f.svc.CancelEvent(ctx, show.ID)
				So(errors.Is(err, model.ErrInvalidTransition), ShouldBeTrue)
			})

			Convey("Then fan satisfaction takes the rating into account", func() {
				before, _ := f.svc.PlayerPromotion()
				rating, err := f.svc.RefreshFanSatisfaction(ctx)
				So(err, ShouldBeNil)
				So(rating, ShouldNotEqual, 0)
				So(rating, ShouldBeGreaterThanOrEqualTo, before.FanBase.SatisfactionRating)
			})
		})

		Convey("When an unknown event is booked", func() {
			_, err := f.svc.AddMatch(ctx, "missing", model.MatchInput{})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Company(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new game", t, func() {
		f := newFixture(t)
		_, err := f.svc.CreateNewGame(ctx)
		So(err, ShouldBeNil)
		start, err := f.svc.PlayerPromotion()
		So(err, ShouldBeNil)

		Convey("When a week of finances is processed", func() {
			res, err := f.svc.ProcessWeeklyFinances(ctx)
			So(err, ShouldBeNil)

			Convey("Then the profit lands in the ledger", func() {
				So(res.WeeklyProfit, ShouldEqual, 5000)
				p, _ := f.svc.PlayerPromotion()
				So(p.Finances.Balance, ShouldEqual, start.Finances.Balance+5000)
				So(p.Finances.History, ShouldHaveLength, 1)
				So(p.Finances.History[0].Date, ShouldEqual, f.svc.GameState().CurrentDate)
				So(p.Finances.VerifyLedger(), ShouldEqual, -1)
			})
		})

		Convey("When a transaction of an unknown type is posted", func() {
			_, err := f.svc.RecordTransaction(ctx, model.TransactionInput{Type: "refund", Amount: 10})

			Convey("Then the ledger is untouched", func() {
				So(errors.Is(err, model.ErrInvalidTransactionType), ShouldBeTrue)
				p, _ := f.svc.PlayerPromotion()
				So(p.Finances, ShouldResemble, start.Finances)
			})
		})

		Convey("When the headquarters is downgraded", func() {
			_, err := f.svc.UpgradeFacility(ctx, model.Headquarters, model.FacilityUpgrade{Quality: 5, Size: model.SizeSmall})

			Convey("Then no part of the upgrade is applied", func() {
				So(errors.Is(err, model.ErrFacilityDowngrade), ShouldBeTrue)
				p, _ := f.svc.PlayerPromotion()
				So(p.Facilities, ShouldResemble, start.Facilities)
				So(p.Finances.Balance, ShouldEqual, start.Finances.Balance)
			})
		})

		Convey("When the performance center is built", func() {
			res, err := f.svc.UpgradeFacility(ctx, model.PerformanceCenter, model.FacilityUpgrade{})

			Convey("Then it costs the flat build price", func() {
				So(err, ShouldBeNil)
				So(res.Cost, ShouldEqual, 250000)
				So(res.Facility.Size, ShouldEqual, model.SizeSmall)
			})
		})

		Convey("When staff are hired and a show is scheduled", func() {
			hired, err := f.svc.HireStaff(ctx, model.RoleTrainers, model.StaffMember{Name: "Coach", Salary: 1500})
			So(err, ShouldBeNil)
			_, err = f.svc.ScheduleShow(ctx, model.ShowWeekly, model.ShowInput{Name: "Tuesday Throwdown"})
			So(err, ShouldBeNil)
			_, err = f.svc.AddMediaDeal(ctx, model.MediaDeal{Partner: "StreamCo", Type: model.DealStreaming, Value: 52000})
			So(err, ShouldBeNil)

			Convey("Then the promotion books reflect them", func() {
				p, _ := f.svc.PlayerPromotion()
				So(p.Staff.Trainers, ShouldHaveLength, 1)
				So(p.Finances.WeeklyExpenses, ShouldEqual, start.Finances.WeeklyExpenses+1500)
				So(p.Finances.WeeklyRevenue, ShouldEqual, start.Finances.WeeklyRevenue+1000)
				So(p.Shows.Weekly, ShouldHaveLength, 1)
				So(p.Broadcasting.StreamingPlatforms, ShouldHaveLength, 1)
			})

			Convey("Then staff can be released", func() {
				_, err := f.svc.FireStaff(ctx, model.RoleTrainers, hired.StaffMember.ID)
				So(err, ShouldBeNil)
				_, err = f.svc.FireStaff(ctx, model.RoleTrainers, hired.StaffMember.ID)
				So(errors.Is(err, model.ErrStaffNotFound), ShouldBeTrue)
			})
		})

		Convey("When a show of an unknown cadence is cancelled", func() {
			_, err := f.svc.CancelShow(ctx, "daily", "x")
			So(errors.Is(err, model.ErrInvalidShowType), ShouldBeTrue)
		})

		Convey("When the fan base changes", func() {
			res, err := f.svc.UpdateFanBase(ctx, model.FanBaseUpdate{FanChange: 500, SatisfactionChange: 500})
			So(err, ShouldBeNil)
			So(res.CurrentFans, ShouldEqual, start.FanBase.Total+500)
			So(res.Satisfaction, ShouldEqual, 100)
		})

		Convey("When a wrestler is deleted behind the roster's back", func() {
			w := f.svc.AllWrestlers()[0]
			So(f.svc.DeleteWrestler(ctx, w.ID), ShouldBeTrue)

			drift, err := f.svc.ReconcilePlayerRoster(ctx)

			Convey("Then reconciliation corrects the accounting", func() {
				So(err, ShouldBeNil)
				So(drift.Drifted, ShouldBeTrue)
				So(drift.SizeBefore, ShouldEqual, 3)
				So(drift.SizeAfter, ShouldEqual, 2)
				p, _ := f.svc.PlayerPromotion()
				So(p.RosterManagement.CurrentSalaries, ShouldEqual, 2000)
			})

			Convey("Then a second pass finds nothing", func() {
				again, err := f.svc.ReconcilePlayerRoster(ctx)
				So(err, ShouldBeNil)
				So(again.Drifted, ShouldBeFalse)
			})
		})
	})

	Convey("Given a service with no game", t, func() {
		f := newFixture(t)

		Convey("When a player operation runs", func() {
			_, err := f.svc.ProcessWeeklyFinances(ctx)
			So(errors.Is(err, service.ErrNoPlayer), ShouldBeTrue)
		})
	})
}
