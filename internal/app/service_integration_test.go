package service_test

import (
	"context"
	"testing"

	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sample game with weekly finances", t, func() {
		f := newFixture(t, service.WithWeeklyHooks(service.WeeklyFinancesHook(logger.Get())))
		_, err := f.svc.CreateSampleGame(ctx)
		So(err, ShouldBeNil)

		show := f.svc.AllEvents()[0]
		titles := f.svc.AllChampionships()
		ws := f.svc.AllWrestlers()

		Convey("When a season of shows is played out", func() {
			_, err := f.svc.StartEvent(ctx, show.ID)
			So(err, ShouldBeNil)
			_, err = f.svc.RecordDefense(ctx, service.DefenseRequest{
				ChampionshipID: titles[0].ID,
				Opponent:       ws[2].Name,
				EventName:      show.Name,
			})
			So(err, ShouldBeNil)
			_, err = f.svc.ChangeChampion(ctx, service.TitleChangeRequest{
				ChampionshipID: titles[1].ID,
				WrestlerID:     ws[3].ID,
				EventName:      show.Name,
			})
			So(err, ShouldBeNil)
			_, err = f.svc.FinalizeEvent(ctx, show.ID, model.EventResults{
				Attendance: 5000,
				Ratings:    &model.Ratings{Overall: 3.5},
			})
			So(err, ShouldBeNil)
			_, err = f.svc.UpgradeFacility(ctx, model.TrainingCenter, model.FacilityUpgrade{Quality: 4})
			So(err, ShouldBeNil)

			for i := 0; i < 3; i++ {
				res, err := f.svc.AdvanceGameWeek(ctx)
				So(err, ShouldBeNil)
				So(res.Saved, ShouldBeTrue)
			}

			Convey("Then a fresh service sees the same game", func() {
				other := service.New(service.WithStore(f.store), service.WithClock(f.clock))
				_, err := other.Init(ctx, true)
				So(err, ShouldBeNil)

				So(other.GameState().GameWeek, ShouldEqual, 4)

				p, err := other.PlayerPromotion()
				So(err, ShouldBeNil)
				So(p.Finances.History, ShouldHaveLength, 4)
				So(p.Finances.VerifyLedger(), ShouldEqual, -1)
				So(p.Finances.Balance, ShouldEqual, 5000000-100000+3*100000)

				ic, err := other.ChampionshipByID(titles[1].ID)
				So(err, ShouldBeNil)
				So(ic.CurrentChampion.Name, ShouldEqual, "The Veteran")
				So(ic.Lineage, ShouldHaveLength, 1)
				So(ic.Lineage[0].DefenseCount, ShouldEqual, 2)

				world, err := other.ChampionshipByID(titles[0].ID)
				So(err, ShouldBeNil)
				So(world.CurrentChampion.DefenseCount, ShouldEqual, 5)

				e, err := other.EventByID(show.ID)
				So(err, ShouldBeNil)
				So(e.Status, ShouldEqual, model.EventCompleted)
				So(e.Attendance.PercentFull, ShouldEqual, 100)
			})
		})
	})
}
