package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/ringside/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChampionship(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	Convey("Given a vacant championship", t, func() {
		c := model.NewChampionship(now)
		c.Name = "World Title"

		So(c.IsVacant(), ShouldBeTrue)
		So(c.CurrentChampion.Name, ShouldEqual, model.VacantName)

		Convey("When defending it", func() {
			d, err := c.RecordDefense("2024-01-02", "Anyone", "Weekly")

			Convey("Then it fails without changing anything", func() {
				So(d, ShouldBeNil)
				So(errors.Is(err, model.ErrTitleVacant), ShouldBeTrue)
				So(c.CurrentChampion.DefenseCount, ShouldEqual, 0)
			})
		})

		Convey("When vacating it", func() {
			v := c.Vacate("2024-01-02", "housekeeping")

			Convey("Then no reign is recorded", func() {
				So(v.FormerChampion, ShouldBeNil)
				So(c.Lineage, ShouldBeEmpty)
			})
		})

		Convey("When A wins it, defends twice, then loses to B", func() {
			first := c.ChangeChampion("A", "Alpha", "2024-01-01", "Week 1")
			So(first.PreviousChampion, ShouldBeNil)

			for i := 0; i < 2; i++ {
				_, err := c.RecordDefense("2024-01-15", "Gamma", "Week 3")
				So(err, ShouldBeNil)
			}
			change := c.ChangeChampion("B", "Bravo", "2024-01-31", "Rumble")

			Convey("Then the lineage holds A's reign", func() {
				So(c.Lineage, ShouldHaveLength, 1)
				So(c.Lineage[0], ShouldResemble, model.Reign{
					WrestlerID:   "A",
					Name:         "Alpha",
					WonOn:        "2024-01-01",
					LostOn:       "2024-01-31",
					DefenseCount: 2,
					ReignDays:    30,
				})
				So(*change.PreviousChampion, ShouldResemble, c.Lineage[0])
			})

			Convey("Then B holds it with a fresh count", func() {
				So(*c.CurrentChampion.WrestlerID, ShouldEqual, "B")
				So(*c.CurrentChampion.WonOn, ShouldEqual, "2024-01-31")
				So(c.CurrentChampion.DefenseCount, ShouldEqual, 0)
			})

			Convey("Then vacating records a vacated reign", func() {
				v := c.Vacate("2024-02-10", "injury")
				So(c.IsVacant(), ShouldBeTrue)
				So(c.CurrentChampion.WonOn, ShouldBeNil)
				So(c.Lineage, ShouldHaveLength, 2)
				So(c.Lineage[1].Vacated, ShouldBeTrue)
				So(c.Lineage[1].VacatedReason, ShouldEqual, "injury")
				So(c.Lineage[1].ReignDays, ShouldEqual, 10)
				So(v.FormerChampion.WrestlerID, ShouldEqual, "B")
				So(v.Event, ShouldEqual, "Title Vacated")
			})
		})

		Convey("When the title changes hands n times", func() {
			holders := []string{"A", "B", "C", "D"}
			for _, h := range holders {
				c.ChangeChampion(h, h, "2024-03-01", "Show")
			}

			Convey("Then the lineage has n-1 entries in order", func() {
				So(c.Lineage, ShouldHaveLength, len(holders)-1)
				for i, r := range c.Lineage {
					So(r.WrestlerID, ShouldEqual, holders[i])
				}
			})
		})
	})

	Convey("Given reign dates", t, func() {
		So(model.ReignDays("2024-01-01", "2024-01-31"), ShouldEqual, 30)
		So(model.ReignDays("2024-01-31", "2024-01-01"), ShouldEqual, 30)
		So(model.ReignDays("garbage", "2024-01-01"), ShouldEqual, 0)
	})

	Convey("Given a stored championship", t, func() {
		c := model.NewChampionship(now)
		c.ChangeChampion("A", "Alpha", "2024-01-01", "Week 1")

		Convey("When it is encoded and decoded", func() {
			raw, err := jsonMarshal(c)
			So(err, ShouldBeNil)
			back, err := model.DecodeChampionship(raw, now)
			So(err, ShouldBeNil)

			Convey("Then nothing is lost", func() {
				So(back, ShouldResemble, c)
			})
		})

		Convey("When patched", func() {
			id := c.ID
			name := "Renamed"
			c.Apply(model.ChampionshipPatch{Name: &name}, now)
			So(c.Name, ShouldEqual, "Renamed")
			So(c.ID, ShouldEqual, id)
			So(*c.CurrentChampion.WrestlerID, ShouldEqual, "A")
		})
	})
}
