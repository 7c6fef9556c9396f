package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/ringside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestEvent(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	convey.Convey("Given a new event", t, func() {
		e := model.NewEvent(now)

		convey.Convey("Then venue-dependent defaults are resolved", func() {
			convey.So(e.Status, convey.ShouldEqual, model.EventScheduled)
			convey.So(e.Attendance.Tickets.Available, convey.ShouldEqual, 1000)
			convey.So(e.Finances.Expenses.Venue, convey.ShouldEqual, 2000)
			convey.So(e.Card, convey.ShouldNotBeNil)
			convey.So(e.Card, convey.ShouldBeEmpty)
		})

		convey.Convey("When forecasting revenue", func() {
			convey.So(e.CalculateExpectedRevenue(), convey.ShouldAlmostEqual, 34000, 0.001)
		})

		convey.Convey("When adding matches", func() {
			first := e.AddMatch(model.MatchInput{})
			second := e.AddMatch(model.MatchInput{Title: "Main Event", Duration: 25})

			convey.Convey("Then they are ordered and defaulted", func() {
				convey.So(e.Card, convey.ShouldHaveLength, 2)
				convey.So(e.Card[0].ID, convey.ShouldEqual, first)
				convey.So(e.Card[0].ScheduledOrder, convey.ShouldEqual, 1)
				convey.So(e.Card[0].Title, convey.ShouldEqual, "Singles Match")
				convey.So(e.Card[0].Type, convey.ShouldEqual, "Singles")
				convey.So(e.Card[0].Duration, convey.ShouldEqual, 15)
				convey.So(e.Card[1].ID, convey.ShouldEqual, second)
				convey.So(e.Card[1].ScheduledOrder, convey.ShouldEqual, 2)
				convey.So(e.Card[1].Duration, convey.ShouldEqual, 25)
				convey.So(first, convey.ShouldNotEqual, second)
			})
		})

		convey.Convey("When finalizing with actual results", func() {
			out := e.FinalizeEvent(model.EventResults{
				Attendance: 856,
				Ratings:    &model.Ratings{Overall: 3.5, Crowd: 4, Critical: 3},
				Finances: &model.EventFinances{
					Revenue:  model.Revenue{Tickets: 20000, Total: 30000},
					Expenses: model.Expenses{Venue: 2000, Total: 12000},
				},
			})

			convey.Convey("Then attendance, ratings and profit are recorded", func() {
				convey.So(out, convey.ShouldEqual, e)
				convey.So(e.Status, convey.ShouldEqual, model.EventCompleted)
				convey.So(e.Attendance.Actual, convey.ShouldEqual, 856)
				convey.So(e.Attendance.PercentFull, convey.ShouldEqual, 86)
				convey.So(e.Ratings.Overall, convey.ShouldEqual, 3.5)
				convey.So(e.Ratings.MatchRatings, convey.ShouldNotBeNil)
				convey.So(e.Finances.Profit, convey.ShouldEqual, 18000)
			})

			convey.Convey("Then it can be finalized again", func() {
				e.FinalizeEvent(model.EventResults{Attendance: 1000})
				convey.So(e.Attendance.PercentFull, convey.ShouldEqual, 100)
				convey.So(e.Ratings.Overall, convey.ShouldEqual, 3.5)
			})
		})

		convey.Convey("When the venue has no capacity", func() {
			e.Venue.Capacity = 0
			e.FinalizeEvent(model.EventResults{Attendance: 10})
			convey.So(e.Attendance.PercentFull, convey.ShouldEqual, 0)
		})

		convey.Convey("When moving through the status machine", func() {
			convey.So(e.Start(), convey.ShouldBeNil)
			convey.So(e.Status, convey.ShouldEqual, model.EventInProgress)
			convey.So(errors.Is(e.Start(), model.ErrInvalidTransition), convey.ShouldBeTrue)
			convey.So(e.Cancel(), convey.ShouldBeNil)
			convey.So(e.Status, convey.ShouldEqual, model.EventCancelled)
			convey.So(errors.Is(e.Cancel(), model.ErrInvalidTransition), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a partial event document", t, func() {
		doc := []byte(`{"name":"Arena Night","venue":{"capacity":500,"cost":900},"attendance":{"ticketPrices":{"vip":250}}}`)

		convey.Convey("When decoding", func() {
			e, err := model.DecodeEvent(doc, now)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then omitted nested fields take defaults", func() {
				convey.So(e.Venue.Name, convey.ShouldEqual, "Local Arena")
				convey.So(e.Attendance.Tickets.Available, convey.ShouldEqual, 500)
				convey.So(e.Attendance.TicketPrices.General, convey.ShouldEqual, 20)
				convey.So(e.Attendance.TicketPrices.VIP, convey.ShouldEqual, 250)
				convey.So(e.Finances.Expenses.Venue, convey.ShouldEqual, 900)
				convey.So(e.RecurringPattern, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the document explicitly sets zero seats", func() {
			e, err := model.DecodeEvent([]byte(`{"attendance":{"tickets":{"available":0}}}`), now)
			convey.So(err, convey.ShouldBeNil)
			convey.So(e.Attendance.Tickets.Available, convey.ShouldEqual, 0)
		})
	})
}
