package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// EventType classifies a show.
type EventType string

const (
	EventWeeklyShow EventType = "Weekly Show"
	EventPayPerView EventType = "Pay-Per-View"
	EventSpecial    EventType = "Special"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventScheduled  EventStatus = "Scheduled"
	EventInProgress EventStatus = "In Progress"
	EventCompleted  EventStatus = "Completed"
	EventCancelled  EventStatus = "Cancelled"
)

// Ticket mix used for revenue forecasts.
const (
	shareGeneral = 0.7
	sharePremium = 0.2
	shareVIP     = 0.1
)

// Event is a single show with its card, attendance and books.
type Event struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Date                 string        `json:"date"`
	Type                 EventType     `json:"type"`
	Status               EventStatus   `json:"status"`
	IsRecurring          bool          `json:"isRecurring"`
	RecurringPattern     *string       `json:"recurringPattern"`
	Venue                Venue         `json:"venue"`
	Attendance           Attendance    `json:"attendance"`
	Card                 []Match       `json:"card"`
	Ratings              Ratings       `json:"ratings"`
	Finances             EventFinances `json:"finances"`
	StorylineProgression []string      `json:"storylineProgression"`
	Marketing            Marketing     `json:"marketing"`
	Notes                string        `json:"notes"`
}

// Venue is where an event takes place.
type Venue struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Capacity int    `json:"capacity"`
	Cost     int64  `json:"cost"`
}

func defaultVenue() Venue {
	return Venue{
		Name:     "Local Arena",
		City:     "City",
		State:    "State",
		Country:  "Country",
		Capacity: 1000,
		Cost:     2000,
	}
}

func (v *Venue) UnmarshalJSON(b []byte) error {
	type plain Venue
	p := plain(defaultVenue())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*v = Venue(p)
	return nil
}

// Attendance covers tickets and crowd size.
type Attendance struct {
	Tickets      Tickets      `json:"tickets"`
	TicketPrices TicketPrices `json:"ticketPrices"`
	Forecasted   int          `json:"forecasted"`
	Actual       int          `json:"actual"`
	PercentFull  int          `json:"percentFull"`
}

// Tickets counts inventory. Available defaults to the venue capacity.
type Tickets struct {
	Available int `json:"available"`
	Sold      int `json:"sold"`
	Comped    int `json:"comped"`
}

func (t *Tickets) UnmarshalJSON(b []byte) error {
	type plain Tickets
	p := plain(Tickets{Available: unset})
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = Tickets(p)
	return nil
}

// TicketPrices are per-tier prices.
type TicketPrices struct {
	General int64 `json:"general"`
	Premium int64 `json:"premium"`
	VIP     int64 `json:"vip"`
}

func defaultTicketPrices() TicketPrices {
	return TicketPrices{General: 20, Premium: 50, VIP: 100}
}

func (t *TicketPrices) UnmarshalJSON(b []byte) error {
	type plain TicketPrices
	p := plain(defaultTicketPrices())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = TicketPrices(p)
	return nil
}

func defaultAttendance() Attendance {
	return Attendance{
		Tickets:      Tickets{Available: unset},
		TicketPrices: defaultTicketPrices(),
	}
}

func (a *Attendance) UnmarshalJSON(b []byte) error {
	type plain Attendance
	p := plain(defaultAttendance())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Attendance(p)
	return nil
}

// Participant is a wrestler booked in a match, with a name snapshot.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Match is one entry on an event card.
type Match struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Type           string        `json:"type"`
	Participants   []Participant `json:"participants"`
	Stipulation    string        `json:"stipulation"`
	Championship   *string       `json:"championship"`
	Duration       int           `json:"duration"` // minutes
	ScheduledOrder int           `json:"scheduledOrder"`
	BookedOutcome  *string       `json:"bookedOutcome"`
	ActualOutcome  *string       `json:"actualOutcome"`
	Rating         float64       `json:"rating"`
	Notes          string        `json:"notes"`
}

// MatchInput is the booking request for AddMatch.
type MatchInput struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title,omitempty"`
	Type          string        `json:"type,omitempty"`
	Participants  []Participant `json:"participants,omitempty"`
	Stipulation   string        `json:"stipulation,omitempty"`
	Championship  *string       `json:"championship,omitempty"`
	Duration      int           `json:"duration,omitempty"`
	BookedOutcome *string       `json:"bookedOutcome,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// Ratings are star ratings (0-5) for the show and its matches.
type Ratings struct {
	Overall      float64       `json:"overall"`
	Crowd        float64       `json:"crowd"`
	Critical     float64       `json:"critical"`
	MatchRatings []MatchRating `json:"matchRatings"`
}

// MatchRating rates one match of the card.
type MatchRating struct {
	MatchID string  `json:"matchId"`
	Rating  float64 `json:"rating"`
}

// EventFinances is the event's own income statement.
type EventFinances struct {
	Revenue  Revenue  `json:"revenue"`
	Expenses Expenses `json:"expenses"`
	Profit   int64    `json:"profit"`
}

func (f *EventFinances) UnmarshalJSON(b []byte) error {
	type plain EventFinances
	p := plain(EventFinances{Expenses: Expenses{Venue: unset}})
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = EventFinances(p)
	return nil
}

// Revenue breakdown.
type Revenue struct {
	Tickets      int64 `json:"tickets"`
	Merchandise  int64 `json:"merchandise"`
	Sponsorships int64 `json:"sponsorships"`
	Broadcasting int64 `json:"broadcasting"`
	Total        int64 `json:"total"`
}

// Expenses breakdown. Venue defaults to the venue cost.
type Expenses struct {
	Venue      int64 `json:"venue"`
	Production int64 `json:"production"`
	Talent     int64 `json:"talent"`
	Marketing  int64 `json:"marketing"`
	Misc       int64 `json:"misc"`
	Total      int64 `json:"total"`
}

func (e *Expenses) UnmarshalJSON(b []byte) error {
	type plain Expenses
	p := plain(Expenses{Venue: unset})
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = Expenses(p)
	return nil
}

// Marketing is the promotional push behind an event.
type Marketing struct {
	Budget             int64    `json:"budget"`
	SocialMediaReach   int64    `json:"socialMediaReach"`
	Promos             []string `json:"promos"`
	SpecialAttractions []string `json:"specialAttractions"`
}

func defaultEvent() *Event {
	return &Event{
		Name:       "New Event",
		Type:       EventWeeklyShow,
		Status:     EventScheduled,
		Venue:      defaultVenue(),
		Attendance: defaultAttendance(),
		Finances:   EventFinances{Expenses: Expenses{Venue: unset}},
	}
}

// NewEvent returns a scheduled event with defaults and a fresh id.
func NewEvent(now time.Time) *Event {
	e := defaultEvent()
	e.fillDefaults(now)
	return e
}

// DecodeEvent builds an event from a partial JSON document.
func DecodeEvent(data []byte, now time.Time) (*Event, error) {
	e := defaultEvent()
	if err := decode(data, e); err != nil {
		return nil, err
	}
	e.fillDefaults(now)
	return e, nil
}

func (e *Event) fillDefaults(now time.Time) {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Date == "" {
		e.Date = timestamp(now)
	}
	if e.Attendance.Tickets.Available == unset {
		e.Attendance.Tickets.Available = e.Venue.Capacity
	}
	if e.Finances.Expenses.Venue == unset {
		e.Finances.Expenses.Venue = e.Venue.Cost
	}
	e.Card = orEmpty(e.Card)
	for i := range e.Card {
		e.Card[i].Participants = orEmpty(e.Card[i].Participants)
	}
	e.Ratings.MatchRatings = orEmpty(e.Ratings.MatchRatings)
	e.StorylineProgression = orEmpty(e.StorylineProgression)
	e.Marketing.Promos = orEmpty(e.Marketing.Promos)
	e.Marketing.SpecialAttractions = orEmpty(e.Marketing.SpecialAttractions)
}

// Clone returns a deep copy.
func (e *Event) Clone() *Event { return clone(e) }

// AddMatch appends a match to the end of the card and returns its id.
func (e *Event) AddMatch(in MatchInput) string {
	m := Match{
		ID:             in.ID,
		Title:          in.Title,
		Type:           in.Type,
		Participants:   orEmpty(in.Participants),
		Stipulation:    in.Stipulation,
		Championship:   in.Championship,
		Duration:       in.Duration,
		ScheduledOrder: len(e.Card) + 1,
		BookedOutcome:  in.BookedOutcome,
		Notes:          in.Notes,
	}
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Title == "" {
		m.Title = "Singles Match"
	}
	if m.Type == "" {
		m.Type = "Singles"
	}
	if m.Duration == 0 {
		m.Duration = 15
	}
	e.Card = append(e.Card, m)
	return m.ID
}

// CalculateExpectedRevenue forecasts ticket revenue from a 70/20/10 tier mix
// of the available seats.
func (e *Event) CalculateExpectedRevenue() float64 {
	seats := float64(e.Attendance.Tickets.Available)
	p := e.Attendance.TicketPrices
	return seats*shareGeneral*float64(p.General) +
		seats*sharePremium*float64(p.Premium) +
		seats*shareVIP*float64(p.VIP)
}

// Start moves a scheduled event to In Progress.
func (e *Event) Start() error {
	if e.Status != EventScheduled {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.Status, EventInProgress)
	}
	e.Status = EventInProgress
	return nil
}

// Cancel calls off an event that has not finished.
func (e *Event) Cancel() error {
	if e.Status == EventCompleted || e.Status == EventCancelled {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.Status, EventCancelled)
	}
	e.Status = EventCancelled
	return nil
}

// EventResults carries the actual numbers of a finished event. Nil ratings
// or finances keep the booked values.
type EventResults struct {
	Attendance int            `json:"attendance"`
	Ratings    *Ratings       `json:"ratings,omitempty"`
	Finances   *EventFinances `json:"finances,omitempty"`
}

// FinalizeEvent marks the event Completed and overwrites attendance,
// ratings and finances with actuals. It does not guard against being
// called twice.
func (e *Event) FinalizeEvent(r EventResults) *Event {
	e.Status = EventCompleted

	e.Attendance.Actual = r.Attendance
	e.Attendance.PercentFull = 0
	if e.Venue.Capacity > 0 {
		e.Attendance.PercentFull = int(math.Round(float64(r.Attendance) / float64(e.Venue.Capacity) * 100))
	}

	if r.Ratings != nil {
		e.Ratings = *r.Ratings
	}
	if r.Finances != nil {
		e.Finances = *r.Finances
	}
	e.Finances.Profit = e.Finances.Revenue.Total - e.Finances.Expenses.Total
	e.fillDefaults(time.Time{})
	return e
}

// EventPatch is a shallow partial update of an event.
type EventPatch struct {
	Name                 *string        `json:"name,omitempty"`
	Date                 *string        `json:"date,omitempty"`
	Type                 *EventType     `json:"type,omitempty"`
	Status               *EventStatus   `json:"status,omitempty"`
	IsRecurring          *bool          `json:"isRecurring,omitempty"`
	RecurringPattern     *string        `json:"recurringPattern,omitempty"`
	Venue                *Venue         `json:"venue,omitempty"`
	Attendance           *Attendance    `json:"attendance,omitempty"`
	Card                 *[]Match       `json:"card,omitempty"`
	Ratings              *Ratings       `json:"ratings,omitempty"`
	Finances             *EventFinances `json:"finances,omitempty"`
	StorylineProgression *[]string      `json:"storylineProgression,omitempty"`
	Marketing            *Marketing     `json:"marketing,omitempty"`
	Notes                *string        `json:"notes,omitempty"`
}

// Apply merges p into e. The id never changes.
func (e *Event) Apply(p EventPatch, now time.Time) {
	setIf(&e.Name, p.Name)
	setIf(&e.Date, p.Date)
	setIf(&e.Type, p.Type)
	setIf(&e.Status, p.Status)
	setIf(&e.IsRecurring, p.IsRecurring)
	if p.RecurringPattern != nil {
		e.RecurringPattern = p.RecurringPattern
	}
	setIf(&e.Venue, p.Venue)
	setIf(&e.Attendance, p.Attendance)
	setIf(&e.Card, p.Card)
	setIf(&e.Ratings, p.Ratings)
	setIf(&e.Finances, p.Finances)
	setIf(&e.StorylineProgression, p.StorylineProgression)
	setIf(&e.Marketing, p.Marketing)
	setIf(&e.Notes, p.Notes)
	e.fillDefaults(now)
}
