package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/ringside/internal/domain/calendar"
)

// VacantName is the display name of a championship with no holder.
const VacantName = "Vacant"

// Championship is a title with its current holder and reign history.
type Championship struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Image             string             `json:"image"`
	Active            bool               `json:"active"`
	Inaugurated       string             `json:"inaugurated"`
	Prestige          int                `json:"prestige"`
	Description       string             `json:"description"`
	Type              TitleType          `json:"type"`
	CurrentChampion   Champion           `json:"currentChampion"`
	Lineage           []Reign            `json:"lineage"`
	ScheduledDefenses []ScheduledDefense `json:"scheduledDefenses"`
	Rules             TitleRules         `json:"rules"`
}

// TitleType classifies a championship.
type TitleType struct {
	Gender string `json:"gender"` // male, female, any
	Weight string `json:"weight"`
	Level  string `json:"level"` // main event, midcard, undercard
	Team   bool   `json:"team"`
}

func defaultTitleType() TitleType {
	return TitleType{Gender: "male", Weight: "heavyweight", Level: "midcard"}
}

func (t *TitleType) UnmarshalJSON(b []byte) error {
	type plain TitleType
	v := plain(defaultTitleType())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = TitleType(v)
	return nil
}

// Champion is the current holder. A nil WrestlerID with name "Vacant" means
// nobody holds the title; Name is a snapshot and may outlive the wrestler.
type Champion struct {
	WrestlerID   *string `json:"wrestlerId"`
	Name         string  `json:"name"`
	WonOn        *string `json:"wonOn"`
	DefenseCount int     `json:"defenseCount"`
}

func vacantChampion() Champion {
	return Champion{Name: VacantName}
}

func (c *Champion) UnmarshalJSON(b []byte) error {
	type plain Champion
	v := plain(vacantChampion())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Champion(v)
	return nil
}

// Reign is a concluded title reign.
type Reign struct {
	WrestlerID    string `json:"wrestlerId"`
	Name          string `json:"name"`
	WonOn         string `json:"wonOn"`
	LostOn        string `json:"lostOn"`
	DefenseCount  int    `json:"defenseCount"`
	ReignDays     int    `json:"reignDays"`
	Vacated       bool   `json:"vacated,omitempty"`
	VacatedReason string `json:"vacatedReason,omitempty"`
}

// ScheduledDefense is a booked future title match.
type ScheduledDefense struct {
	Date         string `json:"date"`
	ChallengerID string `json:"challengerId"`
	EventID      string `json:"eventId"`
}

// TitleRules hold booking policy. They are data only; nothing here enforces them.
type TitleRules struct {
	MinimumDefensePeriod  int      `json:"minimumDefensePeriod"`  // days
	VacateAfterInactivity int      `json:"vacateAfterInactivity"` // days
	ContenderRankings     []string `json:"contenderRankings"`
}

func defaultTitleRules() TitleRules {
	return TitleRules{MinimumDefensePeriod: 14, VacateAfterInactivity: 90}
}

func (r *TitleRules) UnmarshalJSON(b []byte) error {
	type plain TitleRules
	v := plain(defaultTitleRules())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = TitleRules(v)
	return nil
}

func defaultChampionship() *Championship {
	return &Championship{
		Name:            "New Championship",
		Image:           "default_title.png",
		Active:          true,
		Prestige:        50,
		Type:            defaultTitleType(),
		CurrentChampion: vacantChampion(),
		Rules:           defaultTitleRules(),
	}
}

// NewChampionship returns a vacant championship with defaults and a fresh id.
func NewChampionship(now time.Time) *Championship {
	c := defaultChampionship()
	c.fillDefaults(now)
	return c
}

// DecodeChampionship builds a championship from a partial JSON document.
func DecodeChampionship(data []byte, now time.Time) (*Championship, error) {
	c := defaultChampionship()
	if err := decode(data, c); err != nil {
		return nil, err
	}
	c.fillDefaults(now)
	return c, nil
}

func (c *Championship) fillDefaults(now time.Time) {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Inaugurated == "" {
		c.Inaugurated = timestamp(now)
	}
	c.Lineage = orEmpty(c.Lineage)
	c.ScheduledDefenses = orEmpty(c.ScheduledDefenses)
	c.Rules.ContenderRankings = orEmpty(c.Rules.ContenderRankings)
}

// Clone returns a deep copy.
func (c *Championship) Clone() *Championship { return clone(c) }

// IsVacant reports whether nobody holds the title.
func (c *Championship) IsVacant() bool {
	return c.CurrentChampion.WrestlerID == nil || *c.CurrentChampion.WrestlerID == ""
}

// TitleChange is returned by ChangeChampion.
type TitleChange struct {
	Message          string `json:"message"`
	ChampionshipID   string `json:"championshipId"`
	ChampionshipName string `json:"championshipName"`
	Date             string `json:"date"`
	EventName        string `json:"eventName"`
	PreviousChampion *Reign `json:"previousChampion"`
	NewChampionID    string `json:"newChampionId"`
	NewChampionName  string `json:"newChampionName"`
}

// Defense is returned by RecordDefense.
type Defense struct {
	Message      string `json:"message"`
	Date         string `json:"date"`
	ChampionID   string `json:"championId"`
	ChampionName string `json:"championName"`
	Opponent     string `json:"opponent"`
	EventName    string `json:"eventName"`
	DefenseCount int    `json:"defenseCount"`
}

// TitleVacated is returned by Vacate.
type TitleVacated struct {
	Message          string `json:"message"`
	ChampionshipID   string `json:"championshipId"`
	ChampionshipName string `json:"championshipName"`
	Date             string `json:"date"`
	Event            string `json:"event"`
	Reason           string `json:"reason"`
	FormerChampion   *Reign `json:"formerChampion"`
}

// ChangeChampion crowns a new holder. The outgoing reign, if any, is
// appended to the lineage before the current champion is overwritten.
func (c *Championship) ChangeChampion(wrestlerID, wrestlerName, date, eventName string) TitleChange {
	previous := c.concludeReign(date, "", false)

	c.CurrentChampion = Champion{
		WrestlerID:   strPtr(wrestlerID),
		Name:         wrestlerName,
		WonOn:        strPtr(date),
		DefenseCount: 0,
	}

	return TitleChange{
		Message:          fmt.Sprintf("%s is the new %s", wrestlerName, c.Name),
		ChampionshipID:   c.ID,
		ChampionshipName: c.Name,
		Date:             date,
		EventName:        eventName,
		PreviousChampion: previous,
		NewChampionID:    wrestlerID,
		NewChampionName:  wrestlerName,
	}
}

// RecordDefense counts a successful defense. A vacant title cannot be defended.
func (c *Championship) RecordDefense(date, opponent, eventName string) (*Defense, error) {
	if c.IsVacant() {
		return nil, fmt.Errorf("%w: %s", ErrTitleVacant, c.Name)
	}
	c.CurrentChampion.DefenseCount++

	return &Defense{
		Message:      fmt.Sprintf("%s retained the %s against %s", c.CurrentChampion.Name, c.Name, opponent),
		Date:         date,
		ChampionID:   *c.CurrentChampion.WrestlerID,
		ChampionName: c.CurrentChampion.Name,
		Opponent:     opponent,
		EventName:    eventName,
		DefenseCount: c.CurrentChampion.DefenseCount,
	}, nil
}

// Vacate strips the title from its holder and resets it to vacant.
func (c *Championship) Vacate(date, reason string) TitleVacated {
	former := c.concludeReign(date, reason, true)
	c.CurrentChampion = vacantChampion()

	return TitleVacated{
		Message:          fmt.Sprintf("%s has been vacated", c.Name),
		ChampionshipID:   c.ID,
		ChampionshipName: c.Name,
		Date:             date,
		Event:            "Title Vacated",
		Reason:           reason,
		FormerChampion:   former,
	}
}

// concludeReign snapshots the current holder into the lineage. It returns
// the appended entry, or nil when the title was vacant.
func (c *Championship) concludeReign(date, reason string, vacated bool) *Reign {
	if c.IsVacant() {
		return nil
	}
	wonOn := ""
	if c.CurrentChampion.WonOn != nil {
		wonOn = *c.CurrentChampion.WonOn
	}
	reign := Reign{
		WrestlerID:   *c.CurrentChampion.WrestlerID,
		Name:         c.CurrentChampion.Name,
		WonOn:        wonOn,
		LostOn:       date,
		DefenseCount: c.CurrentChampion.DefenseCount,
		ReignDays:    ReignDays(wonOn, date),
	}
	if vacated {
		reign.Vacated = true
		reign.VacatedReason = reason
	}
	c.Lineage = append(c.Lineage, reign)
	last := c.Lineage[len(c.Lineage)-1]
	return &last
}

// ReignDays is ceil(|end-start|) in days. Unparseable dates count as zero.
func ReignDays(start, end string) int {
	days, err := calendar.DaysBetween(start, end)
	if err != nil {
		return 0
	}
	return days
}

// ChampionshipPatch is a shallow partial update of a championship.
type ChampionshipPatch struct {
	Name              *string             `json:"name,omitempty"`
	Image             *string             `json:"image,omitempty"`
	Active            *bool               `json:"active,omitempty"`
	Inaugurated       *string             `json:"inaugurated,omitempty"`
	Prestige          *int                `json:"prestige,omitempty"`
	Description       *string             `json:"description,omitempty"`
	Type              *TitleType          `json:"type,omitempty"`
	CurrentChampion   *Champion           `json:"currentChampion,omitempty"`
	Lineage           *[]Reign            `json:"lineage,omitempty"`
	ScheduledDefenses *[]ScheduledDefense `json:"scheduledDefenses,omitempty"`
	Rules             *TitleRules         `json:"rules,omitempty"`
}

// Apply merges p into c. The id never changes.
func (c *Championship) Apply(p ChampionshipPatch, now time.Time) {
	setIf(&c.Name, p.Name)
	setIf(&c.Image, p.Image)
	setIf(&c.Active, p.Active)
	setIf(&c.Inaugurated, p.Inaugurated)
	setIf(&c.Prestige, p.Prestige)
	setIf(&c.Description, p.Description)
	setIf(&c.Type, p.Type)
	setIf(&c.CurrentChampion, p.CurrentChampion)
	setIf(&c.Lineage, p.Lineage)
	setIf(&c.ScheduledDefenses, p.ScheduledDefenses)
	setIf(&c.Rules, p.Rules)
	c.fillDefaults(now)
}
