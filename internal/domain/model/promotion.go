package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Promotion is a wrestling company: its audience, schedule, media deals,
// books, roster accounting, staff and facilities.
type Promotion struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortName        string           `json:"shortName"`
	Logo             string           `json:"logo"`
	Founded          string           `json:"founded"`
	IsPlayerOwned    bool             `json:"isPlayerOwned"`
	Details          Details          `json:"details"`
	Reputation       Reputation       `json:"reputation"`
	FanBase          FanBase          `json:"fanBase"`
	Shows            Shows            `json:"shows"`
	Broadcasting     Broadcasting     `json:"broadcasting"`
	Finances         Finances         `json:"finances"`
	RosterManagement RosterManagement `json:"rosterManagement"`
	Championships    []string         `json:"championships"`
	Storylines       []string         `json:"storylines"`
	Relationships    Relationships    `json:"relationships"`
	Staff            Staff            `json:"staff"`
	Policies         Policies         `json:"policies"`
	Facilities       Facilities       `json:"facilities"`
	History          History          `json:"history"`
}

// Details describe the company.
type Details struct {
	Owner               string `json:"owner"`
	HeadquartersCity    string `json:"headquartersCity"`
	HeadquartersCountry string `json:"headquartersCountry"`
	Website             string `json:"website"`
	Slogan              string `json:"slogan"`
	Description         string `json:"description"`
}

func defaultDetails() Details {
	return Details{
		Owner:               "Player Name",
		HeadquartersCity:    "City",
		HeadquartersCountry: "Country",
		Website:             "www.promotion.com",
		Slogan:              "Wrestling for everyone!",
	}
}

func (d *Details) UnmarshalJSON(b []byte) error {
	type plain Details
	v := plain(defaultDetails())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = Details(v)
	return nil
}

// Reputation holds 0-100 market scores.
type Reputation struct {
	Overall             int `json:"overall"`
	LocalMarket         int `json:"localMarket"`
	NationalMarket      int `json:"nationalMarket"`
	InternationalMarket int `json:"internationalMarket"`
	IndustryPrestige    int `json:"industryPrestige"`
}

func defaultReputation() Reputation {
	return Reputation{
		Overall:             50,
		LocalMarket:         60,
		NationalMarket:      40,
		InternationalMarket: 20,
		IndustryPrestige:    30,
	}
}

func (r *Reputation) UnmarshalJSON(b []byte) error {
	type plain Reputation
	v := plain(defaultReputation())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Reputation(v)
	return nil
}

// FanBase is the audience. Demographic figures are percentages.
type FanBase struct {
	Total              int64        `json:"total"`
	Loyalty            int          `json:"loyalty"`
	Demographics       Demographics `json:"demographics"`
	Growth             float64      `json:"growth"`
	SatisfactionRating int          `json:"satisfactionRating"`
}

// Demographics splits the audience.
type Demographics struct {
	Casual    int         `json:"casual"`
	Hardcore  int         `json:"hardcore"`
	Lapsed    int         `json:"lapsed"`
	AgeGroups AgeGroups   `json:"ageGroups"`
	Gender    GenderSplit `json:"gender"`
}

// AgeGroups splits the audience by age.
type AgeGroups struct {
	Under18   int `json:"under18"`
	Age18to34 int `json:"age18to34"`
	Age35to50 int `json:"age35to50"`
	Over50    int `json:"over50"`
}

// GenderSplit splits the audience by gender.
type GenderSplit struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Other  int `json:"other"`
}

func defaultAgeGroups() AgeGroups {
	return AgeGroups{Under18: 15, Age18to34: 45, Age35to50: 30, Over50: 10}
}

func defaultGenderSplit() GenderSplit {
	return GenderSplit{Male: 70, Female: 25, Other: 5}
}

func defaultDemographics() Demographics {
	return Demographics{
		Casual:    60,
		Hardcore:  30,
		Lapsed:    10,
		AgeGroups: defaultAgeGroups(),
		Gender:    defaultGenderSplit(),
	}
}

func defaultFanBase() FanBase {
	return FanBase{
		Total:              10000,
		Loyalty:            60,
		Demographics:       defaultDemographics(),
		SatisfactionRating: 70,
	}
}

func (a *AgeGroups) UnmarshalJSON(b []byte) error {
	type plain AgeGroups
	v := plain(defaultAgeGroups())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = AgeGroups(v)
	return nil
}

func (g *GenderSplit) UnmarshalJSON(b []byte) error {
	type plain GenderSplit
	v := plain(defaultGenderSplit())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*g = GenderSplit(v)
	return nil
}

func (d *Demographics) UnmarshalJSON(b []byte) error {
	type plain Demographics
	v := plain(defaultDemographics())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = Demographics(v)
	return nil
}

func (f *FanBase) UnmarshalJSON(b []byte) error {
	type plain FanBase
	v := plain(defaultFanBase())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FanBase(v)
	return nil
}

// Broadcasting covers TV, streaming and social reach.
type Broadcasting struct {
	TVDeals            []MediaDeal `json:"tvDeals"`
	StreamingPlatforms []MediaDeal `json:"streamingPlatforms"`
	SocialMedia        SocialMedia `json:"socialMedia"`
}

// SocialMedia is the company's online following. Engagement is a percentage.
type SocialMedia struct {
	Followers  int64    `json:"followers"`
	Engagement float64  `json:"engagement"`
	Platforms  []string `json:"platforms"`
}

func defaultSocialMedia() SocialMedia {
	return SocialMedia{Followers: 50000, Engagement: 5}
}

func (s *SocialMedia) UnmarshalJSON(b []byte) error {
	type plain SocialMedia
	v := plain(defaultSocialMedia())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = SocialMedia(v)
	return nil
}

func (br *Broadcasting) UnmarshalJSON(b []byte) error {
	type plain Broadcasting
	v := plain(Broadcasting{SocialMedia: defaultSocialMedia()})
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*br = Broadcasting(v)
	return nil
}

// RosterManagement is incrementally maintained by AddWrestler and
// RemoveWrestler. ReconcileRoster recomputes it from a member list.
type RosterManagement struct {
	MaxSize               int      `json:"maxSize"`
	CurrentSize           int      `json:"currentSize"`
	SalaryBudget          int64    `json:"salaryBudget"`
	CurrentSalaries       int64    `json:"currentSalaries"`
	ContractsExpiringSoon []string `json:"contractsExpiringSoon"`
}

func defaultRosterManagement() RosterManagement {
	return RosterManagement{MaxSize: 30, SalaryBudget: 100000}
}

func (r *RosterManagement) UnmarshalJSON(b []byte) error {
	type plain RosterManagement
	v := plain(defaultRosterManagement())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = RosterManagement(v)
	return nil
}

// Relationships with other promotions.
type Relationships struct {
	Allies          []string `json:"allies"`
	Rivals          []string `json:"rivals"`
	TalentExchanges []string `json:"talentExchanges"`
}

// Policies set the company's creative and welfare rules.
type Policies struct {
	MatchStyle        string `json:"matchStyle"`
	ContentRating     string `json:"contentRating"`
	DrugTesting       string `json:"drugTesting"`
	InjuryProtocol    string `json:"injuryProtocol"`
	TalentDevelopment string `json:"talentDevelopment"`
}

func defaultPolicies() Policies {
	return Policies{
		MatchStyle:        "Balanced",
		ContentRating:     "PG-13",
		DrugTesting:       "Standard",
		InjuryProtocol:    "Cautious",
		TalentDevelopment: "Moderate",
	}
}

func (p *Policies) UnmarshalJSON(b []byte) error {
	type plain Policies
	v := plain(defaultPolicies())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Policies(v)
	return nil
}

// History is the company's record book.
type History struct {
	FoundedDate   string   `json:"foundedDate"`
	MajorEvents   []string `json:"majorEvents"`
	HallOfFame    []string `json:"hallOfFame"`
	Championships []string `json:"championships"`
}

func defaultPromotion() *Promotion {
	return &Promotion{
		Name:             "New Wrestling Promotion",
		ShortName:        "NWP",
		Logo:             "default_logo.png",
		IsPlayerOwned:    true,
		Details:          defaultDetails(),
		Reputation:       defaultReputation(),
		FanBase:          defaultFanBase(),
		Broadcasting:     Broadcasting{SocialMedia: defaultSocialMedia()},
		Finances:         defaultFinances(),
		RosterManagement: defaultRosterManagement(),
		Policies:         defaultPolicies(),
		Facilities:       defaultFacilities(),
	}
}

// NewPromotion returns a promotion with defaults and a fresh id.
func NewPromotion(now time.Time) *Promotion {
	p := defaultPromotion()
	p.fillDefaults(now)
	return p
}

// DecodePromotion builds a promotion from a partial JSON document.
func DecodePromotion(data []byte, now time.Time) (*Promotion, error) {
	p := defaultPromotion()
	if err := decode(data, p); err != nil {
		return nil, err
	}
	p.fillDefaults(now)
	return p, nil
}

func (p *Promotion) fillDefaults(now time.Time) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Founded == "" {
		p.Founded = timestamp(now)
	}
	if p.History.FoundedDate == "" {
		p.History.FoundedDate = timestamp(now)
	}
	p.History.MajorEvents = orEmpty(p.History.MajorEvents)
	p.History.HallOfFame = orEmpty(p.History.HallOfFame)
	p.History.Championships = orEmpty(p.History.Championships)

	p.Shows.Weekly = orEmpty(p.Shows.Weekly)
	p.Shows.Monthly = orEmpty(p.Shows.Monthly)
	p.Shows.Annual = orEmpty(p.Shows.Annual)

	p.Broadcasting.TVDeals = orEmpty(p.Broadcasting.TVDeals)
	p.Broadcasting.StreamingPlatforms = orEmpty(p.Broadcasting.StreamingPlatforms)
	p.Broadcasting.SocialMedia.Platforms = orEmpty(p.Broadcasting.SocialMedia.Platforms)
	for _, deals := range [][]MediaDeal{p.Broadcasting.TVDeals, p.Broadcasting.StreamingPlatforms} {
		for i := range deals {
			deals[i].Requirements.ContentRestrictions = orEmpty(deals[i].Requirements.ContentRestrictions)
		}
	}

	p.Finances.History = orEmpty(p.Finances.History)
	p.RosterManagement.ContractsExpiringSoon = orEmpty(p.RosterManagement.ContractsExpiringSoon)
	p.Championships = orEmpty(p.Championships)
	p.Storylines = orEmpty(p.Storylines)
	p.Relationships.Allies = orEmpty(p.Relationships.Allies)
	p.Relationships.Rivals = orEmpty(p.Relationships.Rivals)
	p.Relationships.TalentExchanges = orEmpty(p.Relationships.TalentExchanges)
	p.Staff.Bookers = orEmpty(p.Staff.Bookers)
	p.Staff.Scouts = orEmpty(p.Staff.Scouts)
	p.Staff.Trainers = orEmpty(p.Staff.Trainers)
	p.Staff.Producers = orEmpty(p.Staff.Producers)
}

// Clone returns a deep copy.
func (p *Promotion) Clone() *Promotion { return clone(p) }

// RosterChange is returned by AddWrestler and RemoveWrestler.
type RosterChange struct {
	Message           string `json:"message"`
	CurrentRosterSize int    `json:"currentRosterSize"`
	RemainingCapacity int    `json:"remainingCapacity"`
	CurrentSalaries   int64  `json:"currentSalaries"`
}

// AddWrestler counts w toward roster size and payroll. Capacity is reported,
// not enforced.
func (p *Promotion) AddWrestler(w *Wrestler) RosterChange {
	p.RosterManagement.CurrentSize++
	p.RosterManagement.CurrentSalaries += w.Contract.Salary
	return p.rosterChange(fmt.Sprintf("%s has been added to the roster", w.Name))
}

// RemoveWrestler takes w out of roster size and payroll.
func (p *Promotion) RemoveWrestler(w *Wrestler) (RosterChange, error) {
	if p.RosterManagement.CurrentSize <= 0 {
		return RosterChange{}, ErrRosterEmpty
	}
	p.RosterManagement.CurrentSize--
	p.RosterManagement.CurrentSalaries -= w.Contract.Salary
	return p.rosterChange(fmt.Sprintf("%s has been removed from the roster", w.Name)), nil
}

func (p *Promotion) rosterChange(msg string) RosterChange {
	rm := p.RosterManagement
	return RosterChange{
		Message:           msg,
		CurrentRosterSize: rm.CurrentSize,
		RemainingCapacity: rm.MaxSize - rm.CurrentSize,
		CurrentSalaries:   rm.CurrentSalaries,
	}
}

// RosterDrift reports what ReconcileRoster corrected.
type RosterDrift struct {
	Message        string `json:"message"`
	Drifted        bool   `json:"drifted"`
	SizeBefore     int    `json:"sizeBefore"`
	SizeAfter      int    `json:"sizeAfter"`
	SalariesBefore int64  `json:"salariesBefore"`
	SalariesAfter  int64  `json:"salariesAfter"`
}

// ReconcileRoster recomputes roster size and payroll from members.
func (p *Promotion) ReconcileRoster(members []*Wrestler) RosterDrift {
	var size int
	var salaries int64
	for _, w := range members {
		size++
		salaries += w.Contract.Salary
	}
	d := RosterDrift{
		SizeBefore:     p.RosterManagement.CurrentSize,
		SizeAfter:      size,
		SalariesBefore: p.RosterManagement.CurrentSalaries,
		SalariesAfter:  salaries,
	}
	d.Drifted = d.SizeBefore != d.SizeAfter || d.SalariesBefore != d.SalariesAfter
	p.RosterManagement.CurrentSize = size
	p.RosterManagement.CurrentSalaries = salaries
	d.Message = "roster accounting is consistent"
	if d.Drifted {
		d.Message = fmt.Sprintf("roster accounting corrected: size %d -> %d, salaries %d -> %d",
			d.SizeBefore, d.SizeAfter, d.SalariesBefore, d.SalariesAfter)
	}
	return d
}

// PromotionPatch is a shallow partial update of a promotion.
type PromotionPatch struct {
	Name             *string           `json:"name,omitempty"`
	ShortName        *string           `json:"shortName,omitempty"`
	Logo             *string           `json:"logo,omitempty"`
	Founded          *string           `json:"founded,omitempty"`
	IsPlayerOwned    *bool             `json:"isPlayerOwned,omitempty"`
	Details          *Details          `json:"details,omitempty"`
	Reputation       *Reputation       `json:"reputation,omitempty"`
	FanBase          *FanBase          `json:"fanBase,omitempty"`
	Shows            *Shows            `json:"shows,omitempty"`
	Broadcasting     *Broadcasting     `json:"broadcasting,omitempty"`
	Finances         *Finances         `json:"finances,omitempty"`
	RosterManagement *RosterManagement `json:"rosterManagement,omitempty"`
	Championships    *[]string         `json:"championships,omitempty"`
	Storylines       *[]string         `json:"storylines,omitempty"`
	Relationships    *Relationships    `json:"relationships,omitempty"`
	Staff            *Staff            `json:"staff,omitempty"`
	Policies         *Policies         `json:"policies,omitempty"`
	Facilities       *Facilities       `json:"facilities,omitempty"`
	History          *History          `json:"history,omitempty"`
}

// Apply merges patch into p. The id never changes.
func (p *Promotion) Apply(patch PromotionPatch, now time.Time) {
	setIf(&p.Name, patch.Name)
	setIf(&p.ShortName, patch.ShortName)
	setIf(&p.Logo, patch.Logo)
	setIf(&p.Founded, patch.Founded)
	setIf(&p.IsPlayerOwned, patch.IsPlayerOwned)
	setIf(&p.Details, patch.Details)
	setIf(&p.Reputation, patch.Reputation)
	setIf(&p.FanBase, patch.FanBase)
	setIf(&p.Shows, patch.Shows)
	setIf(&p.Broadcasting, patch.Broadcasting)
	setIf(&p.Finances, patch.Finances)
	setIf(&p.RosterManagement, patch.RosterManagement)
	setIf(&p.Championships, patch.Championships)
	setIf(&p.Storylines, patch.Storylines)
	setIf(&p.Relationships, patch.Relationships)
	setIf(&p.Staff, patch.Staff)
	setIf(&p.Policies, patch.Policies)
	setIf(&p.Facilities, patch.Facilities)
	setIf(&p.History, patch.History)
	p.fillDefaults(now)
}
