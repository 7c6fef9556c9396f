package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ShowKind is the cadence a show is scheduled under.
type ShowKind string

const (
	ShowWeekly  ShowKind = "weekly"
	ShowMonthly ShowKind = "monthly"
	ShowAnnual  ShowKind = "annual"
)

// Shows are the company's recurring programs grouped by cadence.
type Shows struct {
	Weekly  []Show `json:"weekly"`
	Monthly []Show `json:"monthly"`
	Annual  []Show `json:"annual"`
}

func (s *Shows) list(kind ShowKind) (*[]Show, error) {
	switch kind {
	case ShowWeekly:
		return &s.Weekly, nil
	case ShowMonthly:
		return &s.Monthly, nil
	case ShowAnnual:
		return &s.Annual, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidShowType, kind)
}

// Show is a recurring program. Duration is in minutes.
type Show struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Day              string  `json:"day"`
	Time             string  `json:"time"`
	Duration         int     `json:"duration"`
	Venue            string  `json:"venue"`
	BroadcastPartner *string `json:"broadcastPartner"`
	IsActive         bool    `json:"isActive"`
}

// ShowInput describes a show to schedule. Zero fields take defaults.
type ShowInput struct {
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name,omitempty"`
	Day              string  `json:"day,omitempty"`
	Time             string  `json:"time,omitempty"`
	Duration         int     `json:"duration,omitempty"`
	Venue            string  `json:"venue,omitempty"`
	BroadcastPartner *string `json:"broadcastPartner,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
}

// ShowScheduled is returned by ScheduleShow.
type ShowScheduled struct {
	Message string `json:"message"`
	ShowID  string `json:"showId"`
}

// ShowCancelled is returned by CancelShow.
type ShowCancelled struct {
	Message string `json:"message"`
	Show    Show   `json:"show"`
}

// ScheduleShow adds a show under kind.
func (p *Promotion) ScheduleShow(kind ShowKind, in ShowInput) (ShowScheduled, error) {
	list, err := p.Shows.list(kind)
	if err != nil {
		return ShowScheduled{}, err
	}
	show := Show{
		ID:               in.ID,
		Name:             in.Name,
		Day:              in.Day,
		Time:             in.Time,
		Duration:         in.Duration,
		Venue:            in.Venue,
		BroadcastPartner: in.BroadcastPartner,
		IsActive:         true,
	}
	if show.ID == "" {
		show.ID = newID()
	}
	if show.Name == "" {
		show.Name = "New Show"
	}
	if show.Day == "" {
		show.Day = "Monday"
	}
	if show.Time == "" {
		show.Time = "20:00"
	}
	if show.Duration == 0 {
		show.Duration = 120
	}
	if show.Venue == "" {
		show.Venue = "Regular Arena"
	}
	if in.IsActive != nil {
		show.IsActive = *in.IsActive
	}
	*list = append(*list, show)

	return ShowScheduled{
		Message: fmt.Sprintf("%s has been scheduled as a %s show", show.Name, kind),
		ShowID:  show.ID,
	}, nil
}

// CancelShow marks a show inactive. The show stays on the schedule.
func (p *Promotion) CancelShow(kind ShowKind, id string) (ShowCancelled, error) {
	list, err := p.Shows.list(kind)
	if err != nil {
		return ShowCancelled{}, err
	}
	for i := range *list {
		show := &(*list)[i]
		if show.ID != id {
			continue
		}
		show.IsActive = false
		return ShowCancelled{
			Message: fmt.Sprintf("%s has been cancelled", show.Name),
			Show:    *show,
		}, nil
	}
	return ShowCancelled{}, fmt.Errorf("%w: %s", ErrShowNotFound, id)
}

// StaffRole names a staff department.
type StaffRole string

const (
	RoleBookers   StaffRole = "bookers"
	RoleScouts    StaffRole = "scouts"
	RoleTrainers  StaffRole = "trainers"
	RoleProducers StaffRole = "producers"
)

// Staff are the company's employees by department.
type Staff struct {
	Bookers   []StaffMember `json:"bookers"`
	Scouts    []StaffMember `json:"scouts"`
	Trainers  []StaffMember `json:"trainers"`
	Producers []StaffMember `json:"producers"`
}

func (s *Staff) department(role StaffRole) (*[]StaffMember, error) {
	switch role {
	case RoleBookers:
		return &s.Bookers, nil
	case RoleScouts:
		return &s.Scouts, nil
	case RoleTrainers:
		return &s.Trainers, nil
	case RoleProducers:
		return &s.Producers, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStaffRole, role)
}

// StaffMember is an employee. Salary is weekly.
type StaffMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Skill     int    `json:"skill"`
	Salary    int64  `json:"salary"`
	Hired     string `json:"hired"`
}

// StaffChange is returned by AddStaffMember and RemoveStaffMember.
type StaffChange struct {
	Message     string      `json:"message"`
	StaffMember StaffMember `json:"staffMember"`
}

// AddStaffMember hires in under role and adds the salary to weekly expenses.
func (p *Promotion) AddStaffMember(role StaffRole, in StaffMember, now time.Time) (StaffChange, error) {
	dept, err := p.Staff.department(role)
	if err != nil {
		return StaffChange{}, err
	}
	m := in
	if m.ID == "" {
		m.ID = newID()
	}
	if m.Name == "" {
		m.Name = "New Staff Member"
	}
	if m.Skill == 0 {
		m.Skill = 70
	}
	if m.Salary == 0 {
		m.Salary = 1000
	}
	if m.Hired == "" {
		m.Hired = timestamp(now)
	}
	*dept = append(*dept, m)
	p.Finances.WeeklyExpenses += m.Salary

	return StaffChange{
		Message:     fmt.Sprintf("%s has been hired as a %s", m.Name, singular(role)),
		StaffMember: m,
	}, nil
}

// RemoveStaffMember lets go of an employee and drops the salary from weekly expenses.
func (p *Promotion) RemoveStaffMember(role StaffRole, id string) (StaffChange, error) {
	dept, err := p.Staff.department(role)
	if err != nil {
		return StaffChange{}, err
	}
	for i, m := range *dept {
		if m.ID != id {
			continue
		}
		*dept = append((*dept)[:i], (*dept)[i+1:]...)
		p.Finances.WeeklyExpenses -= m.Salary
		return StaffChange{
			Message:     fmt.Sprintf("%s has been removed from staff", m.Name),
			StaffMember: m,
		}, nil
	}
	return StaffChange{}, fmt.Errorf("%w: %s", ErrStaffNotFound, id)
}

func singular(role StaffRole) string {
	s := string(role)
	return s[:len(s)-1]
}

// FacilityKind names a facility slot.
type FacilityKind string

const (
	Headquarters      FacilityKind = "headquarters"
	TrainingCenter    FacilityKind = "trainingCenter"
	PerformanceCenter FacilityKind = "performanceCenter"
)

// FacilitySize is ordered Small < Medium < Large.
type FacilitySize string

const (
	SizeSmall  FacilitySize = "Small"
	SizeMedium FacilitySize = "Medium"
	SizeLarge  FacilitySize = "Large"
)

// Rank is the ordinal of the size, or 0 for an unknown size.
func (s FacilitySize) Rank() int {
	switch s {
	case SizeSmall:
		return 1
	case SizeMedium:
		return 2
	case SizeLarge:
		return 3
	}
	return 0
}

// Upgrade pricing.
const (
	qualityStepCost         = 50000
	qualityStepMonthly      = 1000
	sizeStepCost            = 100000
	sizeStepMonthly         = 2000
	performanceCenterBuild  = 250000
	performanceCenterUpkeep = 10000
)

// Facilities are the company's buildings. PerformanceCenter is nil until built.
type Facilities struct {
	Headquarters      Facility  `json:"headquarters"`
	TrainingCenter    Facility  `json:"trainingCenter"`
	PerformanceCenter *Facility `json:"performanceCenter"`
}

// Facility is a building. Quality is 1-5.
type Facility struct {
	Quality     int          `json:"quality"`
	Size        FacilitySize `json:"size"`
	MonthlyCost int64        `json:"monthlyCost"`
}

func defaultFacilities() Facilities {
	return Facilities{
		Headquarters:   Facility{Quality: 3, Size: SizeMedium, MonthlyCost: 5000},
		TrainingCenter: Facility{Quality: 2, Size: SizeSmall, MonthlyCost: 3000},
	}
}

// The two standing facilities default independently, so each slot is
// decoded over its own defaults.
func (f *Facilities) UnmarshalJSON(b []byte) error {
	var raw struct {
		Headquarters      json.RawMessage `json:"headquarters"`
		TrainingCenter    json.RawMessage `json:"trainingCenter"`
		PerformanceCenter *Facility       `json:"performanceCenter"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v := defaultFacilities()
	if len(raw.Headquarters) > 0 {
		if err := json.Unmarshal(raw.Headquarters, &v.Headquarters); err != nil {
			return err
		}
	}
	if len(raw.TrainingCenter) > 0 {
		if err := json.Unmarshal(raw.TrainingCenter, &v.TrainingCenter); err != nil {
			return err
		}
	}
	v.PerformanceCenter = raw.PerformanceCenter
	*f = v
	return nil
}

func (f *Facilities) slot(kind FacilityKind) (*Facility, error) {
	switch kind {
	case Headquarters:
		return &f.Headquarters, nil
	case TrainingCenter:
		return &f.TrainingCenter, nil
	case PerformanceCenter:
		return f.PerformanceCenter, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidFacility, kind)
}

// FacilityUpgrade requests a higher quality, a larger size, or both.
type FacilityUpgrade struct {
	Quality int          `json:"quality,omitempty"`
	Size    FacilitySize `json:"size,omitempty"`
}

// FacilityUpgraded is returned by UpgradeFacility.
type FacilityUpgraded struct {
	Message  string   `json:"message"`
	Facility Facility `json:"facility"`
	Cost     int64    `json:"cost"`
}

// UpgradeFacility improves a facility and books its cost as expenses. The
// first request for the performance center builds it at a flat price and
// ignores the requested tiers. Both tiers are validated before anything is
// charged, so a rejected upgrade changes nothing.
func (p *Promotion) UpgradeFacility(kind FacilityKind, up FacilityUpgrade, now time.Time) (FacilityUpgraded, error) {
	cur, err := p.Facilities.slot(kind)
	if err != nil {
		return FacilityUpgraded{}, err
	}

	if kind == PerformanceCenter && cur == nil {
		p.Facilities.PerformanceCenter = &Facility{Quality: 1, Size: SizeSmall, MonthlyCost: performanceCenterUpkeep}
		if _, err := p.UpdateFinances(TransactionInput{
			Type:        Expense,
			Amount:      performanceCenterBuild,
			Description: "Performance Center construction",
		}, now); err != nil {
			return FacilityUpgraded{}, err
		}
		return FacilityUpgraded{
			Message:  "Performance Center has been built",
			Facility: *p.Facilities.PerformanceCenter,
			Cost:     performanceCenterBuild,
		}, nil
	}

	var qualitySteps, sizeSteps int
	if up.Quality != 0 {
		if up.Quality <= cur.Quality {
			return FacilityUpgraded{}, fmt.Errorf("%w: quality %d to %d", ErrFacilityDowngrade, cur.Quality, up.Quality)
		}
		qualitySteps = up.Quality - cur.Quality
	}
	if up.Size != "" {
		from, to := cur.Size.Rank(), up.Size.Rank()
		if to == 0 {
			return FacilityUpgraded{}, fmt.Errorf("%w: unknown size %q", ErrInvalidFacility, up.Size)
		}
		if to <= from {
			return FacilityUpgraded{}, fmt.Errorf("%w: size %s to %s", ErrFacilityDowngrade, cur.Size, up.Size)
		}
		sizeSteps = to - from
	}

	var cost int64
	if qualitySteps > 0 {
		amount := int64(qualitySteps) * qualityStepCost
		if _, err := p.UpdateFinances(TransactionInput{
			Type:        Expense,
			Amount:      amount,
			Description: fmt.Sprintf("%s quality upgrade", kind),
		}, now); err != nil {
			return FacilityUpgraded{}, err
		}
		cur.Quality = up.Quality
		cur.MonthlyCost += int64(qualitySteps) * qualityStepMonthly
		cost += amount
	}
	if sizeSteps > 0 {
		amount := int64(sizeSteps) * sizeStepCost
		if _, err := p.UpdateFinances(TransactionInput{
			Type:        Expense,
			Amount:      amount,
			Description: fmt.Sprintf("%s size upgrade", kind),
		}, now); err != nil {
			return FacilityUpgraded{}, err
		}
		cur.Size = up.Size
		cur.MonthlyCost += int64(sizeSteps) * sizeStepMonthly
		cost += amount
	}

	return FacilityUpgraded{
		Message:  fmt.Sprintf("%s has been upgraded", kind),
		Facility: *cur,
		Cost:     cost,
	}, nil
}

// CalculateFanSatisfaction blends the current satisfaction (70%) with the
// average 0-5 star rating of events rescaled to 0-100 (30%). With no events
// the rating is unchanged.
func (p *Promotion) CalculateFanSatisfaction(events []*Event) int {
	if len(events) == 0 {
		return p.FanBase.SatisfactionRating
	}
	var sum float64
	for _, e := range events {
		sum += e.Ratings.Overall
	}
	avg := sum / float64(len(events))
	blended := float64(p.FanBase.SatisfactionRating)*0.7 + (avg/5*100)*0.3
	p.FanBase.SatisfactionRating = int(math.Round(math.Max(MinRating, math.Min(MaxRating, blended))))
	return p.FanBase.SatisfactionRating
}

// FanBaseUpdate holds relative changes to the audience. Demographic groups
// present in the update overwrite the stored ones.
type FanBaseUpdate struct {
	FanChange          int64         `json:"fanChange,omitempty"`
	GrowthChange       float64       `json:"growthChange,omitempty"`
	SatisfactionChange int           `json:"satisfactionChange,omitempty"`
	Demographics       *DemoOverride `json:"demographics,omitempty"`
}

// DemoOverride replaces parts of the demographics.
type DemoOverride struct {
	Casual    *int         `json:"casual,omitempty"`
	Hardcore  *int         `json:"hardcore,omitempty"`
	Lapsed    *int         `json:"lapsed,omitempty"`
	AgeGroups *AgeGroups   `json:"ageGroups,omitempty"`
	Gender    *GenderSplit `json:"gender,omitempty"`
}

// FanBaseUpdated is returned by UpdateFanBase.
type FanBaseUpdated struct {
	Message      string  `json:"message"`
	CurrentFans  int64   `json:"currentFans"`
	Satisfaction int     `json:"satisfaction"`
	Growth       float64 `json:"growth"`
}

// UpdateFanBase applies u. Satisfaction stays within 0-100.
func (p *Promotion) UpdateFanBase(u FanBaseUpdate) FanBaseUpdated {
	fb := &p.FanBase
	fb.Total += u.FanChange
	fb.Growth += u.GrowthChange
	if u.SatisfactionChange != 0 {
		fb.SatisfactionRating = clampInt(fb.SatisfactionRating+u.SatisfactionChange, MinRating, MaxRating)
	}
	if d := u.Demographics; d != nil {
		setIf(&fb.Demographics.Casual, d.Casual)
		setIf(&fb.Demographics.Hardcore, d.Hardcore)
		setIf(&fb.Demographics.Lapsed, d.Lapsed)
		setIf(&fb.Demographics.AgeGroups, d.AgeGroups)
		setIf(&fb.Demographics.Gender, d.Gender)
	}
	return FanBaseUpdated{
		Message:      "Fan base updated",
		CurrentFans:  fb.Total,
		Satisfaction: fb.SatisfactionRating,
		Growth:       fb.Growth,
	}
}
