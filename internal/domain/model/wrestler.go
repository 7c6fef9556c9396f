package model

import (
	"encoding/json"
	"math"
	"time"

	"github.com/okian/ringside/internal/domain/calendar"
)

// Role is a performer's crowd alignment.
type Role string

const (
	RoleFace    Role = "Face"
	RoleHeel    Role = "Heel"
	RoleNeutral Role = "Neutral"
)

// ContractStatus is the state of a performer's contract.
type ContractStatus string

const (
	ContractActive    ContractStatus = "Active"
	ContractInjured   ContractStatus = "Injured"
	ContractSuspended ContractStatus = "Suspended"
	ContractReleased  ContractStatus = "Released"
)

// Rating bounds shared by attributes, prestige and reputation scores.
const (
	MinRating = 0
	MaxRating = 100
)

// Overall rating weights.
const (
	weightStrength   = 0.15
	weightSpeed      = 0.15
	weightTechnique  = 0.20
	weightCharisma   = 0.20
	weightStamina    = 0.15
	weightMicrophone = 0.15
)

// Wrestler is a performer on the roster.
type Wrestler struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Nickname    string      `json:"nickname"`
	Gender      string      `json:"gender"`
	Age         int         `json:"age"`
	Height      int         `json:"height"` // cm
	Weight      int         `json:"weight"` // kg
	Image       string      `json:"image"`
	Bio         string      `json:"bio"`
	HomeTown    string      `json:"homeTown"`
	Attributes  Attributes  `json:"attributes"`
	Style       Style       `json:"style"`
	Traits      []string    `json:"traits"`
	Contract    Contract    `json:"contract"`
	Stats       Stats       `json:"stats"`
	Development Development `json:"development"`
}

// Attributes are 0-100 ratings.
type Attributes struct {
	Strength   int `json:"strength"`
	Speed      int `json:"speed"`
	Technique  int `json:"technique"`
	Charisma   int `json:"charisma"`
	Stamina    int `json:"stamina"`
	Microphone int `json:"microphone"`
	Loyalty    int `json:"loyalty"`
	Popularity int `json:"popularity"`
	Morale     int `json:"morale"`
	Health     int `json:"health"`
}

func defaultAttributes() Attributes {
	return Attributes{
		Strength:   50,
		Speed:      50,
		Technique:  50,
		Charisma:   50,
		Stamina:    50,
		Microphone: 50,
		Loyalty:    50,
		Popularity: 50,
		Morale:     70,
		Health:     100,
	}
}

func (a *Attributes) UnmarshalJSON(b []byte) error {
	type plain Attributes
	v := plain(defaultAttributes())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = Attributes(v)
	return nil
}

// Style describes how a performer wrestles and which side of the crowd they work.
type Style struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Signature     string `json:"signature"`
	Finisher      string `json:"finisher"`
	PreferredRole Role   `json:"preferredRole"`
	CurrentRole   Role   `json:"currentRole"`
}

func defaultStyle() Style {
	return Style{
		Primary:       "All-Rounder",
		Signature:     "Signature Move",
		Finisher:      "Finisher Move",
		PreferredRole: RoleNeutral,
		CurrentRole:   RoleNeutral,
	}
}

func (s *Style) UnmarshalJSON(b []byte) error {
	type plain Style
	v := plain(defaultStyle())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Style(v)
	return nil
}

// Contract holds employment terms. Salary is weekly.
type Contract struct {
	Signed             string         `json:"signed"`
	Expires            string         `json:"expires"`
	Salary             int64          `json:"salary"`
	Status             ContractStatus `json:"status"`
	Exclusivity        string         `json:"exclusivity"`
	MinimumAppearances int            `json:"minimumAppearances"` // per month
}

func defaultContract() Contract {
	return Contract{
		Salary:             1000,
		Status:             ContractActive,
		Exclusivity:        "Exclusive",
		MinimumAppearances: 4,
	}
}

func (c *Contract) UnmarshalJSON(b []byte) error {
	type plain Contract
	v := plain(defaultContract())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = Contract(v)
	return nil
}

// Stats are cumulative career numbers.
type Stats struct {
	Matches       int      `json:"matches"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	Draws         int      `json:"draws"`
	Championships []string `json:"championships"`
	Rivalries     []string `json:"rivalries"`
	Allies        []string `json:"allies"`
	LastMatchDate *string  `json:"lastMatchDate"`
	AverageRating float64  `json:"averageRating"`
}

// Development tracks growth toward a performer's ceiling.
type Development struct {
	Potential      int            `json:"potential"`
	Experience     int            `json:"experience"`
	TrainingPoints int            `json:"trainingPoints"`
	SkillCeiling   map[string]int `json:"skillCeiling"`
}

func defaultDevelopment() Development {
	return Development{Potential: 75}
}

func (d *Development) UnmarshalJSON(b []byte) error {
	type plain Development
	v := plain(defaultDevelopment())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = Development(v)
	return nil
}

func defaultWrestler() *Wrestler {
	return &Wrestler{
		Name:        "New Wrestler",
		Gender:      "male",
		Age:         25,
		Height:      180,
		Weight:      90,
		Image:       "default_wrestler.png",
		Attributes:  defaultAttributes(),
		Style:       defaultStyle(),
		Contract:    defaultContract(),
		Development: defaultDevelopment(),
	}
}

// NewWrestler returns a wrestler populated with defaults and a fresh id.
func NewWrestler(now time.Time) *Wrestler {
	w := defaultWrestler()
	w.fillDefaults(now)
	return w
}

// DecodeWrestler builds a wrestler from a partial JSON document. Omitted
// fields take their defaults; a missing id is generated.
func DecodeWrestler(data []byte, now time.Time) (*Wrestler, error) {
	w := defaultWrestler()
	if err := decode(data, w); err != nil {
		return nil, err
	}
	w.fillDefaults(now)
	return w, nil
}

func (w *Wrestler) fillDefaults(now time.Time) {
	if w.ID == "" {
		w.ID = newID()
	}
	if w.Contract.Signed == "" {
		w.Contract.Signed = timestamp(now)
	}
	if w.Contract.Expires == "" {
		if exp, err := calendar.ContractExpiry(w.Contract.Signed); err == nil {
			w.Contract.Expires = exp
		} else {
			w.Contract.Expires = timestamp(now.AddDate(1, 0, 0))
		}
	}
	w.Traits = orEmpty(w.Traits)
	w.Stats.Championships = orEmpty(w.Stats.Championships)
	w.Stats.Rivalries = orEmpty(w.Stats.Rivalries)
	w.Stats.Allies = orEmpty(w.Stats.Allies)
	if w.Development.SkillCeiling == nil {
		w.Development.SkillCeiling = map[string]int{}
	}
}

// Clone returns a deep copy.
func (w *Wrestler) Clone() *Wrestler { return clone(w) }

// CalculateOverall returns the weighted in-ring rating, rounded.
func (w *Wrestler) CalculateOverall() int {
	a := w.Attributes
	return int(math.Round(
		float64(a.Strength)*weightStrength +
			float64(a.Speed)*weightSpeed +
			float64(a.Technique)*weightTechnique +
			float64(a.Charisma)*weightCharisma +
			float64(a.Stamina)*weightStamina +
			float64(a.Microphone)*weightMicrophone,
	))
}

// ClampAttributes forces every rating into [0,100].
func (w *Wrestler) ClampAttributes() {
	a := &w.Attributes
	for _, v := range []*int{
		&a.Strength, &a.Speed, &a.Technique, &a.Charisma, &a.Stamina,
		&a.Microphone, &a.Loyalty, &a.Popularity, &a.Morale, &a.Health,
	} {
		*v = clampInt(*v, MinRating, MaxRating)
	}
}

// IsActiveRoster reports whether the wrestler counts toward roster accounting.
func (w *Wrestler) IsActiveRoster() bool {
	return w.Contract.Status != ContractReleased
}

// HoldsChampionship records a championship id in the career stats once.
func (w *Wrestler) HoldsChampionship(championshipID string) {
	for _, id := range w.Stats.Championships {
		if id == championshipID {
			return
		}
	}
	w.Stats.Championships = append(w.Stats.Championships, championshipID)
}

// WrestlerPatch is a shallow partial update. A nested record present in the
// patch replaces the stored record whole; its omitted fields take defaults.
type WrestlerPatch struct {
	Name        *string      `json:"name,omitempty"`
	Nickname    *string      `json:"nickname,omitempty"`
	Gender      *string      `json:"gender,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Height      *int         `json:"height,omitempty"`
	Weight      *int         `json:"weight,omitempty"`
	Image       *string      `json:"image,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	HomeTown    *string      `json:"homeTown,omitempty"`
	Attributes  *Attributes  `json:"attributes,omitempty"`
	Style       *Style       `json:"style,omitempty"`
	Traits      *[]string    `json:"traits,omitempty"`
	Contract    *Contract    `json:"contract,omitempty"`
	Stats       *Stats       `json:"stats,omitempty"`
	Development *Development `json:"development,omitempty"`
}

// Apply merges p into w. The id never changes.
func (w *Wrestler) Apply(p WrestlerPatch, now time.Time) {
	setIf(&w.Name, p.Name)
	setIf(&w.Nickname, p.Nickname)
	setIf(&w.Gender, p.Gender)
	setIf(&w.Age, p.Age)
	setIf(&w.Height, p.Height)
	setIf(&w.Weight, p.Weight)
	setIf(&w.Image, p.Image)
	setIf(&w.Bio, p.Bio)
	setIf(&w.HomeTown, p.HomeTown)
	setIf(&w.Attributes, p.Attributes)
	setIf(&w.Style, p.Style)
	setIf(&w.Traits, p.Traits)
	setIf(&w.Contract, p.Contract)
	setIf(&w.Stats, p.Stats)
	setIf(&w.Development, p.Development)
	w.fillDefaults(now)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
