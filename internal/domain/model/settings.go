package model

import (
	"encoding/json"
	"time"
)

// Difficulty levels.
const (
	DifficultyEasy       = "easy"
	DifficultyNormal     = "normal"
	DifficultyHard       = "hard"
	DifficultySimulation = "simulation"
)

// Autosave frequencies. Only AutosaveWeekly is acted on by the weekly tick.
const (
	AutosaveNever   = "never"
	AutosaveWeekly  = "weekly"
	AutosaveMonthly = "monthly"
	AutosaveYearly  = "yearly"
)

// Settings are the player's preferences, stored apart from the save game.
type Settings struct {
	ID            string        `json:"id"`
	Difficulty    string        `json:"difficulty"`
	Autosave      Autosave      `json:"autosave"`
	Simulation    Simulation    `json:"simulation"`
	Display       Display       `json:"display"`
	Notifications Notifications `json:"notifications"`
	Audio         Audio         `json:"audio"`
}

type Autosave struct {
	Frequency string `json:"frequency"`
	Enabled   bool   `json:"enabled"`
}

type Simulation struct {
	Injuries        bool `json:"injuries"`
	Retirements     bool `json:"retirements"`
	RandomEvents    bool `json:"randomEvents"`
	FinancialCrises bool `json:"financialCrises"`
}

type Display struct {
	Theme         string `json:"theme"`
	ShowTutorials bool   `json:"showTutorials"`
	CompactMode   bool   `json:"compactMode"`
}

type Notifications struct {
	ContractExpiry  bool `json:"contractExpiry"`
	InjuryUpdates   bool `json:"injuryUpdates"`
	RosterMorale    bool `json:"rosterMorale"`
	FinancialAlerts bool `json:"financialAlerts"`
}

// Audio volume is 0.0-1.0.
type Audio struct {
	Enabled         bool    `json:"enabled"`
	Volume          float64 `json:"volume"`
	EventSounds     bool    `json:"eventSounds"`
	BackgroundMusic bool    `json:"backgroundMusic"`
}

func defaultAutosave() Autosave { return Autosave{Frequency: AutosaveWeekly, Enabled: true} }

func defaultSimulation() Simulation {
	return Simulation{Injuries: true, Retirements: true, RandomEvents: true, FinancialCrises: true}
}

func defaultDisplay() Display { return Display{Theme: "light", ShowTutorials: true} }

func defaultNotifications() Notifications {
	return Notifications{ContractExpiry: true, InjuryUpdates: true, RosterMorale: true, FinancialAlerts: true}
}

func defaultAudio() Audio {
	return Audio{Enabled: true, Volume: 0.5, EventSounds: true, BackgroundMusic: true}
}

func (a *Autosave) UnmarshalJSON(b []byte) error {
	type plain Autosave
	v := plain(defaultAutosave())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = Autosave(v)
	return nil
}

func (s *Simulation) UnmarshalJSON(b []byte) error {
	type plain Simulation
	v := plain(defaultSimulation())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Simulation(v)
	return nil
}

func (d *Display) UnmarshalJSON(b []byte) error {
	type plain Display
	v := plain(defaultDisplay())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = Display(v)
	return nil
}

func (n *Notifications) UnmarshalJSON(b []byte) error {
	type plain Notifications
	v := plain(defaultNotifications())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Notifications(v)
	return nil
}

func (a *Audio) UnmarshalJSON(b []byte) error {
	type plain Audio
	v := plain(defaultAudio())
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = Audio(v)
	return nil
}

func defaultSettings() *Settings {
	return &Settings{
		Difficulty:    DifficultyNormal,
		Autosave:      defaultAutosave(),
		Simulation:    defaultSimulation(),
		Display:       defaultDisplay(),
		Notifications: defaultNotifications(),
		Audio:         defaultAudio(),
	}
}

// NewSettings returns default settings with a fresh id.
func NewSettings() *Settings {
	s := defaultSettings()
	s.ID = newID()
	return s
}

// DecodeSettings builds settings from a partial JSON document.
func DecodeSettings(data []byte) (*Settings, error) {
	s := defaultSettings()
	if err := decode(data, s); err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = newID()
	}
	return s, nil
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings { return clone(s) }

// AutosavesWeekly reports whether the weekly tick should save the game.
func (s *Settings) AutosavesWeekly() bool {
	return s.Autosave.Enabled && s.Autosave.Frequency == AutosaveWeekly
}

// SettingsPatch updates individual settings. Within a section only the
// fields present are changed.
type SettingsPatch struct {
	Difficulty    *string             `json:"difficulty,omitempty"`
	Autosave      *AutosavePatch      `json:"autosave,omitempty"`
	Simulation    *SimulationPatch    `json:"simulation,omitempty"`
	Display       *DisplayPatch       `json:"display,omitempty"`
	Notifications *NotificationsPatch `json:"notifications,omitempty"`
	Audio         *AudioPatch         `json:"audio,omitempty"`
}

type AutosavePatch struct {
	Frequency *string `json:"frequency,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

type SimulationPatch struct {
	Injuries        *bool `json:"injuries,omitempty"`
	Retirements     *bool `json:"retirements,omitempty"`
	RandomEvents    *bool `json:"randomEvents,omitempty"`
	FinancialCrises *bool `json:"financialCrises,omitempty"`
}

type DisplayPatch struct {
	Theme         *string `json:"theme,omitempty"`
	ShowTutorials *bool   `json:"showTutorials,omitempty"`
	CompactMode   *bool   `json:"compactMode,omitempty"`
}

type NotificationsPatch struct {
	ContractExpiry  *bool `json:"contractExpiry,omitempty"`
	InjuryUpdates   *bool `json:"injuryUpdates,omitempty"`
	RosterMorale    *bool `json:"rosterMorale,omitempty"`
	FinancialAlerts *bool `json:"financialAlerts,omitempty"`
}

type AudioPatch struct {
	Enabled         *bool    `json:"enabled,omitempty"`
	Volume          *float64 `json:"volume,omitempty"`
	EventSounds     *bool    `json:"eventSounds,omitempty"`
	BackgroundMusic *bool    `json:"backgroundMusic,omitempty"`
}

// Update merges p into s section by section.
func (s *Settings) Update(p SettingsPatch) {
	if p.Difficulty != nil && *p.Difficulty != "" {
		s.Difficulty = *p.Difficulty
	}
	if a := p.Autosave; a != nil {
		setIf(&s.Autosave.Frequency, a.Frequency)
		setIf(&s.Autosave.Enabled, a.Enabled)
	}
	if m := p.Simulation; m != nil {
		setIf(&s.Simulation.Injuries, m.Injuries)
		setIf(&s.Simulation.Retirements, m.Retirements)
		setIf(&s.Simulation.RandomEvents, m.RandomEvents)
		setIf(&s.Simulation.FinancialCrises, m.FinancialCrises)
	}
	if d := p.Display; d != nil {
		setIf(&s.Display.Theme, d.Theme)
		setIf(&s.Display.ShowTutorials, d.ShowTutorials)
		setIf(&s.Display.CompactMode, d.CompactMode)
	}
	if n := p.Notifications; n != nil {
		setIf(&s.Notifications.ContractExpiry, n.ContractExpiry)
		setIf(&s.Notifications.InjuryUpdates, n.InjuryUpdates)
		setIf(&s.Notifications.RosterMorale, n.RosterMorale)
		setIf(&s.Notifications.FinancialAlerts, n.FinancialAlerts)
	}
	if a := p.Audio; a != nil {
		setIf(&s.Audio.Enabled, a.Enabled)
		setIf(&s.Audio.Volume, a.Volume)
		setIf(&s.Audio.EventSounds, a.EventSounds)
		setIf(&s.Audio.BackgroundMusic, a.BackgroundMusic)
	}
}

// ResetToDefaults restores every section. The id is kept.
func (s *Settings) ResetToDefaults() {
	id := s.ID
	*s = *defaultSettings()
	s.ID = id
}

// GameState is the scalar state of a running game.
type GameState struct {
	CurrentDate       string  `json:"currentDate"`
	PlayerPromotionID *string `json:"playerPromotionId"`
	GameWeek          int     `json:"gameWeek"`
	Difficulty        string  `json:"difficulty"`
	LastSaved         *string `json:"lastSaved"`
}

// NewGameState starts a game on week 1 at now.
func NewGameState(now time.Time, difficulty string) GameState {
	if difficulty == "" {
		difficulty = DifficultyNormal
	}
	return GameState{
		CurrentDate: timestamp(now),
		GameWeek:    1,
		Difficulty:  difficulty,
	}
}

func (g *GameState) UnmarshalJSON(b []byte) error {
	type plain GameState
	v := plain{GameWeek: 1, Difficulty: DifficultyNormal}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*g = GameState(v)
	return nil
}

// PlayerPromotion returns the player promotion id, or "".
func (g GameState) PlayerPromotion() string {
	if g.PlayerPromotionID == nil {
		return ""
	}
	return *g.PlayerPromotionID
}
