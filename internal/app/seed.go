package service

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
)

//go:embed data/new_game.json
var newGameJSON []byte

//go:embed data/sample_game.json
var sampleGameJSON []byte

var errSeed = errors.New("invalid seed")

// seed describes a starting game. Wrestlers and championships are referred
// to by their index in the seed.
type seed struct {
	Promotion     json.RawMessage   `json:"promotion"`
	WeeklyShows   []model.ShowInput `json:"weeklyShows"`
	Wrestlers     []json.RawMessage `json:"wrestlers"`
	Championships []seedTitle       `json:"championships"`
	Events        []seedEvent       `json:"events"`
}

type seedTitle struct {
	Title      json.RawMessage `json:"title"`
	Champion   *int            `json:"champion"`
	WonDaysAgo int             `json:"wonDaysAgo"`
	Defenses   int             `json:"defenses"`
}

type seedEvent struct {
	Event   json.RawMessage `json:"event"`
	InDays  int             `json:"inDays"`
	Matches []seedMatch     `json:"matches"`
}

type seedMatch struct {
	Title        string            `json:"title"`
	Type         string            `json:"type"`
	Participants []seedParticipant `json:"participants"`
	Championship *int              `json:"championship"`
	Winner       *int              `json:"winner"`
}

type seedParticipant struct {
	Wrestler int        `json:"wrestler"`
	Role     model.Role `json:"role"`
}

// seedGame populates the freshly reset collections from a seed document.
// The seeded promotion becomes the player promotion and every seeded
// wrestler joins its roster.
func (s *Service) seedGame(doc []byte, now time.Time) error {
	var sd seed
	if err := json.Unmarshal(doc, &sd); err != nil {
		return fmt.Errorf("%w: %w", errSeed, err)
	}

	player, err := model.DecodePromotion(orEmptyDoc(sd.Promotion), now)
	if err != nil {
		return err
	}
	for _, show := range sd.WeeklyShows {
		if _, err := player.ScheduleShow(model.ShowWeekly, show); err != nil {
			return err
		}
	}

	wrestlers := make([]*model.Wrestler, 0, len(sd.Wrestlers))
	for _, raw := range sd.Wrestlers {
		w, err := model.DecodeWrestler(raw, now)
		if err != nil {
			return err
		}
		wrestlers = append(wrestlers, w)
		player.AddWrestler(w)
	}
	wrestlerAt := func(i int) (*model.Wrestler, error) {
		if i < 0 || i >= len(wrestlers) {
			return nil, fmt.Errorf("%w: wrestler index %d", errSeed, i)
		}
		return wrestlers[i], nil
	}

	titles := make([]*model.Championship, 0, len(sd.Championships))
	for _, st := range sd.Championships {
		c, err := model.DecodeChampionship(st.Title, now)
		if err != nil {
			return err
		}
		if st.Champion != nil {
			w, err := wrestlerAt(*st.Champion)
			if err != nil {
				return err
			}
			c.ChangeChampion(w.ID, w.Name, calendar.Timestamp(now.AddDate(0, 0, -st.WonDaysAgo)), "")
			c.CurrentChampion.DefenseCount = st.Defenses
			w.HoldsChampionship(c.ID)
		}
		titles = append(titles, c)
		player.Championships = append(player.Championships, c.ID)
	}

	events := make([]*model.Event, 0, len(sd.Events))
	for _, se := range sd.Events {
		e, err := model.DecodeEvent(se.Event, now)
		if err != nil {
			return err
		}
		e.Date = calendar.Timestamp(now.AddDate(0, 0, se.InDays))
		for _, sm := range se.Matches {
			in := model.MatchInput{Title: sm.Title, Type: sm.Type}
			for _, sp := range sm.Participants {
				w, err := wrestlerAt(sp.Wrestler)
				if err != nil {
					return err
				}
				in.Participants = append(in.Participants, model.Participant{ID: w.ID, Name: w.Name, Role: sp.Role})
			}
			if sm.Championship != nil {
				if *sm.Championship < 0 || *sm.Championship >= len(titles) {
					return fmt.Errorf("%w: championship index %d", errSeed, *sm.Championship)
				}
				id := titles[*sm.Championship].ID
				in.Championship = &id
			}
			if sm.Winner != nil {
				w, err := wrestlerAt(*sm.Winner)
				if err != nil {
					return err
				}
				id := w.ID
				in.BookedOutcome = &id
			}
			e.AddMatch(in)
		}
		events = append(events, e)
	}

	s.promotions = append(s.promotions, player)
	s.wrestlers = append(s.wrestlers, wrestlers...)
	s.championships = append(s.championships, titles...)
	s.events = append(s.events, events...)
	s.state.PlayerPromotionID = &player.ID
	return nil
}
