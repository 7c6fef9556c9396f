package service

import (
	"context"
	"fmt"

	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// Week is the game as seen by a WeeklyHook. Its fields point at live state
// and are only valid for the duration of the hook call.
type Week struct {
	Number        int
	Date          string
	Player        *model.Promotion // nil when the game has no player promotion
	Wrestlers     []*model.Wrestler
	Championships []*model.Championship
	Events        []*model.Event
}

// WeeklyHook runs once per advanced week, after the calendar moved forward.
// A hook error is logged and does not stop the week or the other hooks.
type WeeklyHook func(ctx context.Context, w *Week) error

// WeekAdvanced is returned by AdvanceGameWeek.
type WeekAdvanced struct {
	Message     string   `json:"message"`
	Week        int      `json:"week"`
	CurrentDate string   `json:"currentDate"`
	Saved       bool     `json:"saved"`
	HookErrors  []string `json:"hookErrors,omitempty"`
}

// AdvanceGameWeek moves the game forward seven days, runs the weekly hooks
// and autosaves when the settings ask for weekly saves.
func (s *Service) AdvanceGameWeek(ctx context.Context) (WeekAdvanced, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := calendar.AddWeek(s.state.CurrentDate)
	if err != nil {
		s.logger.Error(ctx, "cannot advance week", logger.Error(err))
		return WeekAdvanced{}, fmt.Errorf("%w: %w", ErrAdvanceWeek, err)
	}
	s.state.GameWeek++
	s.state.CurrentDate = next
	metrics.RecordWeekAdvanced(s.state.GameWeek)

	out := WeekAdvanced{
		Week:        s.state.GameWeek,
		CurrentDate: s.state.CurrentDate,
	}

	week := s.weekLocked()
	ctx = logger.With(ctx, logger.Int("week", week.Number))
	for i, hook := range s.hooks {
		if err := hook(ctx, week); err != nil {
			s.logger.Warn(ctx, "weekly hook failed", logger.Int("hook", i), logger.Error(err))
			metrics.RecordError("tick", "hook")
			out.HookErrors = append(out.HookErrors, err.Error())
		}
	}
	s.updateGauges()

	out.Message = fmt.Sprintf("Advanced to week %d", out.Week)
	if st, err := s.settingsLocked(ctx); err != nil {
		s.logger.Warn(ctx, "settings unavailable, skipping autosave", logger.Error(err))
	} else if st.AutosavesWeekly() {
		if _, err := s.saveLocked(ctx); err != nil {
			return out, err
		}
		out.Saved = true
	}

	s.logger.Info(ctx, "week advanced",
		logger.String("date", out.CurrentDate),
		logger.Bool("saved", out.Saved),
	)
	return out, nil
}

func (s *Service) weekLocked() *Week {
	w := &Week{
		Number:        s.state.GameWeek,
		Date:          s.state.CurrentDate,
		Wrestlers:     s.wrestlers,
		Championships: s.championships,
		Events:        s.events,
	}
	if p, err := s.playerLocked(); err == nil {
		w.Player = p
	}
	return w
}

// WeeklyFinancesHook books a week of operations for the player promotion,
// dated with the new game date.
func WeeklyFinancesHook(l logger.Logger) WeeklyHook {
	return func(ctx context.Context, w *Week) error {
		if w.Player == nil {
			return ErrNoPlayer
		}
		res := w.Player.ProcessWeeklyFinances(w.Date)
		metrics.UpdateWeeklyProfit(res.WeeklyProfit)
		if l != nil {
			l.Debug(ctx, "weekly finances booked", logger.Int64("profit", res.WeeklyProfit))
		}
		return nil
	}
}
