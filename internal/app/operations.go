package service

import (
	"context"

	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// TitleChangeRequest crowns a wrestler. Empty Date means the current game date.
type TitleChangeRequest struct {
	ChampionshipID string `json:"championshipId"`
	WrestlerID     string `json:"wrestlerId"`
	Date           string `json:"date,omitempty"`
	EventName      string `json:"eventName,omitempty"`
}

// DefenseRequest records a successful title defense.
type DefenseRequest struct {
	ChampionshipID string `json:"championshipId"`
	Opponent       string `json:"opponent"`
	Date           string `json:"date,omitempty"`
	EventName      string `json:"eventName,omitempty"`
}

// VacateRequest strips a title from its holder.
type VacateRequest struct {
	ChampionshipID string `json:"championshipId"`
	Date           string `json:"date,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

func (s *Service) dateOr(d string) string {
	if d == "" {
		return s.state.CurrentDate
	}
	return d
}

// ChangeChampion crowns the wrestler as the new holder and adds the title
// to the wrestler's career record.
func (s *Service) ChangeChampion(ctx context.Context, req TitleChangeRequest) (model.TitleChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := s.championshipLocked(req.ChampionshipID)
	if err != nil {
		return model.TitleChange{}, err
	}
	w, err := s.wrestlerLocked(req.WrestlerID)
	if err != nil {
		return model.TitleChange{}, err
	}

	change := title.ChangeChampion(w.ID, w.Name, s.dateOr(req.Date), req.EventName)
	w.HoldsChampionship(title.ID)
	metrics.RecordTitleChange()

	s.logger.Info(ctx, "title changed hands",
		logger.String("championship", title.Name),
		logger.String("champion", w.Name),
	)
	return change, nil
}

// RecordDefense counts a successful defense by the current holder.
func (s *Service) RecordDefense(ctx context.Context, req DefenseRequest) (*model.Defense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := s.championshipLocked(req.ChampionshipID)
	if err != nil {
		return nil, err
	}
	d, err := title.RecordDefense(s.dateOr(req.Date), req.Opponent, req.EventName)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "title defended",
		logger.String("championship", title.Name),
		logger.Int("defenses", d.DefenseCount),
	)
	return d, nil
}

// VacateTitle strips the championship from its holder.
func (s *Service) VacateTitle(ctx context.Context, req VacateRequest) (model.TitleVacated, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title, err := s.championshipLocked(req.ChampionshipID)
	if err != nil {
		return model.TitleVacated{}, err
	}
	v := title.Vacate(s.dateOr(req.Date), req.Reason)
	s.logger.Info(ctx, "title vacated",
		logger.String("championship", title.Name),
		logger.String("reason", req.Reason),
	)
	return v, nil
}

// AddMatch books a match at the end of an event's card. Participants that
// name a known wrestler without a name get the wrestler's current name.
func (s *Service) AddMatch(ctx context.Context, eventID string, in model.MatchInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.eventLocked(eventID)
	if err != nil {
		return "", err
	}
	if len(in.Participants) > 0 {
		parts := make([]model.Participant, len(in.Participants))
		copy(parts, in.Participants)
		for i := range parts {
			if parts[i].Name != "" {
				continue
			}
			if w, err := s.wrestlerLocked(parts[i].ID); err == nil {
				parts[i].Name = w.Name
			}
		}
		in.Participants = parts
	}

	id := e.AddMatch(in)
	s.logger.Debug(ctx, "match booked", logger.String("event", e.Name), logger.String("match", id))
	return id, nil
}

// StartEvent moves a scheduled event to In Progress.
func (s *Service) StartEvent(ctx context.Context, id string) (*model.Event, error) {
	return s.transitionEvent(ctx, id, (*model.Event).Start)
}

// CancelEvent calls off an event that has not finished.
func (s *Service) CancelEvent(ctx context.Context, id string) (*model.Event, error) {
	return s.transitionEvent(ctx, id, (*model.Event).Cancel)
}

func (s *Service) transitionEvent(ctx context.Context, id string, fn func(*model.Event) error) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.eventLocked(id)
	if err != nil {
		return nil, err
	}
	if err := fn(e); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "event status changed",
		logger.String("event", e.Name),
		logger.String("status", string(e.Status)),
	)
	return e.Clone(), nil
}

// FinalizeEvent records the actual results of an event.
func (s *Service) FinalizeEvent(ctx context.Context, id string, results model.EventResults) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.eventLocked(id)
	if err != nil {
		return nil, err
	}
	e.FinalizeEvent(results)
	metrics.RecordEventFinalized()

	s.logger.Info(ctx, "event finalized",
		logger.String("event", e.Name),
		logger.Int("attendance", e.Attendance.Actual),
		logger.Int64("profit", e.Finances.Profit),
	)
	return e.Clone(), nil
}

// mutatePlayer runs fn against a copy of the player promotion and commits
// the copy only when fn succeeds.
func (s *Service) mutatePlayer(fn func(p *model.Promotion) error) error {
	p, err := s.playerLocked()
	if err != nil {
		return err
	}
	draft := p.Clone()
	if err := fn(draft); err != nil {
		return err
	}
	s.promotions[indexOf(s.promotions, p.ID, promotionID)] = draft
	metrics.UpdatePlayerBalance(draft.Finances.Balance)
	return nil
}

// ProcessWeeklyFinances books a week of the player's operations, dated with
// the current game date.
func (s *Service) ProcessWeeklyFinances(ctx context.Context) (model.WeeklyFinances, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processWeeklyFinancesLocked(ctx)
}

func (s *Service) processWeeklyFinancesLocked(ctx context.Context) (model.WeeklyFinances, error) {
	var out model.WeeklyFinances
	err := s.mutatePlayer(func(p *model.Promotion) error {
		out = p.ProcessWeeklyFinances(s.state.CurrentDate)
		return nil
	})
	if err != nil {
		return model.WeeklyFinances{}, err
	}
	metrics.UpdateWeeklyProfit(out.WeeklyProfit)
	s.logger.Info(ctx, "weekly finances processed",
		logger.Int64("profit", out.WeeklyProfit),
		logger.Int64("balance", out.CurrentBalance),
	)
	return out, nil
}

// RecordTransaction posts income or an expense to the player's ledger.
// Empty Date means the current game date.
func (s *Service) RecordTransaction(ctx context.Context, in model.TransactionInput) (model.FinanceUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Date = s.dateOr(in.Date)
	var out model.FinanceUpdate
	err := s.mutatePlayer(func(p *model.Promotion) (err error) {
		out, err = p.UpdateFinances(in, s.clock.Now())
		return err
	})
	if err != nil {
		return model.FinanceUpdate{}, err
	}
	s.logger.Debug(ctx, "transaction recorded",
		logger.String("type", string(in.Type)),
		logger.Int64("amount", in.Amount),
	)
	return out, nil
}

// AddMediaDeal signs a broadcast deal for the player promotion.
func (s *Service) AddMediaDeal(ctx context.Context, in model.MediaDeal) (model.MediaDealAdded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.MediaDealAdded
	err := s.mutatePlayer(func(p *model.Promotion) error {
		out = p.AddMediaDeal(in, s.clock.Now())
		return nil
	})
	if err != nil {
		return model.MediaDealAdded{}, err
	}
	s.logger.Info(ctx, "media deal signed",
		logger.String("partner", out.Deal.Partner),
		logger.Int64("value", out.Deal.Value),
	)
	return out, nil
}

// ScheduleShow adds a recurring show to the player promotion.
func (s *Service) ScheduleShow(ctx context.Context, kind model.ShowKind, in model.ShowInput) (model.ShowScheduled, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.ShowScheduled
	err := s.mutatePlayer(func(p *model.Promotion) (err error) {
		out, err = p.ScheduleShow(kind, in)
		return err
	})
	if err != nil {
		return model.ShowScheduled{}, err
	}
	s.logger.Debug(ctx, "show scheduled", logger.String("kind", string(kind)), logger.String("show", out.ShowID))
	return out, nil
}

// CancelShow deactivates one of the player promotion's shows.
func (s *Service) CancelShow(ctx context.Context, kind model.ShowKind, id string) (model.ShowCancelled, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.ShowCancelled
	err := s.mutatePlayer(func(p *model.Promotion) (err error) {
		out, err = p.CancelShow(kind, id)
		return err
	})
	if err != nil {
		return model.ShowCancelled{}, err
	}
	s.logger.Debug(ctx, "show cancelled", logger.String("kind", string(kind)), logger.String("show", id))
	return out, nil
}

// HireStaff adds a staff member to a department of the player promotion.
func (s *Service) HireStaff(ctx context.Context, role model.StaffRole, in model.StaffMember) (model.StaffChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.StaffChange
	err := s.mutatePlayer(func(p *model.Promotion) (err error) {
		out, err = p.AddStaffMember(role, in, s.clock.Now())
		return err
	})
	if err != nil {
		return model.StaffChange{}, err
	}
	s.logger.Info(ctx, "staff hired", logger.String("role", string(role)))
	return out, nil
}

// FireStaff removes a staff member from a department of the player promotion.
func (s *Service) FireStaff(ctx context.Context, role model.StaffRole, id string) (model.StaffChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.StaffChange
	err := s.mutatePlayer(func(p *model.Promotion) (err error) {
		out, err = p.RemoveStaffMember(role, id)
		return err
	})
	if err != nil {
		return model.StaffChange{}, err
	}
	s.logger.Info(ctx, "staff released", logger.String("role", string(role)), logger.String("id", id))
	return out, nil
}

// UpgradeFacility improves one of the player's facilities and books the cost.
func (s *Service) UpgradeFacility(ctx context.Context, kind model.FacilityKind, up model.FacilityUpgrade) (model.FacilityUpgraded, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.FacilityUpgraded
	err := s.mutatePlayer(func(p *model.Promotion) (err error) {
		out, err = p.UpgradeFacility(kind, up, s.clock.Now())
		return err
	})
	if err != nil {
		s.logger.Warn(ctx, "facility upgrade rejected", logger.String("facility", string(kind)), logger.Error(err))
		return model.FacilityUpgraded{}, err
	}
	s.logger.Info(ctx, "facility upgraded",
		logger.String("facility", string(kind)),
		logger.Int64("cost", out.Cost),
	)
	return out, nil
}

// UpdateFanBase applies relative audience changes to the player promotion.
func (s *Service) UpdateFanBase(ctx context.Context, u model.FanBaseUpdate) (model.FanBaseUpdated, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out model.FanBaseUpdated
	err := s.mutatePlayer(func(p *model.Promotion) error {
		out = p.UpdateFanBase(u)
		return nil
	})
	if err != nil {
		return model.FanBaseUpdated{}, err
	}
	s.logger.Debug(ctx, "fan base updated", logger.Int64("fans", out.CurrentFans))
	return out, nil
}

// RefreshFanSatisfaction blends the ratings of completed events into the
// player's fan satisfaction and returns the new rating.
func (s *Service) RefreshFanSatisfaction(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var completed []*model.Event
	for _, e := range s.events {
		if e.Status == model.EventCompleted {
			completed = append(completed, e)
		}
	}

	var rating int
	err := s.mutatePlayer(func(p *model.Promotion) error {
		rating = p.CalculateFanSatisfaction(completed)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug(ctx, "fan satisfaction refreshed",
		logger.Int("events", len(completed)),
		logger.Int("satisfaction", rating),
	)
	return rating, nil
}

// ReconcilePlayerRoster recomputes the player's roster size and payroll
// from every wrestler whose contract is not released.
func (s *Service) ReconcilePlayerRoster(ctx context.Context) (model.RosterDrift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]*model.Wrestler, 0, len(s.wrestlers))
	for _, w := range s.wrestlers {
		if w.IsActiveRoster() {
			members = append(members, w)
		}
	}

	var drift model.RosterDrift
	err := s.mutatePlayer(func(p *model.Promotion) error {
		drift = p.ReconcileRoster(members)
		return nil
	})
	if err != nil {
		return model.RosterDrift{}, err
	}
	if drift.Drifted {
		metrics.RecordRosterDrift()
		s.logger.Warn(ctx, "roster accounting drifted",
			logger.Int("sizeBefore", drift.SizeBefore),
			logger.Int("sizeAfter", drift.SizeAfter),
		)
	}
	return drift, nil
}
