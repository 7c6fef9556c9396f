package service

import (
	"context"
	"fmt"

	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
)

func wrestlerID(w *model.Wrestler) string         { return w.ID }
func championshipID(c *model.Championship) string { return c.ID }
func eventID(e *model.Event) string               { return e.ID }
func promotionID(p *model.Promotion) string       { return p.ID }

func indexOf[T any](items []*T, id string, key func(*T) string) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

func cloneAll[T any](items []*T, cp func(*T) *T) []*T {
	out := make([]*T, len(items))
	for i, it := range items {
		out[i] = cp(it)
	}
	return out
}

func removeAt[T any](items []*T, i int) []*T {
	return append(items[:i:i], items[i+1:]...)
}

// --- wrestlers ---

// AllWrestlers returns copies of every wrestler.
func (s *Service) AllWrestlers() []*model.Wrestler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.wrestlers, (*model.Wrestler).Clone)
}

// WrestlerByID returns a copy of one wrestler.
func (s *Service) WrestlerByID(id string) (*model.Wrestler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, err := s.wrestlerLocked(id)
	if err != nil {
		return nil, err
	}
	return w.Clone(), nil
}

func (s *Service) wrestlerLocked(id string) (*model.Wrestler, error) {
	if i := indexOf(s.wrestlers, id, wrestlerID); i >= 0 {
		return s.wrestlers[i], nil
	}
	return nil, fmt.Errorf("%w: wrestler %s", ErrNotFound, id)
}

// AddWrestler decodes a partial wrestler document and stores it. Ratings
// outside [0,100] are clamped.
func (s *Service) AddWrestler(ctx context.Context, raw []byte) (*model.Wrestler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := model.DecodeWrestler(orEmptyDoc(raw), s.clock.Now())
	if err != nil {
		return nil, err
	}
	w.ClampAttributes()
	s.wrestlers = append(s.wrestlers, w)
	s.updateGauges()
	s.logger.Info(ctx, "wrestler added", logger.String("id", w.ID), logger.String("name", w.Name))
	return w.Clone(), nil
}

// UpdateWrestler merges patch into the stored wrestler and clamps its ratings.
func (s *Service) UpdateWrestler(ctx context.Context, id string, patch model.WrestlerPatch) (*model.Wrestler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.wrestlerLocked(id)
	if err != nil {
		return nil, err
	}
	w.Apply(patch, s.clock.Now())
	w.ClampAttributes()
	s.logger.Debug(ctx, "wrestler updated", logger.String("id", id))
	return w.Clone(), nil
}

// DeleteWrestler removes a wrestler and reports whether it existed.
// References held by titles, cards or promotions are left as they are.
func (s *Service) DeleteWrestler(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.wrestlers, id, wrestlerID)
	if i < 0 {
		return false
	}
	s.wrestlers = removeAt(s.wrestlers, i)
	s.updateGauges()
	s.logger.Info(ctx, "wrestler deleted", logger.String("id", id))
	return true
}

// --- championships ---

// AllChampionships returns copies of every championship.
func (s *Service) AllChampionships() []*model.Championship {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.championships, (*model.Championship).Clone)
}

// ChampionshipByID returns a copy of one championship.
func (s *Service) ChampionshipByID(id string) (*model.Championship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.championshipLocked(id)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (s *Service) championshipLocked(id string) (*model.Championship, error) {
	if i := indexOf(s.championships, id, championshipID); i >= 0 {
		return s.championships[i], nil
	}
	return nil, fmt.Errorf("%w: championship %s", ErrNotFound, id)
}

// AddChampionship decodes a partial championship document and stores it.
func (s *Service) AddChampionship(ctx context.Context, raw []byte) (*model.Championship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := model.DecodeChampionship(orEmptyDoc(raw), s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.championships = append(s.championships, c)
	s.updateGauges()
	s.logger.Info(ctx, "championship added", logger.String("id", c.ID), logger.String("name", c.Name))
	return c.Clone(), nil
}

// UpdateChampionship merges patch into the stored championship.
func (s *Service) UpdateChampionship(ctx context.Context, id string, patch model.ChampionshipPatch) (*model.Championship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.championshipLocked(id)
	if err != nil {
		return nil, err
	}
	c.Apply(patch, s.clock.Now())
	s.logger.Debug(ctx, "championship updated", logger.String("id", id))
	return c.Clone(), nil
}

// DeleteChampionship removes a championship and reports whether it existed.
func (s *Service) DeleteChampionship(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.championships, id, championshipID)
	if i < 0 {
		return false
	}
	s.championships = removeAt(s.championships, i)
	s.updateGauges()
	s.logger.Info(ctx, "championship deleted", logger.String("id", id))
	return true
}

// --- events ---

// AllEvents returns copies of every event.
func (s *Service) AllEvents() []*model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.events, (*model.Event).Clone)
}

// EventByID returns a copy of one event.
func (s *Service) EventByID(id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.eventLocked(id)
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

func (s *Service) eventLocked(id string) (*model.Event, error) {
	if i := indexOf(s.events, id, eventID); i >= 0 {
		return s.events[i], nil
	}
	return nil, fmt.Errorf("%w: event %s", ErrNotFound, id)
}

// AddEvent decodes a partial event document and stores it.
func (s *Service) AddEvent(ctx context.Context, raw []byte) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := model.DecodeEvent(orEmptyDoc(raw), s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.events = append(s.events, e)
	s.updateGauges()
	s.logger.Info(ctx, "event added", logger.String("id", e.ID), logger.String("name", e.Name))
	return e.Clone(), nil
}

// UpdateEvent merges patch into the stored event.
func (s *Service) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.eventLocked(id)
	if err != nil {
		return nil, err
	}
	e.Apply(patch, s.clock.Now())
	s.logger.Debug(ctx, "event updated", logger.String("id", id))
	return e.Clone(), nil
}

// DeleteEvent removes an event and reports whether it existed.
func (s *Service) DeleteEvent(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.events, id, eventID)
	if i < 0 {
		return false
	}
	s.events = removeAt(s.events, i)
	s.updateGauges()
	s.logger.Info(ctx, "event deleted", logger.String("id", id))
	return true
}

// --- promotions ---

// AllPromotions returns copies of every promotion.
func (s *Service) AllPromotions() []*model.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.promotions, (*model.Promotion).Clone)
}

// PromotionByID returns a copy of one promotion.
func (s *Service) PromotionByID(id string) (*model.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.promotionLocked(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (s *Service) promotionLocked(id string) (*model.Promotion, error) {
	if i := indexOf(s.promotions, id, promotionID); i >= 0 {
		return s.promotions[i], nil
	}
	return nil, fmt.Errorf("%w: promotion %s", ErrNotFound, id)
}

// AddPromotion decodes a partial promotion document and stores it. Added
// promotions are rivals; only the one created with the game is the player's.
func (s *Service) AddPromotion(ctx context.Context, raw []byte) (*model.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := model.DecodePromotion(orEmptyDoc(raw), s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.promotions = append(s.promotions, p)
	s.updateGauges()
	s.logger.Info(ctx, "promotion added", logger.String("id", p.ID), logger.String("name", p.Name))
	return p.Clone(), nil
}

// UpdatePromotion merges patch into the stored promotion.
func (s *Service) UpdatePromotion(ctx context.Context, id string, patch model.PromotionPatch) (*model.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.promotionLocked(id)
	if err != nil {
		return nil, err
	}
	p.Apply(patch, s.clock.Now())
	s.updateGauges()
	s.logger.Debug(ctx, "promotion updated", logger.String("id", id))
	return p.Clone(), nil
}

// DeletePromotion removes a promotion and reports whether it existed. The
// player promotion cannot be deleted.
func (s *Service) DeletePromotion(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && id == s.state.PlayerPromotion() {
		return false, ErrPlayerPromotion
	}
	i := indexOf(s.promotions, id, promotionID)
	if i < 0 {
		return false, nil
	}
	s.promotions = removeAt(s.promotions, i)
	s.updateGauges()
	s.logger.Info(ctx, "promotion deleted", logger.String("id", id))
	return true, nil
}

func orEmptyDoc(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}
