// Package service owns the running game: its entity collections, game
// state and settings, and the operations the command layer exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// Default document locations used when no store is supplied.
const (
	defaultSavePath     = "game-data/save-data.json"
	defaultSettingsPath = "game-data/settings.json"
)

// Service is the game state store. All methods are safe for concurrent use;
// getters hand out copies so callers cannot mutate stored entities.
type Service struct {
	mu sync.Mutex

	// Collaborators
	store  repository.Store
	clock  calendar.Clock
	hooks  []WeeklyHook
	logger logger.Logger

	// Configuration
	difficulty string

	// State
	state         model.GameState
	wrestlers     []*model.Wrestler
	championships []*model.Championship
	events        []*model.Event
	promotions    []*model.Promotion
	settings      *model.Settings
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the persistence backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock sets the wall clock used for new games and timestamps.
func WithClock(c calendar.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithWeeklyHooks registers hooks run on every AdvanceGameWeek, in order.
func WithWeeklyHooks(hooks ...WeeklyHook) Option {
	return func(s *Service) {
		for _, h := range hooks {
			if h != nil {
				s.hooks = append(s.hooks, h)
			}
		}
	}
}

// WithDifficulty sets the difficulty of newly created games.
func WithDifficulty(d string) Option {
	return func(s *Service) {
		if d != "" {
			s.difficulty = d
		}
	}
}

// New constructs a Service with an empty game. Call Init to load or create one.
func New(opts ...Option) *Service {
	s := &Service{
		clock:         calendar.RealClock{},
		difficulty:    model.DifficultyNormal,
		wrestlers:     []*model.Wrestler{},
		championships: []*model.Championship{},
		events:        []*model.Event{},
		promotions:    []*model.Promotion{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewFileStore(defaultSavePath, defaultSettingsPath,
			repository.WithClock(s.clock))
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.state = model.NewGameState(s.clock.Now(), s.difficulty)

	return s
}

// Result is the acknowledgement returned by lifecycle operations.
type Result struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Init loads the existing save when asked to and one is present; otherwise
// it starts a new game.
func (s *Service) Init(ctx context.Context, loadExisting bool) (Result, error) {
	if loadExisting && s.store.GameExists(ctx) {
		return s.LoadGame(ctx)
	}
	return s.CreateNewGame(ctx)
}

// CreateNewGame discards the current game and starts a fresh one with the
// player promotion and its default roster. The new game is saved.
func (s *Service) CreateNewGame(ctx context.Context) (Result, error) {
	return s.startGame(ctx, newGameJSON, "New game created successfully")
}

// CreateSampleGame starts a new game populated with the demonstration data
// set: a full roster, two titles with holders, two booked events and a
// promotion with weekly shows. The game is saved.
func (s *Service) CreateSampleGame(ctx context.Context) (Result, error) {
	return s.startGame(ctx, sampleGameJSON, "Sample game created successfully")
}

func (s *Service) startGame(ctx context.Context, doc []byte, msg string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.capture()
	now := s.clock.Now()
	s.reset(now)
	if err := s.seedGame(doc, now); err != nil {
		s.restore(prev)
		s.logger.Error(ctx, "failed to seed game", logger.Error(err))
		return Result{}, err
	}

	s.logger.Info(ctx, "new game started",
		logger.String("promotion", s.state.PlayerPromotion()),
		logger.Int("wrestlers", len(s.wrestlers)),
		logger.Int("championships", len(s.championships)),
		logger.Int("events", len(s.events)),
	)

	if _, err := s.saveLocked(ctx); err != nil {
		return Result{}, err
	}
	return Result{Message: msg}, nil
}

func (s *Service) reset(now time.Time) {
	s.wrestlers = []*model.Wrestler{}
	s.championships = []*model.Championship{}
	s.events = []*model.Event{}
	s.promotions = []*model.Promotion{}
	s.state = model.NewGameState(now, s.difficulty)
}

func (s *Service) capture() repository.Snapshot {
	return repository.Snapshot{
		GameState:     s.state,
		Wrestlers:     s.wrestlers,
		Championships: s.championships,
		Events:        s.events,
		Promotions:    s.promotions,
	}
}

func (s *Service) restore(snap repository.Snapshot) {
	s.state = snap.GameState
	s.wrestlers = snap.Wrestlers
	s.championships = snap.Championships
	s.events = snap.Events
	s.promotions = snap.Promotions
	s.updateGauges()
}

// SaveGame writes the whole game to the store and stamps lastSaved. A failed
// write leaves lastSaved unchanged.
func (s *Service) SaveGame(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) (Result, error) {
	stamp := calendar.Timestamp(s.clock.Now())
	snap := s.capture()
	snap.GameState.LastSaved = &stamp

	if err := s.store.SaveGame(ctx, &snap); err != nil {
		s.logger.Error(ctx, "failed to save game", logger.Error(err))
		metrics.RecordError("service", "save")
		return Result{}, fmt.Errorf("%w: %w", ErrSaveGame, err)
	}

	s.state = snap.GameState
	s.updateGauges()
	s.logger.Debug(ctx, "game saved", logger.String("timestamp", stamp))
	return Result{Message: "Game saved successfully", Timestamp: stamp}, nil
}

// LoadGame replaces the in-memory game with the saved one. On any failure
// the current game is left untouched.
func (s *Service) LoadGame(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.LoadGame(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load game", logger.Error(err))
		metrics.RecordError("service", "load")
		if errors.Is(err, repository.ErrNotFound) {
			return Result{}, fmt.Errorf("%w: no saved game: %w", ErrLoadGame, err)
		}
		return Result{}, fmt.Errorf("%w: %w", ErrLoadGame, err)
	}

	s.restore(*snap)

	s.logger.Info(ctx, "game loaded",
		logger.Int("week", s.state.GameWeek),
		logger.String("date", s.state.CurrentDate),
	)
	return Result{Message: "Game loaded successfully"}, nil
}

// GameState returns the scalar game state.
func (s *Service) GameState() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PlayerPromotion returns a copy of the promotion the player runs.
func (s *Service) PlayerPromotion() (*model.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.playerLocked()
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (s *Service) playerLocked() (*model.Promotion, error) {
	id := s.state.PlayerPromotion()
	if id == "" {
		return nil, ErrNoPlayer
	}
	if i := indexOf(s.promotions, id, promotionID); i >= 0 {
		return s.promotions[i], nil
	}
	return nil, fmt.Errorf("%w: player promotion %s", ErrNotFound, id)
}

func (s *Service) updateGauges() {
	metrics.UpdateEntityCount("wrestlers", len(s.wrestlers))
	metrics.UpdateEntityCount("championships", len(s.championships))
	metrics.UpdateEntityCount("events", len(s.events))
	metrics.UpdateEntityCount("promotions", len(s.promotions))
	if p, err := s.playerLocked(); err == nil {
		metrics.UpdatePlayerBalance(p.Finances.Balance)
	}
}
