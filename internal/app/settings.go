package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/okian/ringside/internal/adapters/repository"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
)

// Settings returns a copy of the current settings, loading them on first use.
func (s *Service) Settings(ctx context.Context) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.settingsLocked(ctx)
	if err != nil {
		return nil, err
	}
	return st.Clone(), nil
}

// LoadSettings rereads the settings document. When there is none the
// defaults are written as the first settings document. A failed read keeps
// the settings already in memory.
func (s *Service) LoadSettings(ctx context.Context) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.readSettings(ctx)
	if err != nil {
		return nil, err
	}
	s.settings = st
	return st.Clone(), nil
}

func (s *Service) settingsLocked(ctx context.Context) (*model.Settings, error) {
	if s.settings != nil {
		return s.settings, nil
	}
	st, err := s.readSettings(ctx)
	if err != nil {
		return nil, err
	}
	s.settings = st
	return st, nil
}

// readSettings loads the settings document, writing defaults when there is
// none. It does not touch s.settings.
func (s *Service) readSettings(ctx context.Context) (*model.Settings, error) {
	st, err := s.store.LoadSettings(ctx)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, repository.ErrNotFound):
		st = model.NewSettings()
		if err := s.store.SaveSettings(ctx, st); err != nil {
			s.logger.Error(ctx, "failed to write default settings", logger.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrSettings, err)
		}
		s.logger.Info(ctx, "default settings created", logger.String("id", st.ID))
		return st, nil
	default:
		s.logger.Error(ctx, "failed to load settings", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSettings, err)
	}
}

// SaveSettings writes the current settings.
func (s *Service) SaveSettings(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.settingsLocked(ctx)
	if err != nil {
		return err
	}
	return s.writeSettings(ctx, st)
}

func (s *Service) writeSettings(ctx context.Context, st *model.Settings) error {
	if err := s.store.SaveSettings(ctx, st); err != nil {
		s.logger.Error(ctx, "failed to save settings", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrSettings, err)
	}
	return nil
}

// UpdateSettings merges patch into the settings and saves them. A failed
// save leaves the in-memory settings unchanged.
func (s *Service) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.settingsLocked(ctx)
	if err != nil {
		return nil, err
	}
	next := cur.Clone()
	next.Update(patch)
	if err := s.writeSettings(ctx, next); err != nil {
		return nil, err
	}
	s.settings = next
	s.logger.Debug(ctx, "settings updated")
	return next.Clone(), nil
}

// ResetSettings restores the default settings, keeping the settings id,
// and saves them.
func (s *Service) ResetSettings(ctx context.Context) (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.settingsLocked(ctx)
	if err != nil {
		return nil, err
	}
	next := cur.Clone()
	next.ResetToDefaults()
	if err := s.writeSettings(ctx, next); err != nil {
		return nil, err
	}
	s.settings = next
	s.logger.Info(ctx, "settings reset to defaults")
	return next.Clone(), nil
}
