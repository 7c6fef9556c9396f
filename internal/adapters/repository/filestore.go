package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/metrics"
)

// Document labels used in metrics.
const (
	docGame     = "game"
	docSettings = "settings"
)

// FileStore keeps each document in one pretty-printed JSON file. Writes go
// to a sibling temp file that is renamed over the target.
type FileStore struct {
	savePath     string
	settingsPath string
	clock        calendar.Clock
	fileMode     os.FileMode
	indent       string
}

// NewFileStore returns a store for the given document paths.
func NewFileStore(savePath, settingsPath string, opts ...Option) *FileStore {
	s := &FileStore{
		savePath:     savePath,
		settingsPath: settingsPath,
		clock:        calendar.RealClock{},
		fileMode:     0o644,
		indent:       "  ",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SavePath is the location of the save document.
func (s *FileStore) SavePath() string { return s.savePath }

// SettingsPath is the location of the settings document.
func (s *FileStore) SettingsPath() string { return s.settingsPath }

// rawSnapshot defers entity decoding so each entity gets its defaults.
type rawSnapshot struct {
	GameState     model.GameState   `json:"gameState"`
	Wrestlers     []json.RawMessage `json:"wrestlers"`
	Championships []json.RawMessage `json:"championships"`
	Events        []json.RawMessage `json:"events"`
	Promotions    []json.RawMessage `json:"promotions"`
}

// LoadGame reads the save document. Nothing is returned unless every
// entity decodes.
func (s *FileStore) LoadGame(ctx context.Context) (*Snapshot, error) {
	data, err := s.read(s.savePath)
	if err != nil {
		metrics.RecordLoad(docGame, metrics.OutcomeFailure)
		return nil, err
	}

	snap, err := decodeSnapshot(data, s.clock.Now())
	if err != nil {
		metrics.RecordLoad(docGame, metrics.OutcomeFailure)
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.savePath, err)
	}
	metrics.RecordLoad(docGame, metrics.OutcomeSuccess)
	return snap, nil
}

func decodeSnapshot(data []byte, now time.Time) (*Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	snap := &Snapshot{GameState: raw.GameState}
	var err error
	if snap.Wrestlers, err = decodeAll(raw.Wrestlers, now, model.DecodeWrestler); err != nil {
		return nil, fmt.Errorf("wrestlers: %w", err)
	}
	if snap.Championships, err = decodeAll(raw.Championships, now, model.DecodeChampionship); err != nil {
		return nil, fmt.Errorf("championships: %w", err)
	}
	if snap.Events, err = decodeAll(raw.Events, now, model.DecodeEvent); err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	if snap.Promotions, err = decodeAll(raw.Promotions, now, model.DecodePromotion); err != nil {
		return nil, fmt.Errorf("promotions: %w", err)
	}
	return snap, nil
}

func decodeAll[T any](raws []json.RawMessage, now time.Time, fn func([]byte, time.Time) (*T, error)) ([]*T, error) {
	out := make([]*T, 0, len(raws))
	for i, r := range raws {
		v, err := fn(r, now)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// SaveGame writes the save document.
func (s *FileStore) SaveGame(_ context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrWrite)
	}
	out := *snap
	out.Wrestlers = nonNil(out.Wrestlers)
	out.Championships = nonNil(out.Championships)
	out.Events = nonNil(out.Events)
	out.Promotions = nonNil(out.Promotions)

	n, err := s.write(s.savePath, out)
	if err != nil {
		metrics.RecordSave(docGame, metrics.OutcomeFailure)
		return err
	}
	metrics.RecordSave(docGame, metrics.OutcomeSuccess)
	metrics.UpdateSaveBytes(n)
	return nil
}

// GameExists reports whether the save document is present.
func (s *FileStore) GameExists(_ context.Context) bool {
	_, err := os.Stat(s.savePath)
	return err == nil
}

// LoadSettings reads the settings document.
func (s *FileStore) LoadSettings(_ context.Context) (*model.Settings, error) {
	data, err := s.read(s.settingsPath)
	if err != nil {
		metrics.RecordLoad(docSettings, metrics.OutcomeFailure)
		return nil, err
	}
	settings, err := model.DecodeSettings(data)
	if err != nil {
		metrics.RecordLoad(docSettings, metrics.OutcomeFailure)
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.settingsPath, err)
	}
	metrics.RecordLoad(docSettings, metrics.OutcomeSuccess)
	return settings, nil
}

// SaveSettings writes the settings document.
func (s *FileStore) SaveSettings(_ context.Context, settings *model.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", ErrWrite)
	}
	if _, err := s.write(s.settingsPath, settings); err != nil {
		metrics.RecordSave(docSettings, metrics.OutcomeFailure)
		return err
	}
	metrics.RecordSave(docSettings, metrics.OutcomeSuccess)
	return nil
}

func (s *FileStore) read(path string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.RecordPersistLatency("read", float64(time.Since(start).Microseconds())/1000)
	}()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return data, nil
}

func (s *FileStore) write(path string, payload any) (int, error) {
	start := time.Now()
	defer func() {
		metrics.RecordPersistLatency("write", float64(time.Since(start).Microseconds())/1000)
	}()

	data, err := json.MarshalIndent(payload, "", s.indent)
	if err != nil {
		return 0, fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, s.fileMode); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return len(data), nil
}

func nonNil[T any](s []*T) []*T {
	if s == nil {
		return []*T{}
	}
	return s
}
