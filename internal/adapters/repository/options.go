package repository

import (
	"os"

	"github.com/okian/ringside/internal/domain/calendar"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithClock sets the clock used to default timestamps of decoded entities.
func WithClock(c calendar.Clock) Option {
	return func(s *FileStore) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithFileMode sets the permission bits of written documents.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// WithIndent sets the indentation of written documents.
func WithIndent(indent string) Option {
	return func(s *FileStore) {
		s.indent = indent
	}
}
