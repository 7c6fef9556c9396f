// Package command exposes the game through named commands that take JSON
// arguments and answer with a JSON envelope.
package command

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// Response is the envelope every command answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

type route struct {
	fn handlerFunc
	// mutates marks commands whose success is followed by a save when
	// persisting on mutation.
	mutates bool
}

// Dispatcher routes command names to the game.
type Dispatcher struct {
	game    Game
	persist bool
	logger  logger.Logger
	routes  map[string]route
}

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithPersistOnMutation saves the game after every successful mutating command.
func WithPersistOnMutation(enabled bool) Option {
	return func(d *Dispatcher) {
		d.persist = enabled
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher builds a dispatcher over game.
func NewDispatcher(game Game, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		game:    game,
		persist: true,
		routes:  map[string]route{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logger.Get().Named("command")
	}
	d.register()
	return d
}

// Commands lists the registered command names in order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.routes))
	for name := range d.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs one command. Failures are reported in the envelope, never
// as a Go error.
func (d *Dispatcher) Execute(ctx context.Context, name string, args json.RawMessage) Response {
	start := time.Now()
	ctx = logger.With(ctx, logger.String("command", name))
	resp := d.execute(ctx, name, args)

	outcome := metrics.OutcomeSuccess
	if !resp.Success {
		outcome = metrics.OutcomeFailure
	}
	metrics.RecordCommand(name, outcome, float64(time.Since(start).Microseconds())/1000)
	return resp
}

func (d *Dispatcher) execute(ctx context.Context, name string, args json.RawMessage) Response {
	r, ok := d.routes[name]
	if !ok {
		return d.fail(ctx, fmt.Errorf("%w: %q", ErrUnknownCommand, name))
	}

	data, err := r.fn(ctx, args)
	if err != nil {
		return d.fail(ctx, err)
	}

	if r.mutates && d.persist {
		if _, err := d.game.SaveGame(ctx); err != nil {
			return d.fail(ctx, err)
		}
	}

	d.logger.Debug(ctx, "command executed")
	return Response{Success: true, Message: messageOf(data), Data: data}
}

func (d *Dispatcher) fail(ctx context.Context, err error) Response {
	kind := Kind(err)
	d.logger.Warn(ctx, "command failed",
		logger.String("kind", kind),
		logger.Error(err),
	)
	metrics.RecordError("command", kind)
	return Response{Success: false, Kind: kind, Message: err.Error()}
}

// messageOf lifts a result's message into the envelope.
func messageOf(data any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	var probe struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &probe) != nil {
		return ""
	}
	return probe.Message
}

// bind decodes args into dst. Empty args leave dst untouched.
func bind(args json.RawMessage, dst any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrBadArguments, err)
	}
	return nil
}

func requireID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrBadArguments)
	}
	return nil
}
