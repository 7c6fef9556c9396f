package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/ringside/internal/adapters/command"
	repository "github.com/okian/ringside/internal/adapters/repository"
	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/config"
	"github.com/okian/ringside/pkg/logger"
	"github.com/okian/ringside/pkg/metrics"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitStartup = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command given in args, or a script read from stdin when
// no command is given. Results are written to stdout as JSON; logs go to
// stderr.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ringside", flag.ContinueOnError)
	fs.SetOutput(stderr)
	list := fs.Bool("list", false, "print the available commands and exit")
	fresh := fs.Bool("fresh", false, "start a new game instead of loading the save")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ringside [flags] [command [json-args]]")
		fmt.Fprintln(stderr, "without a command, one command per line is read from stdin")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitStartup
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return exitStartup
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitStartup
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, d := build(cfg)
	if *list {
		fmt.Fprintln(stdout, strings.Join(d.Commands(), "\n"))
		return exitOK
	}

	res, err := svc.Init(ctx, !*fresh)
	if err != nil {
		log.Error(ctx, "failed to start game", logger.Error(err))
		return exitStartup
	}
	log.Info(ctx, res.Message, logger.String("save", cfg.SavePath()))
	defer func() {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}()

	if fs.NArg() == 0 {
		failed, err := d.RunScript(ctx, stdin, stdout)
		if err != nil {
			log.Error(ctx, "script aborted", logger.Error(err))
			return exitFailed
		}
		if failed > 0 {
			return exitFailed
		}
		return exitOK
	}

	name := fs.Arg(0)
	var raw json.RawMessage
	if fs.NArg() > 1 {
		raw = json.RawMessage(strings.Join(fs.Args()[1:], " "))
	}
	resp := d.Execute(ctx, name, raw)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Error(ctx, "failed to write response", logger.Error(err))
		return exitFailed
	}
	if !resp.Success {
		return exitFailed
	}
	return exitOK
}

// build wires the store, the game service and the command dispatcher. The
// game is not started; the caller decides whether to load or create one.
func build(cfg *config.Config) (*service.Service, *command.Dispatcher) {
	store := repository.NewFileStore(cfg.SavePath(), cfg.SettingsPath())

	opts := []service.Option{
		service.WithLogger(logger.Get().Named("service")),
		service.WithStore(store),
		service.WithDifficulty(cfg.Difficulty),
	}
	if cfg.WeeklyFinances {
		opts = append(opts, service.WithWeeklyHooks(service.WeeklyFinancesHook(logger.Get().Named("weekly"))))
	}
	svc := service.New(opts...)

	d := command.NewDispatcher(svc,
		command.WithPersistOnMutation(cfg.PersistOnMutation),
		command.WithLogger(logger.Get().Named("command")),
	)
	return svc, d
}
