package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"grid-snake/audio"
	"grid-snake/config"
	"grid-snake/game"
	"grid-snake/game/loop"
	"grid-snake/input"
	"grid-snake/storage"
	"grid-snake/ui"
	"grid-snake/ui/raylib"

	"github.com/charmbracelet/log"
)

const defaultTerminalLog = "data/snake.log"

// frontend is a surface that also owns the frame loop.
type frontend interface {
	game.Surface
	Run(ctx context.Context, s ui.Session) error
}

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("snake exited with error", "err", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

func run(cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Store.Kind, cfg.Store.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Kind, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close store", "err", err)
		}
	}()

	if cfg.ShowHistory {
		return printHistory(ctx, store, os.Stdout)
	}

	sound, closeSound := newSound(cfg, logger)
	defer closeSound()

	var front frontend
	switch cfg.UI {
	case config.UITerminal:
		term, err := ui.NewTerminal(cfg.Game, logger)
		if err != nil {
			return err
		}
		defer term.Close()
		front = term
	default:
		front = raylib.NewRenderer(cfg.Game, cfg.Glow, logger)
	}

	g := game.NewGame(cfg.Game, store, game.WithSound(sound), game.WithLogger(logger))
	queue := loop.NewFrameQueue()
	driver := loop.NewDriver(g, front, queue, logger)
	session := ui.Session{
		Game:   g,
		Driver: driver,
		Queue:  queue,
		Input:  input.NewHandler(g, driver, logger),
	}

	logger.Info("snake ready", "ui", cfg.UI, "grid", cfg.Game.GridSize, "store", cfg.Store.Kind)
	err = front.Run(ctx, session)

	frames, updates := driver.Stats()
	logger.Debug("frontend closed", "frames", frames, "updates", updates, "score", g.Score())
	return err
}

// newLogger writes to stderr, or to a file when the terminal frontend owns
// the screen or a log file was requested.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}

	path := cfg.LogFile
	if path == "" && cfg.UI == config.UITerminal && !cfg.ShowHistory {
		path = defaultTerminalLog
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "snake",
		ReportTimestamp: true,
	})
	return logger, closeFn, nil
}

// newSound falls back to a silent sink when muted or when the speaker
// cannot be opened.
func newSound(cfg config.Config, logger *log.Logger) (game.SoundSink, func()) {
	if cfg.Mute || cfg.Audio.Volume == 0 {
		return audio.Silent{}, func() {}
	}
	player, err := audio.NewPlayer(cfg.Audio, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Silent{}, func() {}
	}
	return player, player.Close
}
