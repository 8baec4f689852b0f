package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/encodeous/tint"
	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
)

// NewLogger logs to stderr, and additionally to logPath when it is set.
// The returned closer releases the log file.
func NewLogger(level slog.Level, logPath string) (*slog.Logger, io.Closer, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        level,
			AddSource:    false,
			CustomPrefix: "routesim",
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	var closer io.Closer = io.NopCloser(nil)
	if logPath != "" {
		err := os.MkdirAll(path.Dir(logPath), 0700)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Bootstrap runs the simulation described by cfg and writes the tables to out
func Bootstrap(cfg state.SimCfg, out io.Writer) error {
	if err := state.SimConfigValidator(&cfg); err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger, closer, err := NewLogger(level, cfg.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger = logger.With("run", uuid.NewString())

	topo, err := state.ReadTopology(cfg.Topology)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Topology, err)
	}
	if err = state.ValidateTopology(topo); err != nil {
		return fmt.Errorf("validating %s: %w", cfg.Topology, err)
	}

	if cfg.DebugAddr != "" {
		perf.Serve(cfg.DebugAddr, logger)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(context.Canceled)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			cancel(errors.New("received shutdown signal"))
		case <-ctx.Done():
		}
	}()

	tracer := NewTracer(state.TraceBufferSize)
	stopTrace := tracer.LogTo(logger)
	defer func() {
		stopTrace()
		_ = tracer.Close()
	}()

	env := &Env{
		Context:    ctx,
		Log:        logger,
		Reporter:   NewReporter(out, cfg.Quiet),
		Trace:      tracer,
		RoundDelay: cfg.RoundDelay,
	}

	engines := []Engine{DistanceVector, LinkState}
	if cfg.Engine != "both" {
		engine, err := ParseEngine(cfg.Engine)
		if err != nil {
			return err
		}
		engines = []Engine{engine}
	}

	results := make([]*Result, 0, len(engines))
	for _, engine := range engines {
		res, err := Simulate(env, topo, engine)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	if len(results) == 2 {
		if err = CrossCheck(results[0], results[1]); err != nil {
			return fmt.Errorf("engines disagree: %w", err)
		}
		logger.Info("distance-vector and link-state tables agree")
	}
	return nil
}
