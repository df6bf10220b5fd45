package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
)

type rootCmdConfig struct {
	verbose  bool
	profile  string
	logger   zerolog.Logger
	profiler interface{ Stop() }
	ctx      context.Context
	cancel   context.CancelFunc
}

func (rc *rootCmdConfig) setup() {
	level := zerolog.InfoLevel
	if rc.verbose {
		level = zerolog.DebugLevel
	}
	rc.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
	if rc.profile != "" {
		rc.profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(rc.profile), profile.Quiet)
	}
}

func (rc *rootCmdConfig) teardown() {
	if rc.profiler != nil {
		rc.profiler.Stop()
		rc.logger.Info().Str("dir", rc.profile).Msg("CPU profile written")
	}
	if rc.cancel != nil {
		rc.cancel()
	}
}

// Context returns a context carrying the logger that is cancelled on interrupt
func (rc *rootCmdConfig) Context() context.Context {
	if rc.ctx == nil {
		rc.ctx, rc.cancel = signal.NotifyContext(rc.logger.WithContext(context.Background()), os.Interrupt)
	}
	return rc.ctx
}

func (rc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rc.logger.Debug().Msgf(format, a...)
}

// fail logs the error and exits with the given code
func (rc *rootCmdConfig) fail(code int, err error) {
	rc.logger.Error().Err(err).Int("code", code).Msg("dtlearn failed")
	if rc.profiler != nil {
		rc.profiler.Stop()
	}
	os.Exit(code)
}
