package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zerologLogger implements calculation.Logger on top of zerolog
type zerologLogger struct {
	logger zerolog.Logger
}

func (z zerologLogger) Debugf(format string, args ...any) { z.logger.Debug().Msgf(format, args...) }
func (z zerologLogger) Infof(format string, args ...any)  { z.logger.Info().Msgf(format, args...) }
func (z zerologLogger) Warnf(format string, args ...any)  { z.logger.Warn().Msgf(format, args...) }
func (z zerologLogger) Errorf(format string, args ...any) { z.logger.Error().Msgf(format, args...) }

// setupLogging points the global zerolog logger at a console writer
func setupLogging(out io.Writer, debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out}).Level(level)
	return log.Logger
}
