// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"trader-network/internal/models"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	home, _ := os.UserHomeDir()
	return LogConfig{
		Level:      "info",
		Console:    true,
		File:       false,
		FilePath:   filepath.Join(home, ".config", "trader-network", "logs", "traders.log"),
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     30,
	}
}

// NewLogger creates a new logger with default configuration.
func NewLogger() zerolog.Logger {
	return NewLoggerWithConfig(DefaultLogConfig())
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
// Console output goes to stderr so stdout stays free for command output.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					switch ll {
					case "debug":
						return "\033[36mDBG\033[0m"
					case "info":
						return "\033[32mINF\033[0m"
					case "warn":
						return "\033[33mWRN\033[0m"
					case "error":
						return "\033[31mERR\033[0m"
					default:
						return ll
					}
				}
				return "???"
			},
		}
		writers = append(writers, consoleWriter)
	}

	// File writer with rotation
	if cfg.File {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			fileWriter := &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			}
			writers = append(writers, fileWriter)
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetDebugLevel sets the global log level to debug.
func SetDebugLevel() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// WithRun adds a run id to the logger context.
func WithRun(logger zerolog.Logger, runID string) zerolog.Logger {
	return logger.With().Str("run_id", runID).Logger()
}

// WithSeed adds the run's random seed to the logger context.
func WithSeed(logger zerolog.Logger, seed int64) zerolog.Logger {
	return logger.With().Int64("seed", seed).Logger()
}

// LogTick logs the aggregate state after a tick.
func LogTick(logger zerolog.Logger, stats models.TickStats) {
	logger.Debug().
		Str("event", "tick").
		Int("tick", stats.Tick).
		Float64("price", stats.Price).
		Int("zero_capital", stats.ZeroCapital).
		Int("with_capital", stats.WithCapital).
		Msg("Tick completed")
}

// LogTrade logs a resolved trade.
func LogTrade(logger zerolog.Logger, tick int, agent models.AgentSnapshot, outcome models.TradeOutcome) {
	logger.Debug().
		Str("event", "trade").
		Int("tick", tick).
		Int("agent", agent.ID).
		Str("signal", outcome.Signal.String()).
		Str("trigger", string(outcome.Trigger)).
		Float64("delta", outcome.Delta).
		Float64("capital", agent.Capital).
		Str("state", agent.StateName).
		Float64("win_rate", agent.WinRate).
		Msg("Trade resolved")
}

// LogShare logs a capital transfer between neighbours.
func LogShare(logger zerolog.Logger, tick int, giver models.AgentSnapshot, ev models.ShareEvent) {
	logger.Debug().
		Str("event", "share").
		Int("tick", tick).
		Int("agent", ev.From).
		Int("beneficiary", ev.To).
		Float64("amount", ev.Amount).
		Float64("capital", giver.Capital).
		Str("state", giver.StateName).
		Msg("Capital shared")
}

// LogInactive logs an agent that skipped its step for lack of capital.
func LogInactive(logger zerolog.Logger, tick int, agent models.AgentSnapshot) {
	logger.Debug().
		Str("event", "inactive").
		Int("tick", tick).
		Int("agent", agent.ID).
		Float64("capital", agent.Capital).
		Msg("Agent out of capital")
}

// LogHalt logs the model entering its terminal halted state.
func LogHalt(logger zerolog.Logger, tick int, err error) {
	logger.Warn().
		Str("event", "halt").
		Int("tick", tick).
		Err(err).
		Msg("Simulation halted")
}
