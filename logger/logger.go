// Package logger provides structured logging for the workflow engine.
//
// This package wraps Go's standard log/slog with convenience functions for:
//   - Step transition logging (entry, completion, blocked entry)
//   - Disclosure decision logging (reveals, upgrades, achievements)
//   - Artifact detection logging
//   - Level-based verbosity control
//
// All exported functions use the global DefaultLogger which can be configured
// for different output formats and log levels.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// DefaultLogger is the global structured logger instance.
// It is safe for concurrent use and initialized with slog.LevelInfo by default.
var DefaultLogger *slog.Logger

func init() {
	level := slog.LevelInfo
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		switch strings.ToLower(envLevel) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	DefaultLogger = slog.New(handler)
}

// SetLevel changes the logging level for all subsequent log operations.
// This is safe for concurrent use as it replaces the entire logger instance.
func SetLevel(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	DefaultLogger = slog.New(handler)
}

// SetVerbose enables debug-level logging when verbose is true, otherwise sets info-level.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(slog.LevelDebug)
	} else {
		SetLevel(slog.LevelInfo)
	}
}

// Info logs an informational message with structured key-value attributes.
// Args should be provided in key-value pairs: key1, value1, key2, value2, ...
func Info(msg string, args ...any) {
	DefaultLogger.Info(msg, args...)
}

// InfoContext logs an informational message with context and structured attributes.
func InfoContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.InfoContext(ctx, msg, args...)
}

// Debug logs a debug-level message with structured attributes.
func Debug(msg string, args ...any) {
	DefaultLogger.Debug(msg, args...)
}

// DebugContext logs a debug message with context and structured attributes.
func DebugContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.DebugContext(ctx, msg, args...)
}

// Warn logs a warning message with structured attributes.
// Use for recoverable problems such as dangling graph references or unknown
// artifact type tags.
func Warn(msg string, args ...any) {
	DefaultLogger.Warn(msg, args...)
}

// WarnContext logs a warning message with context and structured attributes.
func WarnContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.WarnContext(ctx, msg, args...)
}

// Error logs an error message with structured attributes.
func Error(msg string, args ...any) {
	DefaultLogger.Error(msg, args...)
}

// ErrorContext logs an error message with context and structured attributes.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	DefaultLogger.ErrorContext(ctx, msg, args...)
}

// StepEntered logs a committed step entry.
func StepEntered(sessionID, stepID string, attrs ...any) {
	allAttrs := make([]any, 0, 4+len(attrs))
	allAttrs = append(allAttrs, "session", sessionID, "step", stepID)
	allAttrs = append(allAttrs, attrs...)
	Info("step entered", allAttrs...)
}

// StepBlocked logs a rejected step entry with its missing prerequisites.
func StepBlocked(sessionID, stepID string, missing []string) {
	Info("step entry blocked",
		"session", sessionID,
		"step", stepID,
		"missing_prerequisites", missing,
	)
}

// StepCompleted logs a committed step completion.
func StepCompleted(sessionID, stepID string, success bool, attrs ...any) {
	allAttrs := make([]any, 0, 6+len(attrs))
	allAttrs = append(allAttrs,
		"session", sessionID,
		"step", stepID,
		"success", success,
	)
	allAttrs = append(allAttrs, attrs...)
	Info("step completed", allAttrs...)
}

// FeaturesRevealed logs feature ids newly revealed by disclosure triggers.
func FeaturesRevealed(sessionID string, features []string) {
	Info("features revealed", "session", sessionID, "features", features)
}

// ComplexityUpgraded logs a committed complexity level transition.
func ComplexityUpgraded(sessionID, from, to string) {
	Info("complexity upgraded", "session", sessionID, "from", from, "to", to)
}

// AchievementUnlocked logs a newly unlocked achievement.
func AchievementUnlocked(sessionID, achievementID string) {
	Info("achievement unlocked", "session", sessionID, "achievement", achievementID)
}

// UnknownArtifact logs an unrecognized artifact type tag encountered while
// deriving completed steps. Unknown tags are never fatal.
func UnknownArtifact(artifactType string) {
	Warn("unknown artifact type, no step detected", "artifact_type", artifactType)
}
