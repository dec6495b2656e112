// Package telemetry wraps logrus.FieldLogger with the handful of
// structured fields the merge driver needs on every log line
// (iteration number, tile keys, R²), the way other data-layer code in
// this ecosystem logs through sirupsen/logrus rather than the
// standard library's log package.
package telemetry

import (
	"github.com/sirupsen/logrus"
)

// Logger is a thin structured-logging facade over logrus.FieldLogger.
// Callers construct a Logger from whatever *logrus.Logger or
// *logrus.Entry fits their process; only New(nil) falls back to
// logrus's global standard logger.
type Logger struct {
	entry logrus.FieldLogger
}

// New wraps a logrus.FieldLogger. Passing nil returns a Logger backed
// by logrus.StandardLogger().
func New(base logrus.FieldLogger) Logger {
	if base == nil {
		base = logrus.StandardLogger()
	}

	return Logger{entry: base}
}

// Iteration logs one merge-loop step at info level with the fields a
// reader needs to follow progress: iteration number, the two merged
// tile keys, the new tile key, and the winning R².
func (l Logger) Iteration(iteration int, a, b, merged string, rSquared float64) {
	l.entry.WithFields(logrus.Fields{
		"iteration": iteration,
		"merged_a":  a,
		"merged_b":  b,
		"new_tile":  merged,
		"r_squared": rSquared,
	}).Info("merged tiles")
}

// Terminated logs the driver's stopping condition.
func (l Logger) Terminated(reason string, iterations, tileCount int) {
	l.entry.WithFields(logrus.Fields{
		"reason":     reason,
		"iterations": iterations,
		"tile_count": tileCount,
	}).Info("merge loop terminated")
}

// Warn logs a recovered, non-fatal condition (a gated or singular OLS
// evaluation) with the edge it occurred on.
func (l Logger) Warn(msg string, a, b string) {
	l.entry.WithFields(logrus.Fields{"a": a, "b": b}).Warn(msg)
}

// Error logs a fatal condition before the driver aborts the run.
func (l Logger) Error(msg string, err error) {
	l.entry.WithFields(logrus.Fields{"error": err}).Error(msg)
}
