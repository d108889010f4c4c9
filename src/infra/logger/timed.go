package logger

import (
	"log/slog"
	"time"
)

// Timed runs fn and logs how long it took: a debug line on success, an
// error line on failure. The result and error of fn are returned unchanged.
func Timed[T any](log *slog.Logger, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		Error(log, op+" failed", "duration_ms", elapsed.Milliseconds(), "error", err)
		return v, err
	}
	Debug(log, op+" completed", "duration_ms", elapsed.Milliseconds())
	return v, nil
}
