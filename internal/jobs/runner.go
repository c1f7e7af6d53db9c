// Package jobs holds the scheduled maintenance tasks.
package jobs

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockgen -source=runner.go -destination=repository_mock.go -package=jobs

// Standing re-evaluates every customer's persisted status.
type Standing interface {
	EvaluateAll(ctx context.Context) (int, error)
}

type Runner struct {
	standing Standing
	timeout  time.Duration
}

func NewRunner(standing Standing) *Runner {
	return &Runner{standing: standing, timeout: 5 * time.Minute}
}

// RefreshStanding restricts customers whose loans crossed their due date
// and lifts restrictions that no longer apply. Loan status is not touched.
func (r *Runner) RefreshStanding() {
	r.runWithRecovery("RefreshStanding", func(ctx context.Context) {
		changed, err := r.standing.EvaluateAll(ctx)
		if err != nil {
			slog.Error("failed to refresh customer standing", "error", err)
			return
		}

		slog.Info("customer standing refreshed", "changed", changed)
	})
}

func (r *Runner) runWithRecovery(name string, fn func(ctx context.Context)) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("job panicked", "job", name, "panic", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	slog.Info("starting job", "job", name)
	fn(ctx)
	slog.Info("job completed", "job", name)
}
