package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// sagaStep is one compensable step of a multi-write operation. Steps run
// in order; when one fails, the compensations run in reverse, starting
// with the failed step itself so any partial work it applied is undone.
// Every compensate must therefore tolerate running after a step that
// applied nothing.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

func runSaga(ctx context.Context, logger *zap.Logger, steps []sagaStep) error {
	completed := make([]sagaStep, 0, len(steps))

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			toUndo := append(completed, step)
			for i := len(toUndo) - 1; i >= 0; i-- {
				if toUndo[i].compensate == nil {
					continue
				}
				if cerr := toUndo[i].compensate(ctx); cerr != nil {
					// Compensation is best effort; a failure here leaves the
					// partially-applied state the original design accepted.
					logger.Error("Saga compensation failed",
						zap.String("step", toUndo[i].name),
						zap.Error(cerr),
					)
				}
			}
			return fmt.Errorf("step %s failed: %w", step.name, err)
		}
		completed = append(completed, step)
	}

	return nil
}
