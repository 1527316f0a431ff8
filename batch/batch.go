// Package batch designs many independent differentiator filters in parallel.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hammal/difffilter"
	"github.com/hammal/difffilter/ssm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job describes a single filter design.
type Job struct {
	Order        uint
	TimeConstant float64
	Step         float64
	Convention   ssm.Convention
}

func (j Job) String() string {
	return fmt.Sprintf("order=%d tau=%g step=%g convention=%v", j.Order, j.TimeConstant, j.Step, j.Convention)
}

// Design runs every job on at most workers go routines and returns the
// filters in job order. workers <= 0 uses runtime.GOMAXPROCS(0). The first
// failing job cancels the jobs that haven't started yet and its error is
// returned. A nil logger disables logging.
func Design(ctx context.Context, jobs []Job, workers int, logger *zap.Logger) ([]*difffilter.Filter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := make([]*difffilter.Filter, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for index, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := logger.With(zap.Int("job", index), zap.Stringer("filter", job))
			log.Debug("designing filter")
			filter, err := difffilter.Design(job.Order, job.TimeConstant, job.Step, ssm.WithConvention(job.Convention))
			if err != nil {
				log.Debug("design failed", zap.Error(err))
				return fmt.Errorf("batch: job %d: %w", index, err)
			}
			// Each go routine owns its own slot
			res[index] = filter
			log.Debug("filter designed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
