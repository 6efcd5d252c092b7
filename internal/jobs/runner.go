package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// runner owns the cron scheduler of one job. A tick that fires while the previous run
// is still going is skipped.
type runner struct {
	name   string
	spec   string
	cron   *cron.Cron
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func newRunner(name, spec string, logger *slog.Logger) runner {
	ctx, cancel := context.WithCancel(context.Background())
	return runner{
		name:   name,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", name),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (r *runner) start(run func(context.Context)) error {
	if _, err := r.cron.AddFunc(r.spec, func() { run(r.ctx) }); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("job started", "schedule", r.spec)
	return nil
}

// stop cancels the running pass and waits for it to return.
func (r *runner) stop() {
	r.cancel()
	<-r.cron.Stop().Done()
	r.logger.Info("job stopped")
}
