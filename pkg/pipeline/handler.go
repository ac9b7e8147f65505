package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	apperrors "github.com/matzehuels/ekistations/pkg/errors"
)

// Event is the payload that triggers a crawl.
type Event struct {
	// InvocationID tags every log line of the crawl. A random UUID is used
	// when empty.
	InvocationID string `json:"invocation_id,omitempty"`
}

// Reporter is told how a crawl ended.
type Reporter interface {
	Succeed(msg string)
	Fail(msg string)
}

// onceReporter forwards at most one notification to its target.
type onceReporter struct {
	once   sync.Once
	target Reporter
}

func (o *onceReporter) Succeed(msg string) { o.once.Do(func() { o.target.Succeed(msg) }) }
func (o *onceReporter) Fail(msg string)    { o.once.Do(func() { o.target.Fail(msg) }) }

// Handle runs one crawl for ev and calls exactly one of rep.Succeed or
// rep.Fail, exactly once. The crawl's result and error are returned as well
// so callers can pick an exit status.
func (r *Runner) Handle(ctx context.Context, ev Event, rep Reporter) (*Result, error) {
	id := ev.InvocationID
	if id == "" {
		id = uuid.NewString()
	}
	logger := r.logger().With("invocation", id)
	reporter := &onceReporter{target: rep}

	logger.Info("Start")
	start := time.Now()

	// Per-request warnings from the client pick the logger up from ctx.
	run := *r
	run.Logger = logger
	result, err := run.Execute(log.WithContext(ctx, logger))

	logger.Infof("Total time: %dms", time.Since(start).Milliseconds())
	if err != nil {
		logger.Error("Crawl failed", "stage", result.Stage, "err", err)
		reporter.Fail(fmt.Sprintf("Failed: %s", apperrors.UserMessage(err)))
		return result, err
	}
	reporter.Succeed(fmt.Sprintf("Finished: %d stations saved to %s", result.Stats.Saved, result.Output))
	return result, nil
}
