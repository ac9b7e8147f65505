package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ekistations/pkg/ekidata"
	apperrors "github.com/matzehuels/ekistations/pkg/errors"
	"github.com/matzehuels/ekistations/pkg/fanout"
	"github.com/matzehuels/ekistations/pkg/observability"
	"github.com/matzehuels/ekistations/pkg/stations"
)

// Fetcher retrieves lines and stations. [*ekidata.Client] implements it.
type Fetcher interface {
	LinesByPrefecture(ctx context.Context, p ekidata.Prefecture) fanout.Result[ekidata.Line]
	StationsByLine(ctx context.Context, l ekidata.Line) fanout.Result[ekidata.Station]
}

// Runner executes crawls.
//
// A Runner holds no state between crawls; concurrent calls to Execute are
// safe as long as they write to different outputs.
type Runner struct {
	Client  Fetcher
	Logger  *log.Logger
	Options Options
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(client Fetcher, logger *log.Logger, opts Options) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Client:  client,
		Logger:  logger,
		Options: opts,
	}
}

// Execute runs fetch_lines → fetch_stations → save.
//
// The returned Result is never nil. On error its Stage is [StageFailed] and
// the error carries a [apperrors.ErrCodeTransport] or [apperrors.ErrCodeSave]
// code naming the stage that failed.
func (r *Runner) Execute(ctx context.Context) (*Result, error) {
	start := time.Now()
	opts := r.Options
	logger := r.logger()
	result := &Result{Stage: StageStart}

	fail := func(err error) (*Result, error) {
		result.Stage = StageFailed
		result.Stats.Elapsed = time.Since(start)
		return result, err
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fail(fmt.Errorf("invalid options: %w", err))
	}
	if r.Client == nil {
		return fail(apperrors.New(apperrors.ErrCodeInternal, "runner has no client"))
	}
	result.Output = opts.Output
	fo := fanout.Options{Limit: opts.Concurrency}

	// Stage 1: lines of every prefecture
	result.Stage = StageFetchLines
	result.Stats.Prefectures = len(opts.Prefectures)
	logger.Info("Getting lines", "prefectures", len(opts.Prefectures))

	var lines []ekidata.Line
	err := r.stage(ctx, StageFetchLines, func() (int, error) {
		var (
			sum fanout.Summary
			err error
		)
		lines, sum, err = fanout.Run(ctx, opts.Prefectures, fo,
			reportDegraded(StageFetchLines, func(p ekidata.Prefecture) string { return p.Name }, r.Client.LinesByPrefecture))
		result.Stats.DegradedPrefectures = sum.Degraded
		return len(lines), err
	})
	if err != nil {
		return fail(apperrors.Wrap(apperrors.ErrCodeTransport, err, "fetch lines"))
	}
	result.Stats.Lines = len(lines)
	logger.Infof("%d lines retrieved", len(lines))

	// Stage 2: stations of every line
	result.Stage = StageFetchStations
	logger.Info("Getting stations", "lines", len(lines))

	var found []ekidata.Station
	err = r.stage(ctx, StageFetchStations, func() (int, error) {
		var (
			sum fanout.Summary
			err error
		)
		found, sum, err = fanout.Run(ctx, lines, fo,
			reportDegraded(StageFetchStations, func(l ekidata.Line) string { return l.Name }, r.Client.StationsByLine))
		result.Stats.DegradedLines = sum.Degraded
		return len(found), err
	})
	if err != nil {
		return fail(apperrors.Wrap(apperrors.ErrCodeTransport, err, "fetch stations"))
	}
	result.Stats.Stations = len(found)
	logger.Infof("%d stations retrieved", len(found))

	// Stage 3: dedup, sort, write
	result.Stage = StageSave
	logger.Info("Saving stations", "path", opts.Output)

	err = r.stage(ctx, StageSave, func() (int, error) {
		n, err := stations.Save(opts.Output, found)
		result.Stats.Saved = n
		return n, err
	})
	if err != nil {
		return fail(apperrors.Wrap(apperrors.ErrCodeSave, err, "save %s", opts.Output))
	}
	if d := result.Stats.Duplicates(); d > 0 {
		logger.Debug("Removed duplicate stations", "count", d)
	}
	logger.Infof("%d stations saved", result.Stats.Saved)

	result.Stage = StageDone
	result.Stats.Elapsed = time.Since(start)
	return result, nil
}

// stage runs fn between the stage start and completion hooks.
func (r *Runner) stage(ctx context.Context, s Stage, fn func() (int, error)) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s.String())
	start := time.Now()
	n, err := fn()
	hooks.OnStageComplete(ctx, s.String(), n, time.Since(start), err)
	return err
}

// reportDegraded wraps fn so that every degraded unit is passed to the
// pipeline hooks under the given stage.
func reportDegraded[In, Out any](s Stage, name func(In) string, fn func(context.Context, In) fanout.Result[Out]) func(context.Context, In) fanout.Result[Out] {
	return func(ctx context.Context, in In) fanout.Result[Out] {
		res := fn(ctx, in)
		if res.Status == fanout.StatusDegraded {
			observability.Pipeline().OnDegraded(ctx, s.String(), name(in), res.Err)
		}
		return res
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
