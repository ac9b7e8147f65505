// Package pipeline runs a complete crawl of ekidata.jp.
//
// A crawl moves through a fixed sequence of stages:
//
//  1. fetch_lines: list the lines of every prefecture
//  2. fetch_stations: list the stations of every line found
//  3. save: deduplicate, sort and write the stations to disk
//
// Each fetch stage fans out over its inputs (see [fanout.Run]). A unit whose
// response cannot be parsed is logged and contributes nothing; a unit that
// cannot be fetched at all fails the crawl once its siblings have settled,
// and nothing is written.
//
// # Usage
//
//	client := ekidata.NewClient(ekidata.Options{Logger: logger})
//	runner := pipeline.NewRunner(client, logger, pipeline.Options{
//	    Output: "stations.json",
//	})
//	result, err := runner.Execute(ctx)
//
// [Runner.Handle] wraps Execute for callers that expect a single
// success-or-failure notification per invocation.
package pipeline

import (
	"time"

	"github.com/matzehuels/ekistations/pkg/ekidata"
	apperrors "github.com/matzehuels/ekistations/pkg/errors"
	"github.com/matzehuels/ekistations/pkg/stations"
)

// Stage identifies where a crawl is.
type Stage int

const (
	StageStart Stage = iota
	StageFetchLines
	StageFetchStations
	StageSave
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageStart:         "start",
	StageFetchLines:    "fetch_lines",
	StageFetchStations: "fetch_stations",
	StageSave:          "save",
	StageDone:          "done",
	StageFailed:        "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Options configures a crawl. Zero values select the defaults.
type Options struct {
	// Output is the file the stations are written to (default: stations.DefaultOutput).
	Output string
	// Concurrency caps in-flight requests per stage. Zero means no cap.
	Concurrency int
	// Prefectures restricts the crawl to a subset. Empty means all 47.
	Prefectures []ekidata.Prefecture
}

// ValidateAndSetDefaults fills in defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Output == "" {
		o.Output = stations.DefaultOutput
	}
	if err := apperrors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if o.Concurrency < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", o.Concurrency)
	}
	if len(o.Prefectures) == 0 {
		o.Prefectures = ekidata.Prefectures()
	}
	return nil
}

// Stats describes what a crawl did.
type Stats struct {
	Prefectures         int           // prefectures queried
	DegradedPrefectures int           // prefectures whose response did not parse
	Lines               int           // lines retrieved
	DegradedLines       int           // lines whose response did not parse
	Stations            int           // stations retrieved, duplicates included
	Saved               int           // stations written
	Elapsed             time.Duration // wall time of the whole crawl
}

// Duplicates is the number of records dropped by deduplication.
func (s Stats) Duplicates() int { return s.Stations - s.Saved }

// Result is the outcome of [Runner.Execute].
type Result struct {
	Stage  Stage  // StageDone on success, StageFailed otherwise
	Output string // file written
	Stats  Stats
}
