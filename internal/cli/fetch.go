package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ekistations/pkg/cache"
	"github.com/matzehuels/ekistations/pkg/ekidata"
	apperrors "github.com/matzehuels/ekistations/pkg/errors"
	"github.com/matzehuels/ekistations/pkg/pipeline"
)

// fetchFlags holds the per-run overrides of Config.
type fetchFlags struct {
	output       string
	baseURL      string
	concurrency  int
	timeout      time.Duration
	cacheTTL     time.Duration
	redisURL     string
	prefectures  []string
	invocationID string
}

// apply copies every flag the user set onto cfg.
func (f *fetchFlags) apply(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if flags.Changed("timeout") {
		cfg.Timeout.Duration = f.timeout
	}
	if flags.Changed("cache-ttl") {
		cfg.Cache.TTL.Duration = f.cacheTTL
	}
	if flags.Changed("redis-url") {
		cfg.Cache.RedisURL = f.redisURL
	}
}

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Crawl all stations and write them to a JSON file",
		Long: `Fetch lists the lines of every prefecture, then the stations of every line,
and writes the deduplicated stations sorted by longitude, latitude, name and line.

Responses that cannot be parsed are skipped with a warning. A request that fails
outright aborts the crawl and leaves any existing output untouched.`,
		Example: `  ekistations fetch
  ekistations fetch -o data/stations.json --concurrency 8
  ekistations fetch --prefecture 13 --prefecture 神奈川県`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default ./stations.json)")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "API root (default "+ekidata.DefaultBaseURL+")")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", 0, "max requests in flight per stage (0 = unbounded)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (0 = none)")
	cmd.Flags().DurationVar(&flags.cacheTTL, "cache-ttl", 0, "cache responses for this long (0 = no cache)")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "cache in Redis instead of on disk")
	cmd.Flags().StringSliceVarP(&flags.prefectures, "prefecture", "p", nil, "crawl only these prefectures (code or name, repeatable)")
	cmd.Flags().StringVar(&flags.invocationID, "invocation-id", "", "id attached to log lines (default random UUID)")

	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, flags *fetchFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(c.configPath, logger)
	if err != nil {
		return err
	}
	flags.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	prefs, err := selectPrefectures(flags.prefectures)
	if err != nil {
		return err
	}

	backend, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer backend.Close()

	defer registerLogHooks(logger)()

	client := ekidata.NewClient(ekidata.Options{
		BaseURL:   cfg.BaseURL,
		Cache:     backend,
		CacheTTL:  cfg.Cache.TTL.Duration,
		Timeout:   cfg.Timeout.Duration,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	})
	runner := pipeline.NewRunner(client, logger, pipeline.Options{
		Output:      cfg.Output,
		Concurrency: cfg.Concurrency,
		Prefectures: prefs,
	})

	result, err := runner.Handle(ctx, pipeline.Event{InvocationID: flags.invocationID}, cliReporter{})
	if err != nil {
		return reported(err)
	}
	printFetchStats(result.Stats)
	printFile(result.Output)
	return nil
}

// selectPrefectures resolves codes or names to prefectures. No arguments
// selects all of them.
func selectPrefectures(args []string) ([]ekidata.Prefecture, error) {
	if len(args) == 0 {
		return ekidata.Prefectures(), nil
	}
	var out []ekidata.Prefecture
	seen := make(map[string]bool)
	for _, arg := range args {
		p, ok := ekidata.LookupPrefecture(strings.TrimSpace(arg))
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown prefecture %q", arg)
		}
		if !seen[p.Code] {
			seen[p.Code] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// openCache returns the response cache selected by cfg. Caching is off
// unless a TTL is configured.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	if cfg.TTL.Duration <= 0 {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "open redis cache")
		}
		return rc, nil
	}
	dir, err := resolveCacheDir(cfg)
	if err != nil {
		return nil, err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "open file cache")
	}
	return fc, nil
}

func resolveCacheDir(cfg CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "locate cache directory")
	}
	return dir, nil
}

// =============================================================================
// Reporting
// =============================================================================

// cliReporter prints the outcome of a crawl to stdout.
type cliReporter struct{}

func (cliReporter) Succeed(msg string) { printSuccess("%s", msg) }
func (cliReporter) Fail(msg string)    { printError("%s", msg) }

// reportedError marks an error that has already been shown to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error { return reportedError{err} }

// IsReported reports whether err was already printed by a command, so the
// caller only needs to set the exit status.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
