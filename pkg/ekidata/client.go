package ekidata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ekistations/pkg/cache"
	apperrors "github.com/matzehuels/ekistations/pkg/errors"
	"github.com/matzehuels/ekistations/pkg/fanout"
	"github.com/matzehuels/ekistations/pkg/integrations"
)

// DefaultBaseURL is the root of the public ekidata.jp API.
const DefaultBaseURL = "http://www.ekidata.jp/api"

const cacheNamespace = "ekidata"

var (
	errNoStations = errors.New("response has no station_l field")
	errNotObject  = errors.New("response is not an object")
)

// Options configures a [Client]. Zero values select the defaults.
type Options struct {
	BaseURL   string        // API root (default: DefaultBaseURL)
	Cache     cache.Cache   // Response cache (default: none)
	CacheTTL  time.Duration // How long responses are cached (0 disables caching)
	Timeout   time.Duration // Per-request timeout (0 means none)
	UserAgent string        // Optional User-Agent header
	Logger    *log.Logger   // Warnings for unparseable responses (default: log.Default()); a logger in the request context takes precedence
}

// Client fetches lines and stations from ekidata.jp.
//
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	var headers map[string]string
	if opts.UserAgent != "" {
		headers = map[string]string{"User-Agent": opts.UserAgent}
	}

	hc := integrations.NewClient(opts.Cache, cacheNamespace, opts.CacheTTL, headers)
	hc.SetTimeout(opts.Timeout)

	return &Client{
		Client:  hc,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		logger:  opts.Logger,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// LinesByPrefecture lists the lines running through p.
//
// A missing or empty "line" field yields an OK result with no items. A body
// that does not parse, or that is not a JSON object (such as null), is logged
// and yields a degraded result.
func (c *Client) LinesByPrefecture(ctx context.Context, p Prefecture) fanout.Result[Line] {
	body, err := c.GetText(ctx, c.prefectureURL(p.Code))
	if err != nil {
		return fanout.Failed[Line](fmt.Errorf("lines of %s: %w", p.Name, err))
	}

	var resp *prefectureResponse
	err = Decode(body, &resp)
	if err == nil && resp == nil {
		err = errNotObject
	}
	if err != nil {
		c.loggerFor(ctx).Warn("Failed to parse lines", "prefecture", p.Name, "err", err)
		return fanout.Degraded[Line](apperrors.Wrap(apperrors.ErrCodeMalformed, err, "lines of %s", p.Name))
	}
	return fanout.OK(resp.Line)
}

// StationsByLine lists the stations on l, each tagged with l's name.
//
// A body that does not parse, or that has no "station_l" field, is logged
// and yields a degraded result. Individual stations whose coordinates are
// missing or not numeric are skipped with a warning.
func (c *Client) StationsByLine(ctx context.Context, l Line) fanout.Result[Station] {
	body, err := c.GetText(ctx, c.lineURL(l.Code))
	if err != nil {
		return fanout.Failed[Station](fmt.Errorf("stations of %s: %w", l.Name, err))
	}

	var resp lineResponse
	err = Decode(body, &resp)
	if err == nil && resp.StationL == nil {
		err = errNoStations
	}
	if err != nil {
		c.loggerFor(ctx).Warn("Failed to parse stations", "line", l.Name, "err", err)
		return fanout.Degraded[Station](apperrors.Wrap(apperrors.ErrCodeMalformed, err, "stations of %s", l.Name))
	}

	entries := *resp.StationL
	stations := make([]Station, 0, len(entries))
	for _, e := range entries {
		if !e.Lon.valid() || !e.Lat.valid() {
			c.loggerFor(ctx).Warn("Skipping station with invalid coordinates", "line", l.Name, "station", e.Name)
			continue
		}
		stations = append(stations, Station{
			Line: l.Name,
			Name: e.Name,
			Lon:  float64(*e.Lon),
			Lat:  float64(*e.Lat),
		})
	}
	return fanout.OK(stations)
}

// loggerFor returns the logger attached to ctx with log.WithContext, falling
// back to the client's own.
func (c *Client) loggerFor(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(log.ContextKey).(*log.Logger); ok {
		return l
	}
	return c.logger
}

func (c *Client) prefectureURL(code string) string {
	return fmt.Sprintf("%s/p/%s.json", c.baseURL, url.PathEscape(code))
}

func (c *Client) lineURL(code string) string {
	return fmt.Sprintf("%s/l/%s.json", c.baseURL, url.PathEscape(code))
}
