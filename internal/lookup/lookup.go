// Package lookup resolves free-text place queries to coordinates through
// Nominatim and fetches short Wikipedia summaries used to ground AI output.
// Lookups never fail loudly: any error yields an empty result and a log line.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pkordes/travel-journal/backend/internal/debounce"
	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/telemetry"
)

// Defaults for Options.
const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultWikipediaURL = "https://en.wikipedia.org"
	DefaultDebounce     = 500 * time.Millisecond
	MinQueryLength      = 3
	resultLimit         = 6
)

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	NominatimURL string
	WikipediaURL string
	UserAgent    string
	HTTPClient   *http.Client
	Cache        Cache
	Debounce     time.Duration
	Logger       *slog.Logger
	Metrics      *telemetry.Metrics
}

// Client performs place searches and reference lookups.
type Client struct {
	http      *http.Client
	nominatim string
	wikipedia string
	userAgent string
	cache     Cache
	log       *slog.Logger
	metrics   *telemetry.Metrics
	debouncer *debounce.Debouncer
}

// New returns a Client.
func New(opts Options) *Client {
	c := &Client{
		http:      opts.HTTPClient,
		nominatim: strings.TrimRight(opts.NominatimURL, "/"),
		wikipedia: strings.TrimRight(opts.WikipediaURL, "/"),
		userAgent: opts.UserAgent,
		cache:     opts.Cache,
		log:       opts.Logger,
		metrics:   opts.Metrics,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.nominatim == "" {
		c.nominatim = DefaultNominatimURL
	}
	if c.wikipedia == "" {
		c.wikipedia = DefaultWikipediaURL
	}
	if c.cache == nil {
		c.cache = NewMemoryCache()
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	wait := opts.Debounce
	if wait <= 0 {
		wait = DefaultDebounce
	}
	c.debouncer = debounce.New(wait)
	return c
}

// Close cancels any pending debounced search.
func (c *Client) Close() {
	c.debouncer.Stop()
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns up to six places matching query. Queries shorter than three
// characters after trimming return an empty list without touching the network.
func (c *Client) Search(ctx context.Context, query string) []domain.Place {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < MinQueryLength {
		c.metrics.RecordLookup(ctx, "search", telemetry.CacheSkip)
		return []domain.Place{}
	}
	if cached, ok := c.cache.Get(ctx, q); ok {
		c.metrics.RecordLookup(ctx, "search", telemetry.CacheHit)
		return cached
	}
	c.metrics.RecordLookup(ctx, "search", telemetry.CacheMiss)

	ctx, span := telemetry.Tracer().Start(ctx, "lookup.Search")
	defer span.End()

	places, err := c.fetchPlaces(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.WarnContext(ctx, "place search failed", "query", q, "error", err)
		return []domain.Place{}
	}
	span.SetAttributes(attribute.Int("lookup.results", len(places)))

	c.cache.Set(ctx, q, places)
	return places
}

func (c *Client) fetchPlaces(ctx context.Context, q string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(resultLimit))

	var results []nominatimResult
	if err := c.getJSON(ctx, c.nominatim+"/search?"+params.Encode(), &results); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(results))
	for _, r := range results {
		places = append(places, domain.Place{
			Label: r.DisplayName,
			Lat:   parseCoord(r.Lat),
			Lng:   parseCoord(r.Lon),
		})
	}
	return places, nil
}

// SearchPlaces is the debounced form of Search: rapid calls collapse into one
// lookup for the most recent query, run after the quiet window. cb always
// runs on another goroutine, including for short queries.
func (c *Client) SearchPlaces(query string, cb func([]domain.Place)) {
	c.debouncer.Call(func() {
		cb(c.Search(context.Background(), query))
	})
}

type wikiResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// WikiSummary fetches the summary of the article named by the text before the
// first comma of title. It returns nil when there is no usable key, the
// request fails, or the article has no extract.
func (c *Client) WikiSummary(ctx context.Context, title string) *domain.ReferenceSummary {
	head, _, _ := strings.Cut(title, ",")
	key := strings.TrimSpace(head)
	if key == "" {
		return nil
	}
	c.metrics.RecordLookup(ctx, "wiki", telemetry.CacheSkip)

	ctx, span := telemetry.Tracer().Start(ctx, "lookup.WikiSummary")
	defer span.End()

	var res wikiResponse
	if err := c.getJSON(ctx, c.wikipedia+"/api/rest_v1/page/summary/"+url.PathEscape(key), &res); err != nil {
		span.RecordError(err)
		c.log.DebugContext(ctx, "reference lookup failed", "title", key, "error", err)
		return nil
	}
	if res.Extract == "" {
		return nil
	}

	summary := &domain.ReferenceSummary{Title: res.Title, Extract: res.Extract}
	if summary.Title == "" {
		summary.Title = key
	}
	if page := res.ContentURLs.Desktop.Page; page != "" {
		summary.URL = &page
	}
	return summary
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: status %d", req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("GET %s: decode: %w", req.URL.Path, err)
	}
	return nil
}

func parseCoord(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
