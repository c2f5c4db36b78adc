// Package flights searches flight offers through the Amadeus Self-Service API
// and reduces them to the compact shape the journal displays.
// Offers are informational only; nothing here books or prices a ticket.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/pkordes/travel-journal/backend/internal/telemetry"
)

// Base URLs selected by AMADEUS_ENV.
const (
	TestBaseURL       = "https://test.api.amadeus.com"
	ProductionBaseURL = "https://api.amadeus.com"
)

var (
	// ErrMissingCredentials means no client id/secret is configured.
	ErrMissingCredentials = errors.New("Missing AMADEUS_CLIENT_ID/AMADEUS_CLIENT_SECRET")
	// ErrMissingParams is returned for searches without the three required fields.
	ErrMissingParams = errors.New("origin, destination, departureDate are required")
)

// UpstreamError is a non-2xx answer from the offers endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Amadeus error %d", e.StatusCode)
}

// SearchParams are the inputs of a one-shot offer search.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	NonStop       bool
	CurrencyCode  string
	Max           int
}

// Defaults applied by Search to zero values.
const (
	DefaultAdults = 1
	DefaultMax    = 15
)

// Validate checks the required fields.
func (p SearchParams) Validate() error {
	if p.Origin == "" || p.Destination == "" || p.DepartureDate == "" {
		return ErrMissingParams
	}
	return nil
}

func (p SearchParams) query() url.Values {
	adults, limit := p.Adults, p.Max
	if adults <= 0 {
		adults = DefaultAdults
	}
	if limit <= 0 {
		limit = DefaultMax
	}
	qs := url.Values{}
	qs.Set("originLocationCode", p.Origin)
	qs.Set("destinationLocationCode", p.Destination)
	qs.Set("departureDate", p.DepartureDate)
	qs.Set("adults", strconv.Itoa(adults))
	qs.Set("nonStop", strconv.FormatBool(p.NonStop))
	qs.Set("max", strconv.Itoa(limit))
	if p.ReturnDate != "" {
		qs.Set("returnDate", p.ReturnDate)
	}
	if p.CurrencyCode != "" {
		qs.Set("currencyCode", p.CurrencyCode)
	}
	return qs
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	Metrics      *telemetry.Metrics
}

// Client searches offers. The access token is fetched with the OAuth2
// client-credentials grant and reused until it expires.
type Client struct {
	base    string
	http    *http.Client
	tokens  oauth2.TokenSource
	metrics *telemetry.Metrics
}

// New returns a Client. Missing credentials are reported by Search, not here.
func New(opts Options) *Client {
	c := &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		metrics: opts.Metrics,
	}
	if c.base == "" {
		c.base = TestBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.ClientID != "" && opts.ClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     c.base + "/v1/security/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.http)
		c.tokens = oauth2.ReuseTokenSource(nil, cc.TokenSource(ctx))
	}
	return c
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool { return c.tokens != nil }

type rawResponse struct {
	Data []rawOffer `json:"data"`
}

type rawOffer struct {
	ID                     string   `json:"id"`
	OneWay                 *bool    `json:"oneWay"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	Price                  struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string       `json:"duration"`
		Segments []rawSegment `json:"segments"`
	} `json:"itineraries"`
}

type rawSegment struct {
	Departure struct {
		IATACode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IATACode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode   string `json:"carrierCode"`
	Number        string `json:"number"`
	Duration      string `json:"duration"`
	NumberOfStops *int   `json:"numberOfStops"`
}

// Search returns the simplified offers for p.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Offer, error) {
	offers, err := c.search(ctx, p)
	c.metrics.RecordFlightSearch(ctx, outcome(err))
	return offers, err
}

func (c *Client) search(ctx context.Context, p SearchParams) ([]Offer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if c.tokens == nil {
		return nil, ErrMissingCredentials
	}

	ctx, span := telemetry.Tracer().Start(ctx, "flights.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("flights.origin", p.Origin),
		attribute.String("flights.destination", p.Destination),
	)

	tok, err := c.tokens.Token()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token")
		return nil, tokenError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v2/shopping/flight-offers?"+p.query().Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("flights.Client.Search: %w", err)
	}
	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("flights.Client.Search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flights.Client.Search: read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("flights.Client.Search: decode: %w", err)
	}

	offers := make([]Offer, 0, len(raw.Data))
	for _, o := range raw.Data {
		offers = append(offers, simplify(o))
	}
	span.SetAttributes(attribute.Int("flights.offers", len(offers)))
	return offers, nil
}

func tokenError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return fmt.Errorf("Amadeus token error %d: %s", re.Response.StatusCode, re.Body)
	}
	return fmt.Errorf("Amadeus token error: %w", err)
}

func outcome(err error) string {
	var up *UpstreamError
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, ErrMissingCredentials), errors.Is(err, ErrMissingParams):
		return telemetry.OutcomeConfig
	case errors.As(err, &up):
		return telemetry.OutcomeUpstream
	default:
		return telemetry.OutcomeError
	}
}
