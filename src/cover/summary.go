package cover

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/journeo/coverd/src/metrics"
)

const (
	summaryAPIURLTemplate = "https://%s.wikipedia.org/api/rest_v1/page/summary/%s"

	// summaryTypeDisambiguation is the page summary type for pages which list
	// the possible meanings of a title.
	summaryTypeDisambiguation = "disambiguation"

	// summaryBodyLimit caps how much of a summary response is read. Real
	// responses are a few kilobytes.
	summaryBodyLimit = 1024 * 1024

	breakerFailuresToTrip = 5
	breakerOpenTimeout    = 30 * time.Second
)

// ErrNoThumbnail is returned when a page summary was found but it has no
// thumbnail image.
var ErrNoThumbnail = errors.New("page summary has no thumbnail")

// ErrDisambiguation is returned when the found page is a disambiguation page.
// Its thumbnail, if any, is not about the destination.
var ErrDisambiguation = errors.New("page summary is for a disambiguation page")

// ErrRateLimited is returned when a request could not be made in time because
// of the client's own rate limit.
var ErrRateLimited = errors.New("summary API rate limit")

// HTTPStatusError is returned when the summary API responds with an unexpected
// HTTP status code.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("summary API (%s) returned HTTP %d", e.URL, e.StatusCode)
}

//counterfeiter:generate . SummaryFetcher

// SummaryFetcher defines a type which is capable of getting a Wikipedia page
// summary for a title in particular language edition.
type SummaryFetcher interface {
	GetSummary(ctx context.Context, lang, title string) (*Summary, error)
}

// Summary is the page summary as returned by the Wikipedia REST API. It
// defines only the fields used for finding covers.
type Summary struct {
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Thumbnail *SummaryImage `json:"thumbnail"`
}

// SummaryImage is an image in a page summary.
type SummaryImage struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SummaryClient is a client for the Wikipedia page summary REST API. It throttles
// itself with a limiter shared by all language editions and keeps a circuit
// breaker per language edition, so that an unreachable Wikipedia does not slow
// down every cover resolution. It is safe for concurrent use.
//
// It implements SummaryFetcher.
type SummaryClient struct {
	useragent   string
	urlTemplate string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      zerolog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[*Summary]
}

// NewSummaryClient returns a fully configured SummaryClient.
//
// Wikimedia asks API clients to identify themselves with a descriptive user
// agent, so `useragent` should contain a way to contact the operator. No more
// than `limit` requests per second are made, with bursts of up to `burst`. A
// zero limit disables throttling.
func NewSummaryClient(useragent string, limit float64, burst int) *SummaryClient {
	rateLimit := rate.Limit(limit)
	if limit <= 0 {
		rateLimit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &SummaryClient{
		useragent:   useragent,
		urlTemplate: summaryAPIURLTemplate,
		httpClient:  http.DefaultClient,
		limiter:     rate.NewLimiter(rateLimit, burst),
		logger:      zerolog.Nop(),
		breakers:    make(map[string]*gobreaker.CircuitBreaker[*Summary]),
	}
}

// SetLogger sets the logger used for reporting circuit breaker state changes.
func (c *SummaryClient) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// GetSummary returns the page summary for `title` from the `lang` Wikipedia.
// Summaries for pages without thumbnails and disambiguation pages are returned
// together with ErrNoThumbnail and ErrDisambiguation respectively.
func (c *SummaryClient) GetSummary(
	ctx context.Context,
	lang,
	title string,
) (*Summary, error) {
	// Waiting on the local limiter says nothing about Wikipedia's health so it
	// stays out of the breaker.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	summary, err := c.breaker(lang).Execute(func() (*Summary, error) {
		return c.fetch(ctx, lang, title)
	})
	if err != nil {
		return summary, err
	}

	if summary.Type == summaryTypeDisambiguation {
		return summary, ErrDisambiguation
	}

	if summary.Thumbnail == nil || summary.Thumbnail.Source == "" {
		return summary, ErrNoThumbnail
	}

	return summary, nil
}

func (c *SummaryClient) fetch(
	ctx context.Context,
	lang,
	title string,
) (*Summary, error) {
	endpointURL := fmt.Sprintf(
		c.urlTemplate,
		url.PathEscape(lang),
		url.PathEscape(title),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating summary API req: %w", err)
	}
	req.Header.Set("User-Agent", c.useragent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to summary API failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: endpointURL, StatusCode: resp.StatusCode}
	}

	var summary Summary
	dec := json.NewDecoder(io.LimitReader(resp.Body, summaryBodyLimit))
	if err := dec.Decode(&summary); err != nil {
		return nil, fmt.Errorf("decoding summary API response: %w", err)
	}

	return &summary, nil
}

func (c *SummaryClient) breaker(lang string) *gobreaker.CircuitBreaker[*Summary] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[lang]; ok {
		return cb
	}

	name := "wikipedia-" + lang
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Summary](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailuresToTrip
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	c.breakers[lang] = cb

	return cb
}

// breakerSuccess tells the circuit breaker which errors mean the API itself is
// healthy. Wikipedia answering "no such page" is a perfectly healthy API. The
// caller giving up is not the API's fault either.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode < http.StatusInternalServerError &&
			statusErr.StatusCode != http.StatusTooManyRequests
	}

	return false
}

func isBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}
