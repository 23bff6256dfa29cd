package cover

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/journeo/coverd/src/metrics"
)

// DefaultAttemptTimeout bounds every single lookup attempt.
const DefaultAttemptTimeout = 5 * time.Second

// Source tells which tier of the resolution produced a cover URL.
type Source string

// All possible cover sources.
const (
	SourceKeyword Source = "keyword"
	SourceLookup  Source = "lookup"
	SourceSeason  Source = "season"
)

// Result is the outcome of a cover resolution.
type Result struct {
	URL    string `json:"url"`
	Source Source `json:"source"`

	// Destination is what was extracted from the title for looking up. It is
	// empty when no lookup was needed.
	Destination string `json:"destination,omitempty"`
}

// Resolver finds covers for guides. It first consults the static keywords
// table, then tries its lookups in order and finally falls back to the season
// photo. It is safe for concurrent use as long as its lookups are.
//
// Resolver never returns errors. Problems with the lookups are only visible
// in its logger and in the metrics.
type Resolver struct {
	lookups        []Lookup
	attemptTimeout time.Duration
	logger         zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger to which failed lookup attempts are reported at
// debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithAttemptTimeout changes the time limit of every lookup attempt.
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.attemptTimeout = timeout
		}
	}
}

// NewResolver returns a Resolver which will try `lookups` in order.
func NewResolver(lookups []Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		lookups:        lookups,
		attemptTimeout: DefaultAttemptTimeout,
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns a cover URL for a guide with this title and season. It
// always returns a usable URL.
func (r *Resolver) Resolve(ctx context.Context, title string, season Season) string {
	return r.ResolveResult(ctx, title, season).URL
}

// ResolveResult is the same as Resolve but also reports how the URL was found.
func (r *Resolver) ResolveResult(
	ctx context.Context,
	title string,
	season Season,
) Result {
	res := r.resolve(ctx, title, season)
	metrics.Resolutions.WithLabelValues(string(res.Source)).Inc()
	return res
}

func (r *Resolver) resolve(ctx context.Context, title string, season Season) Result {
	if photoID, ok := matchKeyword(title); ok {
		return Result{URL: PhotoURL(photoID), Source: SourceKeyword}
	}

	destination := ExtractDestination(title)
	if utf8.RuneCountInString(destination) < minDestinationLen {
		r.logger.Debug().Str("title", title).Msg("no destination in title")
		return Result{URL: SeasonURL(season), Source: SourceSeason}
	}

	for _, lookup := range r.lookups {
		imageURL, ok := r.attempt(ctx, lookup, destination)
		if ok {
			return Result{
				URL:         imageURL,
				Source:      SourceLookup,
				Destination: destination,
			}
		}
	}

	return Result{
		URL:         SeasonURL(season),
		Source:      SourceSeason,
		Destination: destination,
	}
}

// attempt runs a single lookup within its own time limit. The next attempt
// starts only after this one has returned.
func (r *Resolver) attempt(
	ctx context.Context,
	lookup Lookup,
	destination string,
) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()

	imageURL, err := lookup.Lookup(ctx, destination)
	if err == nil && imageURL != "" {
		metrics.LookupAttempts.WithLabelValues(lookup.Name(), metrics.OutcomeFound).Inc()
		return imageURL, true
	}

	outcome := metrics.OutcomeFailed
	if err == nil || IsDefinitive(err) {
		outcome = metrics.OutcomeNotFound
	}
	metrics.LookupAttempts.WithLabelValues(lookup.Name(), outcome).Inc()

	r.logger.Debug().
		Err(err).
		Str("lookup", lookup.Name()).
		Str("destination", destination).
		Str("reason", failureReason(err)).
		Msg("lookup attempt gave no cover")

	return "", false
}

func failureReason(err error) string {
	var statusErr *HTTPStatusError

	switch {
	case err == nil:
		return "empty result"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrDisambiguation):
		return "disambiguation"
	case errors.Is(err, ErrNoThumbnail):
		return "no thumbnail"
	case errors.Is(err, ErrCachedNoImage):
		return "cached no image"
	case errors.As(err, &statusErr):
		return "http status"
	case errors.Is(err, ErrRateLimited):
		return "rate limited"
	case isBreakerOpen(err):
		return "circuit open"
	default:
		return "error"
	}
}
