package cover

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/journeo/coverd/src/metrics"
)

// ErrCachedNoImage is returned by CachedLookup when a previous lookup for the
// same destination already found out there is no suitable image.
var ErrCachedNoImage = errors.New("no image (cached)")

// thumbnailSizeRegexp matches the width part of a Wikimedia thumbnail path, as
// in ".../thumb/a/ab/Bruges.jpg/320px-Bruges.jpg".
var thumbnailSizeRegexp = regexp.MustCompile(`/\d+px-`)

// thumbnailSize is the width requested from Wikimedia instead of the small
// default thumbnail width.
const thumbnailSize = "/800px-"

//counterfeiter:generate . Lookup

// Lookup is a single strategy for finding a cover image for a destination on
// some external service. The Resolver tries its lookups one after the other.
type Lookup interface {
	// Name identifies the lookup in logs, metrics and the lookup cache.
	Name() string

	// Lookup returns the URL of an image for `destination`. An error means
	// nothing usable was found, for whatever reason.
	Lookup(ctx context.Context, destination string) (string, error)
}

// SummaryLookup finds covers using the thumbnail of the Wikipedia page for
// the destination in a particular language edition.
type SummaryLookup struct {
	Lang    string
	Fetcher SummaryFetcher
}

// WikipediaLookups returns a SummaryLookup for every language in `langs`,
// in the same order.
func WikipediaLookups(fetcher SummaryFetcher, langs ...string) []Lookup {
	lookups := make([]Lookup, 0, len(langs))
	for _, lang := range langs {
		lookups = append(lookups, &SummaryLookup{Lang: lang, Fetcher: fetcher})
	}
	return lookups
}

// Name implements Lookup.
func (l *SummaryLookup) Name() string {
	return "wikipedia-" + l.Lang
}

// Lookup implements Lookup. The returned URL is the page thumbnail upscaled
// to 800 pixels wide.
func (l *SummaryLookup) Lookup(ctx context.Context, destination string) (string, error) {
	summary, err := l.Fetcher.GetSummary(ctx, l.Lang, destination)
	if err != nil {
		return "", err
	}

	// Fetchers other than SummaryClient may not check these.
	if summary == nil || summary.Type == summaryTypeDisambiguation {
		return "", ErrDisambiguation
	}
	if summary.Thumbnail == nil || summary.Thumbnail.Source == "" {
		return "", ErrNoThumbnail
	}

	return upscaleThumbnail(summary.Thumbnail.Source), nil
}

// upscaleThumbnail rewrites the first "/<width>px-" segment of a Wikimedia
// thumbnail URL so that a larger rendition is served. Nothing is downloaded
// or re-encoded.
func upscaleThumbnail(source string) string {
	loc := thumbnailSizeRegexp.FindStringIndex(source)
	if loc == nil {
		return source
	}
	return source[:loc[0]] + thumbnailSize + source[loc[1]:]
}

//counterfeiter:generate . LookupCache

// LookupCache stores the results of lookups. An empty thumbnail stands for
// "there is no image for this destination".
type LookupCache interface {
	Get(ctx context.Context, lookup, destination string) (thumbnail string, found bool, err error)
	Put(ctx context.Context, lookup, destination, thumbnail string) error
}

// CachedLookup wraps a Lookup and remembers its definitive answers in a
// LookupCache. Transient failures such as timeouts are never cached. Cache
// errors are logged and otherwise ignored.
type CachedLookup struct {
	wrapped Lookup
	cache   LookupCache
	logger  zerolog.Logger
}

// NewCachedLookup returns a Lookup which consults `cache` before calling
// `lookup`.
func NewCachedLookup(lookup Lookup, cache LookupCache, logger zerolog.Logger) *CachedLookup {
	return &CachedLookup{
		wrapped: lookup,
		cache:   cache,
		logger:  logger,
	}
}

// WithCache wraps every one of `lookups` with the same cache.
func WithCache(lookups []Lookup, cache LookupCache, logger zerolog.Logger) []Lookup {
	cached := make([]Lookup, 0, len(lookups))
	for _, l := range lookups {
		cached = append(cached, NewCachedLookup(l, cache, logger))
	}
	return cached
}

// Name implements Lookup.
func (c *CachedLookup) Name() string {
	return c.wrapped.Name()
}

// Lookup implements Lookup.
func (c *CachedLookup) Lookup(ctx context.Context, destination string) (string, error) {
	name := c.wrapped.Name()

	thumbnail, found, err := c.cache.Get(ctx, name, destination)
	switch {
	case err != nil:
		metrics.LookupCache.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("lookup", name).Msg("reading lookup cache")
	case found:
		metrics.LookupCache.WithLabelValues("hit").Inc()
		if thumbnail == "" {
			return "", ErrCachedNoImage
		}
		return thumbnail, nil
	default:
		metrics.LookupCache.WithLabelValues("miss").Inc()
	}

	thumbnail, err = c.wrapped.Lookup(ctx, destination)
	if err != nil && !IsDefinitive(err) {
		return "", err
	}

	if putErr := c.cache.Put(ctx, name, destination, thumbnail); putErr != nil {
		c.logger.Warn().Err(putErr).Str("lookup", name).Msg("storing into lookup cache")
	}

	return thumbnail, err
}

// IsDefinitive returns true for lookup errors which will not go away by simply
// trying again later. Such as the destination page not existing at all.
func IsDefinitive(err error) bool {
	if errors.Is(err, ErrNoThumbnail) ||
		errors.Is(err, ErrDisambiguation) ||
		errors.Is(err, ErrCachedNoImage) {
		return true
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}

	return false
}
