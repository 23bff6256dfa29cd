package cover_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/journeo/coverd/src/assert"
	"github.com/journeo/coverd/src/cover"
	"github.com/journeo/coverd/src/cover/coverfakes"
)

// wikiRequest is a request received by the fake Wikipedia.
type wikiRequest struct {
	lang  string
	title string
	path  string
}

// fakeWikipedia is an httptest server which answers page summary requests with
// a different handler per language.
type fakeWikipedia struct {
	sync.Mutex
	srv      *httptest.Server
	requests []wikiRequest
	handlers map[string]http.HandlerFunc
}

func newFakeWikipedia(t *testing.T, handlers map[string]http.HandlerFunc) *fakeWikipedia {
	fw := &fakeWikipedia{handlers: handlers}
	fw.srv = httptest.NewServer(http.HandlerFunc(fw.serve))
	t.Cleanup(fw.srv.Close)
	return fw
}

func (fw *fakeWikipedia) serve(w http.ResponseWriter, req *http.Request) {
	// Paths look like /{lang}/page/summary/{title}
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 4)
	if len(parts) != 4 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	fw.Lock()
	fw.requests = append(fw.requests, wikiRequest{
		lang:  parts[0],
		title: parts[3],
		path:  req.URL.EscapedPath(),
	})
	handler, ok := fw.handlers[parts[0]]
	fw.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	handler(w, req)
}

func (fw *fakeWikipedia) resolver(opts ...cover.Option) *cover.Resolver {
	client := cover.NewSummaryClient("coverd/testing", 0, 0)
	client.SetAPIURLTemplate(fw.srv.URL + "/%s/page/summary/%s")
	return cover.NewResolver(cover.WikipediaLookups(client, "fr", "en"), opts...)
}

func (fw *fakeWikipedia) received() []wikiRequest {
	fw.Lock()
	defer fw.Unlock()
	return append([]wikiRequest(nil), fw.requests...)
}

func summaryJSON(thumbnail, pageType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if thumbnail == "" {
			fmt.Fprintf(w, `{"type": %q, "title": "Some page"}`, pageType)
			return
		}
		fmt.Fprintf(w, `{
			"type": %q,
			"title": "Some page",
			"thumbnail": {"source": %q, "width": 220, "height": 147}
		}`, pageType, thumbnail)
	}
}

// TestResolveKnownDestinationWithoutNetwork checks that titles in the keywords
// table never reach the lookups.
func TestResolveKnownDestinationWithoutNetwork(t *testing.T) {
	fakeLookup := &coverfakes.FakeLookup{}
	fakeLookup.NameReturns("fake")
	resolver := cover.NewResolver([]cover.Lookup{fakeLookup})

	res := resolver.ResolveResult(context.Background(), "Voyage à Paris", "")

	assert.Contains(t, res.URL, "images.unsplash.com")
	assert.Contains(t, res.URL, parisPhoto)
	assert.Equal(t, cover.SourceKeyword, res.Source)
	assert.Equal(t, 0, fakeLookup.LookupCallCount())
}

// TestResolveWikipediaThumbnail checks the golden path of finding a cover on the
// primary language Wikipedia.
func TestResolveWikipediaThumbnail(t *testing.T) {
	const thumb = "https://upload.wikimedia.org/wikipedia/commons/thumb/X/Y/220px-City.jpg"

	fw := newFakeWikipedia(t, map[string]http.HandlerFunc{
		"fr": summaryJSON(thumb, "standard"),
	})

	res := fw.resolver().ResolveResult(context.Background(), "Bruges", cover.SeasonWinter)

	assert.Contains(t, res.URL, "upload.wikimedia.org")
	assert.Contains(t, res.URL, "800px-City.jpg")
	assert.NotContains(t, res.URL, "220px-")
	assert.Equal(t, cover.SourceLookup, res.Source)
	assert.Equal(t, "Bruges", res.Destination)

	reqs := fw.received()
	if len(reqs) != 1 {
		t.Fatalf("expected exactly one API request but got %d", len(reqs))
	}
	assert.Equal(t, "fr", reqs[0].lang)
}

// TestResolveSkipsDisambiguation checks that disambiguation pages are never used
// even when they have a thumbnail.
func TestResolveSkipsDisambiguation(t *testing.T) {
	const thumb = "https://upload.wikimedia.org/thumb/X/Y/400px-Disamb.jpg"

	fw := newFakeWikipedia(t, map[string]http.HandlerFunc{
		"fr": summaryJSON(thumb, "disambiguation"),
		"en": summaryJSON(thumb, "disambiguation"),
	})

	res := fw.resolver().ResolveResult(context.Background(), "Springfield", "")

	assert.Equal(t, cover.SeasonURL(cover.DefaultSeason), res.URL)
	assert.Equal(t, cover.SourceSeason, res.Source)
}

// TestResolveFallsBackToSecondaryLanguage checks that the English Wikipedia is
// consulted when the French page has no thumbnail.
func TestResolveFallsBackToSecondaryLanguage(t *testing.T) {
	fw := newFakeWikipedia(t, map[string]http.HandlerFunc{
		"fr": summaryJSON("", "standard"),
		"en": summaryJSON(
			"https://upload.wikimedia.org/thumb/X/Y/400px-ENCity.jpg",
			"standard",
		),
	})

	url := fw.resolver().Resolve(context.Background(), "Ghent", cover.SeasonSummer)
	assert.Contains(t, url, "800px-ENCity.jpg")

	reqs := fw.received()
	if len(reqs) != 2 {
		t.Fatalf("expected two API requests but got %d", len(reqs))
	}
	assert.Equal(t, "fr", reqs[0].lang)
	assert.Equal(t, "en", reqs[1].lang)
}

// TestResolveNetworkErrors checks that failing lookups end up with the season
// photo for the requested season.
func TestResolveNetworkErrors(t *testing.T) {
	fakeFetcher := &coverfakes.FakeSummaryFetcher{}
	fakeFetcher.GetSummaryReturns(nil, errors.New("network error"))
	resolver := cover.NewResolver(cover.WikipediaLookups(fakeFetcher, "fr", "en"))

	url := resolver.Resolve(context.Background(), "xyznowhereplace", cover.SeasonWinter)
	assert.Contains(t, url, "images.unsplash.com")
	assert.Contains(t, url, winterPhoto)

	url = resolver.Resolve(context.Background(), "xyznowhereplace", "")
	assert.Contains(t, url, summerPhoto)

	assert.Equal(t, 4, fakeFetcher.GetSummaryCallCount())
	_, lang, title := fakeFetcher.GetSummaryArgsForCall(0)
	assert.Equal(t, "fr", lang)
	assert.Equal(t, "xyznowhereplace", title)
	_, lang, _ = fakeFetcher.GetSummaryArgsForCall(1)
	assert.Equal(t, "en", lang)
}

// TestResolveUnreachableWikipedia uses a closed server for a real connection
// error.
func TestResolveUnreachableWikipedia(t *testing.T) {
	fw := newFakeWikipedia(t, nil)
	resolver := fw.resolver()
	fw.srv.Close()

	url := resolver.Resolve(context.Background(), "Ghent", cover.SeasonAutumn)
	assert.Equal(t, cover.SeasonURL(cover.SeasonAutumn), url)
}

// TestResolveStripsTravelWords makes sure only the destination part of the title
// is sent to Wikipedia.
func TestResolveStripsTravelWords(t *testing.T) {
	fw := newFakeWikipedia(t, map[string]http.HandlerFunc{
		"fr": summaryJSON("", "standard"),
		"en": summaryJSON("", "standard"),
	})

	_ = fw.resolver().Resolve(context.Background(), "Voyage à Bruges", "")

	reqs := fw.received()
	if len(reqs) == 0 {
		t.Fatalf("Wikipedia was not queried at all")
	}
	assert.Contains(t, reqs[0].path, "Bruges")
	assert.NotContains(t, reqs[0].path, "Voyage")
	assert.Equal(t, "Bruges", reqs[0].title)
}

// TestResolveShortDestination checks that titles without a destination do not
// cause any lookups.
func TestResolveShortDestination(t *testing.T) {
	fakeLookup := &coverfakes.FakeLookup{}
	resolver := cover.NewResolver([]cover.Lookup{fakeLookup})

	for _, title := range []string{"", "Voyage", "5 jours", "Week-end à X"} {
		res := resolver.ResolveResult(context.Background(), title, cover.SeasonSpring)
		assert.Equal(t, cover.SourceSeason, res.Source, "title %q", title)
		assert.Contains(t, res.URL, springPhoto)
	}

	assert.Equal(t, 0, fakeLookup.LookupCallCount())
}

// TestResolveAttemptTimeout checks that a slow API is abandoned after the attempt
// timeout and the next language is still tried.
func TestResolveAttemptTimeout(t *testing.T) {
	fw := newFakeWikipedia(t, map[string]http.HandlerFunc{
		"fr": func(w http.ResponseWriter, req *http.Request) {
			select {
			case <-req.Context().Done():
			case <-time.After(5 * time.Second):
			}
		},
		"en": summaryJSON(
			"https://upload.wikimedia.org/thumb/X/Y/120px-Slow.jpg",
			"standard",
		),
	})

	resolver := fw.resolver(cover.WithAttemptTimeout(100 * time.Millisecond))

	started := time.Now()
	url := resolver.Resolve(context.Background(), "Ghent", "")
	elapsed := time.Since(started)

	assert.Contains(t, url, "800px-Slow.jpg")
	if elapsed > 3*time.Second {
		t.Errorf("resolution took %s, the attempt timeout was not respected", elapsed)
	}
}

// TestResolveLookupsAreSequential makes sure the second lookup only starts after
// the first one has finished.
func TestResolveLookupsAreSequential(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		overlap bool
	)

	lookup := func(ctx context.Context, _ string) (string, error) {
		mu.Lock()
		running++
		if running > 1 {
			overlap = true
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return "", cover.ErrNoThumbnail
	}

	first, second := &coverfakes.FakeLookup{}, &coverfakes.FakeLookup{}
	first.LookupCalls(lookup)
	second.LookupCalls(lookup)

	resolver := cover.NewResolver([]cover.Lookup{first, second})
	_ = resolver.Resolve(context.Background(), "Ghent", "")

	assert.Equal(t, 1, first.LookupCallCount())
	assert.Equal(t, 1, second.LookupCallCount())
	if overlap {
		t.Errorf("lookups were running concurrently")
	}
}

// TestResolveCancelledContext checks that a cancelled caller still gets the
// season photo.
func TestResolveCancelledContext(t *testing.T) {
	fw := newFakeWikipedia(t, map[string]http.HandlerFunc{
		"fr": summaryJSON("https://upload.wikimedia.org/a/b/220px-C.jpg", "standard"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	url := fw.resolver().Resolve(ctx, "Ghent", cover.SeasonWinter)
	assert.Equal(t, cover.SeasonURL(cover.SeasonWinter), url)
}

// TestResolveWithoutLookups checks that a resolver without lookups works as the
// static resolution.
func TestResolveWithoutLookups(t *testing.T) {
	resolver := cover.NewResolver(nil)

	for _, title := range []string{"Paris", "Bruges", ""} {
		assert.Equal(t,
			cover.ResolveStatic(title, cover.SeasonAutumn),
			resolver.Resolve(context.Background(), title, cover.SeasonAutumn),
		)
	}
}
