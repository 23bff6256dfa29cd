package cover

import (
	"fmt"
	"strings"
)

// Season is a season tag as used by the guides API.
type Season string

// All the seasons known to the guides API.
const (
	SeasonSummer Season = "ETE"
	SeasonSpring Season = "PRINTEMPS"
	SeasonAutumn Season = "AUTOMNE"
	SeasonWinter Season = "HIVER"
)

// DefaultSeason is used when a guide has no season set.
const DefaultSeason = SeasonSummer

// photoURLTemplate produces 800x500 cropped photos. The table identifiers below
// were picked to look good with exactly these parameters.
const photoURLTemplate = "https://images.unsplash.com/%s?w=800&h=500&fit=crop&q=80"

// defaultPhotoID is used for seasons which are not in seasonPhotos.
const defaultPhotoID = "photo-1476514525535-07fb3b4ae5f1"

type keywordEntry struct {
	keywords []string
	photoID  string
}

// destinationPhotos is scanned in order and the first entry with a matching
// keyword wins. Keywords are lowercase.
var destinationPhotos = []keywordEntry{
	{[]string{"paris", "france", "versailles", "louvre"}, "photo-1502602898657-3e91760cbb34"},
	{[]string{"lisbonne", "portugal", "lisbon", "porto"}, "photo-1513635269975-59663e0ac1ad"},
	{[]string{"londres", "london", "angleterre", "england", "bigben"}, "photo-1513635269975-59663e0ac1ad"},
	{[]string{"barcelone", "barcelona", "catalogne", "espagne", "madrid", "séville", "seville"}, "photo-1543783207-ec64e4d95325"},
	{[]string{"rome", "italie", "italy", "florence", "venise", "venice", "milan", "naples"}, "photo-1552832230-c0197dd311b5"},
	{[]string{"alsace", "strasbourg", "colmar", "haguenau"}, "photo-1615880484746-a134be9a6ecf"},
	{[]string{"chamonix", "alpes", "montagne", "mont-blanc", "grenoble", "savoie"}, "photo-1483728642387-6c3bdd6c93e5"},
	{[]string{"amsterdam", "pays-bas", "hollande", "netherlands"}, "photo-1534351590666-13e3e96b5702"},
	{[]string{"prague", "tchéquie", "czech", "bohème"}, "photo-1541832676-9b763b0239ab"},
	{[]string{"berlin", "allemagne", "germany", "munich", "hambourg"}, "photo-1587330979470-3595ac045ab0"},
	{[]string{"tokyo", "japon", "japan", "osaka", "kyoto"}, "photo-1540959733332-eab4deabeeaf"},
	{[]string{"marrakech", "maroc", "morocco", "casablanca", "fès"}, "photo-1597212618440-806262de4f8b"},
	{[]string{"new york", "newyork", "manhattan", "brooklyn", "états-unis", "usa"}, "photo-1534430480872-3498386e7856"},
	{[]string{"nice", "côte d'azur", "cannes", "antibes", "provence", "marseille"}, "photo-1555990790-e2f9a18823e0"},
	{[]string{"lyon", "bordeaux", "normandie", "bretagne", "rennes", "nantes"}, "photo-1499856374310-1bdcee7aba17"},
	{[]string{"grèce", "grece", "greece", "santorin", "santorini", "athènes", "mykonos"}, "photo-1533105079780-92b9be482077"},
	{[]string{"dubai", "abu dhabi", "émirats", "emirates"}, "photo-1581889470536-467bdbe30cd0"},
	{[]string{"bali", "indonésie", "indonesia", "thaïlande", "thailand", "asie", "asia"}, "photo-1537996194471-e657df975ab4"},
	{[]string{"new zealand", "nouvelle-zélande", "australie", "australia", "sydney"}, "photo-1506905925346-21bda4d32df4"},
	{[]string{"islande", "iceland", "scandinavie", "norvège", "norway", "suède", "sweden"}, "photo-1531168556467-80aace0d0144"},
}

var seasonPhotos = map[Season]string{
	SeasonSummer: "photo-1476514525535-07fb3b4ae5f1",
	SeasonSpring: "photo-1462275646964-a0e3386b89fa",
	SeasonAutumn: "photo-1507003211169-0a1dd7228f2d",
	SeasonWinter: "photo-1483728642387-6c3bdd6c93e5",
}

var seasonLabels = map[Season]string{
	SeasonSummer: "Été",
	SeasonSpring: "Printemps",
	SeasonAutumn: "Automne",
	SeasonWinter: "Hiver",
}

// Seasons returns all known seasons in calendar display order.
func Seasons() []Season {
	return []Season{SeasonSummer, SeasonSpring, SeasonAutumn, SeasonWinter}
}

// Known returns true if s is one of the seasons known to the guides API.
func (s Season) Known() bool {
	_, ok := seasonPhotos[s]
	return ok
}

// Label returns the human readable (French) name of the season. Unknown seasons
// are returned as is.
func (s Season) Label() string {
	if label, ok := seasonLabels[s]; ok {
		return label
	}
	return string(s)
}

// PhotoURL returns the full image URL for an Unsplash photo ID.
func PhotoURL(photoID string) string {
	return fmt.Sprintf(photoURLTemplate, photoID)
}

// SeasonURL returns the fallback cover for a season. Unknown or empty seasons
// get the default photo.
func SeasonURL(season Season) string {
	photoID, ok := seasonPhotos[season]
	if !ok {
		photoID = defaultPhotoID
	}
	return PhotoURL(photoID)
}

// ResolveStatic returns a cover URL for a guide without doing any I/O. It uses
// the destination keywords table and falls back to the season photo.
func ResolveStatic(title string, season Season) string {
	if photoID, ok := matchKeyword(title); ok {
		return PhotoURL(photoID)
	}
	return SeasonURL(season)
}

// ResolveStaticResult is the same as ResolveStatic but also reports which tier
// produced the URL.
func ResolveStaticResult(title string, season Season) Result {
	if photoID, ok := matchKeyword(title); ok {
		return Result{URL: PhotoURL(photoID), Source: SourceKeyword}
	}
	return Result{URL: SeasonURL(season), Source: SourceSeason}
}

func matchKeyword(title string) (string, bool) {
	lower := strings.ToLower(title)

	for _, entry := range destinationPhotos {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.photoID, true
			}
		}
	}

	return "", false
}
