package cover

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Durations such as "5 jours", "3 semaines" or "2 weeks". French text
	// often has a non-breaking space between the number and the unit.
	durationRegexp = regexp.MustCompile(
		`(?i)\d+[\s\p{Zs}]*(jours?|semaines?|mois|nuits?|heures?|days?|weeks?|months?)`,
	)
	bareNumberRegexp = regexp.MustCompile(`\b\d+\b`)
	dashRegexp       = regexp.MustCompile(`[\s\p{Zs}]*[-–—][\s\p{Zs}]*`)
)

// travelWords are words commonly found in guide titles which say nothing about
// the destination itself.
var travelWords = toSet(
	"voyage", "guide", "trip", "road", "circuit", "séjour", "sejour",
	"découverte", "decouverte", "tour", "week", "end", "weekend", "vacances",
	"escapade", "aventure", "itinéraire", "itineraire", "highlights", "exploring",
	"visite", "autour", "balade", "randonnée", "randonnee", "getaway", "journey",
)

// prepositions are French and English prepositions, conjunctions and possessives.
var prepositions = toSet(
	"à", "a", "en", "au", "aux", "de", "du", "des", "dans", "sur",
	"par", "pour", "et", "and", "or", "ou", "my", "mes", "notre", "nos",
	"the", "in", "at", "of", "with", "through", "via",
)

// minDestinationLen is the shortest destination worth looking up.
const minDestinationLen = 2

// ExtractDestination strips a guide title down to the words which probably
// name its destination. "Voyage à Bruges - 5 jours" becomes "Bruges". The
// original case of the kept words is preserved.
func ExtractDestination(title string) string {
	s := durationRegexp.ReplaceAllString(title, " ")
	s = bareNumberRegexp.ReplaceAllString(s, " ")
	s = dashRegexp.ReplaceAllString(s, " ")

	var words []string
	for _, word := range strings.Fields(s) {
		if utf8.RuneCountInString(word) <= 1 {
			continue
		}

		lower := strings.ToLower(word)
		if _, ok := travelWords[lower]; ok {
			continue
		}
		if _, ok := prepositions[lower]; ok {
			continue
		}

		words = append(words, word)
	}

	return strings.Join(words, " ")
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
