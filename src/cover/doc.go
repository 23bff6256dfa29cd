/*
Package cover is responsible for finding a cover image for a travel guide using
nothing more than its title and the season it is meant for.

Resolution works in three tiers:

  - A static table of destination keywords. If any keyword is found in the
    lowercased title the corresponding photo is used. No network access.
  - A lookup on Wikipedia. The destination is extracted from the title by
    stripping durations, numbers and travel jargon. Then the page summary for
    it is requested, first from the French and then from the English Wikipedia.
    The page thumbnail is used if there is one and the page is not a
    disambiguation page.
  - A photo chosen by the guide's season.

The resolver never returns errors. Something is always rendered as a cover, so
every failure along the way degrades to the next tier and eventually to the
seasonal photo.

The following APIs are used:

  - Wikipedia REST API: https://en.wikipedia.org/api/rest_v1/
  - Unsplash image CDN: https://unsplash.com/documentation#dynamically-resizable-images
*/
package cover

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate
