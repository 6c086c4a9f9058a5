/*
Package rawg adapts the RAWG Video Games Database API to the Gamedex catalog.

It has two halves:

  - Client: the network half. Performs the HTTP calls (search-by-text,
    popularity listing) and decodes RAWG's wire format.
  - Adapter: the translation half. Maps provider-native [Game] records into
    the catalog's canonical shape and implements the provider interface the
    search orchestrator escalates to.

Provider failures are classified into [ErrUnavailable] and [ErrFormat]; the
orchestrator absorbs both and degrades to empty results rather than failing
the request.
*/
package rawg

import "errors"

var (
	// ErrUnavailable indicates the provider could not be reached or answered
	// with a server-side error (network failure, timeout, 5xx).
	ErrUnavailable = errors.New("rawg: provider unavailable")

	// ErrFormat indicates the provider answered with a payload that could not
	// be parsed.
	ErrFormat = errors.New("rawg: unparsable provider payload")
)

// Game is a provider-native record as returned by the RAWG /games endpoints.
//
// Search results carry only the summary fields; DescriptionRaw, Developers and
// Publishers are populated only on detail lookups and may be empty.
type Game struct {
	ID             int64          `json:"id"`
	Slug           string         `json:"slug"`
	Name           string         `json:"name"`
	DescriptionRaw string         `json:"description_raw"`
	Released       string         `json:"released"` // YYYY-MM-DD, may be empty
	BackgroundImg  string         `json:"background_image"`
	Rating         float64        `json:"rating"`   // 0–5
	Playtime       int            `json:"playtime"` // hours
	Genres         []NamedRef     `json:"genres"`
	Tags           []NamedRef     `json:"tags"`
	Platforms      []PlatformWrap `json:"platforms"`
	Developers     []NamedRef     `json:"developers"`
	Publishers     []NamedRef     `json:"publishers"`
}

// NamedRef is RAWG's generic {id, name} reference object.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PlatformWrap mirrors RAWG's nested platform wrapper.
type PlatformWrap struct {
	Platform NamedRef `json:"platform"`
}

// searchResponse is the paginated envelope RAWG wraps list results in.
type searchResponse struct {
	Count   int    `json:"count"`
	Results []Game `json:"results"`
}
