package domain

// KeyPrefix namespaces all orgconnect keys in the document store.
const KeyPrefix = "orgconnect:"

// UnknownName is substituted when an organization document carries no name field.
const UnknownName = "Unknown"

// Location is an optional coordinate attached to an organization document.
// Latitude and Longitude are pointers: a document may carry a location object
// with either one absent, and such a document must rank as "no coordinates"
// rather than as (0, 0).
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// Organization is a stored organization document. Name and Location are the
// only fields this service interprets; everything else rides in Extra and is
// returned to clients unmodified.
type Organization struct {
	ID       string
	Name     string
	Location *Location
	Extra    map[string]any
}

// Coordinates returns the organization coordinate, ok=false when either
// latitude or longitude is absent.
func (o *Organization) Coordinates() (lat, lon float64, ok bool) {
	if o.Location == nil || o.Location.Latitude == nil || o.Location.Longitude == nil {
		return 0, 0, false
	}
	return *o.Location.Latitude, *o.Location.Longitude, true
}

// DisplayName returns the organization name, falling back to UnknownName.
func (o *Organization) DisplayName() string {
	if o.Name == "" {
		return UnknownName
	}
	return o.Name
}

// RankedOrganization is an organization enriched with its distance from the
// query coordinate, in kilometers rounded to two decimals.
type RankedOrganization struct {
	Organization
	DistanceKm float64
}

// CompletionResult is the outcome of a chat-completion call.
type CompletionResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
