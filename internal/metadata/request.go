package metadata

// Page describes one part of a multi-part publication.
type Page struct {
	Title       string
	Description string
	Ordinal     int
}

// Request is the immutable publication metadata built once per invocation.
type Request struct {
	// ZoneID is the platform taxonomy key classifying the content category.
	ZoneID int
	Title  string
	Tags   []string
	// Description may be empty; the platform caps it at 2000 characters.
	Description string
	// CoverRef points at a local cover image; empty means no cover.
	CoverRef string
	// DisallowReprint asks the platform to forbid re-publication by others.
	DisallowReprint bool
	// SourceAttribution names the original source for reprinted content.
	SourceAttribution string
	Pages             []Page
}

// Platform constraints enforced before any network call.
const (
	MaxTitleLength       = 80
	MaxTagCount          = 10
	MaxTagLength         = 20
	MaxDescriptionLength = 2000
)
