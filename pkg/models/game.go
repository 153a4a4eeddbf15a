package models

// GameCanonical is the normalized, internal form of a game listing
// used by the scraper and database layer.
//
// All external sources are mapped into this structure first,
// then we write to the DB from this representation.
type GameCanonical struct {
	ID          string            `json:"id"`                    // our canonical ID (slug of the cleaned title)
	Title       string            `json:"title"`                 // raw listing title as scraped
	CleanTitle  string            `json:"clean_title"`           // search-form cleaned title
	AltTitles   []string          `json:"alt_titles,omitempty"`  // raw titles seen on other sources
	Version     string            `json:"version,omitempty"`     // detected version, e.g. "0.6.6"
	Build       string            `json:"build,omitempty"`       // detected build number, e.g. "12345"
	Genres      []string          `json:"genres"`                // normalized tag list
	Year        int               `json:"year,omitempty"`        // release year (optional)
	Description string            `json:"description,omitempty"` // combined/longest description
	CoverURL    string            `json:"cover_url,omitempty"`   // cover image URL (if any)
	PageURL     string            `json:"page_url,omitempty"`    // listing page on the source site
	SourceIDs   map[string]string `json:"source_ids,omitempty"`  // e.g. {"wordpress": "1234", "mirror": "palworld"}
}
