package models

type GameDB struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	CleanTitle  string   `json:"clean_title"`
	Version     string   `json:"version,omitempty"`
	Build       string   `json:"build,omitempty"`
	Genres      []string `json:"genres"`
	Year        int      `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	PageURL     string   `json:"page_url,omitempty"`

	// External store ids, e.g. {"steam": "1623730", "gog": "1164600"}.
	SourceIDs map[string]string `json:"source_ids,omitempty"`
}
