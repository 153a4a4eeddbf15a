package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"gamehub/pkg/models"
)

// WordPressSource fetches release listings from a WordPress-based indexing
// site through its public REST API (/wp-json/wp/v2/posts).
type WordPressSource struct {
	SourceName string // short key used in SourceIDs, e.g. "steamrip"
	BaseURL    string // site root, e.g. https://example-site.org
	Client     *http.Client
	PerPage    int // posts per request
	Max        int // maximum posts to fetch total (safety)
}

func NewWordPressSource(name, baseURL string) *WordPressSource {
	return &WordPressSource{
		SourceName: name,
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: 12 * time.Second},
		PerPage:    50,
		Max:        200,
	}
}

func (s *WordPressSource) Name() string { return s.SourceName }

type wpPost struct {
	ID    int    `json:"id"`
	Date  string `json:"date"`
	Link  string `json:"link"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func (s *WordPressSource) FetchAll(ctx context.Context) ([]models.GameCanonical, error) {
	var all []models.GameCanonical

	page := 1
	fetched := 0

	for fetched < s.Max {
		u, err := url.Parse(s.BaseURL + "/wp-json/wp/v2/posts")
		if err != nil {
			return nil, fmt.Errorf("%s: bad base url: %w", s.SourceName, err)
		}
		q := u.Query()
		q.Set("per_page", strconv.Itoa(s.PerPage))
		q.Set("page", strconv.Itoa(page))
		q.Set("orderby", "date")
		q.Set("order", "desc")
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%s: build request: %w", s.SourceName, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s: request: %w", s.SourceName, err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		// WordPress answers 400 with rest_post_invalid_page_number once the
		// page runs past the end; treat it as end of data.
		if resp.StatusCode == http.StatusBadRequest && page > 1 {
			break
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s: status %d: %s", s.SourceName, resp.StatusCode, string(body))
		}

		var posts []wpPost
		if err := json.Unmarshal(body, &posts); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", s.SourceName, err)
		}
		if len(posts) == 0 {
			break
		}

		for _, p := range posts {
			// Entity decoding happens here, at the boundary: the core
			// normalizer expects an already-decoded title.
			rawTitle := html.UnescapeString(p.Title.Rendered)
			if rawTitle == "" {
				continue
			}

			g := models.GameCanonical{
				Title:       rawTitle,
				Description: html.UnescapeString(tagRe.ReplaceAllString(p.Excerpt.Rendered, "")),
				PageURL:     p.Link,
				Year:        postYear(p.Date),
				SourceIDs:   map[string]string{s.SourceName: strconv.Itoa(p.ID)},
			}
			all = append(all, g)
			fetched++
			if fetched >= s.Max {
				break
			}
		}

		page++
	}

	return all, nil
}

func postYear(date string) int {
	t, err := time.Parse("2006-01-02T15:04:05", date)
	if err != nil {
		return 0
	}
	return t.Year()
}
