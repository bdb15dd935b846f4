// Package googlebooks queries the Google Books volumes API by ISBN and maps
// the first result into a catalog Book. One outbound call per invocation; no
// retries, no caching.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/isbn"
)

// PlaceholderImageURL is used when a result carries no thumbnail.
const PlaceholderImageURL = "https://placehold.co/400x640"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates a Google Books client. apiKey may be empty; the volumes
// endpoint serves unauthenticated requests at a lower quota.
func NewClient(apiKey string, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   "https://www.googleapis.com",
		apiKey:    apiKey,
		userAgent: userAgent,
	}
}

// volumesResponse matches books/v1/volumes search results.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title               string   `json:"title"`
	Authors             []string `json:"authors"`
	PublishedDate       string   `json:"publishedDate"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
	ImageLinks struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// FetchByISBN looks up a single ISBN and returns the mapped Book. Failures
// are reported through the catalog sentinel errors: ErrUpstream for network,
// non-2xx, and schema problems; ErrNoResults for zero matches; ErrBadMetadata
// when the result's ISBN-13 identifier fails normalization.
func (c *Client) FetchByISBN(ctx context.Context, rawISBN string) (catalog.Book, error) {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn.Strip(rawISBN))
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u := fmt.Sprintf("%s/books/v1/volumes?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return catalog.Book{}, fmt.Errorf("%w: %v", catalog.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return catalog.Book{}, fmt.Errorf("%w: %v", catalog.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return catalog.Book{}, fmt.Errorf("%w: unexpected status code %d", catalog.ErrUpstream, resp.StatusCode)
	}

	var res volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return catalog.Book{}, fmt.Errorf("%w: %v", catalog.ErrUpstream, err)
	}

	if res.TotalItems == 0 || len(res.Items) == 0 {
		return catalog.Book{}, fmt.Errorf("%w: isbn %s", catalog.ErrNoResults, rawISBN)
	}

	return mapVolume(res.Items[0].VolumeInfo)
}

func mapVolume(info volumeInfo) (catalog.Book, error) {
	identifier := ""
	for _, id := range info.IndustryIdentifiers {
		if id.Type == "ISBN_13" {
			identifier = id.Identifier
			break
		}
	}
	canonical, err := isbn.Normalize(identifier)
	if err != nil {
		return catalog.Book{}, fmt.Errorf("%w: %q", catalog.ErrBadMetadata, identifier)
	}

	author := "Unknown"
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	publishDate := "Unknown"
	if info.PublishedDate != "" {
		publishDate = info.PublishedDate
		if len(publishDate) > 4 {
			publishDate = publishDate[:4]
		}
	}

	imgURL := info.ImageLinks.Thumbnail
	if imgURL == "" {
		imgURL = PlaceholderImageURL
	}

	return catalog.Book{
		ISBN:        canonical,
		Title:       info.Title,
		Author:      author,
		PublishDate: publishDate,
		ImgURL:      imgURL,
	}, nil
}
