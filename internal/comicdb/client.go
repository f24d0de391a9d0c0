package comicdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// remote status codes used by ComicVine-style APIs.
const (
	statusOK             = 1
	statusObjectNotFound = 101
)

// Client provides access to a ComicVine-style comic database API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables
// the limiter.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a comic database client.
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("comicdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("comicdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type seriesPayload struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	StartYear     string      `json:"start_year"`
	CountOfIssues json.Number `json:"count_of_issues"`
	Publisher     struct {
		Name string `json:"name"`
	} `json:"publisher"`
	Image struct {
		ThumbURL string `json:"thumb_url"`
	} `json:"image"`
}

type issuePayload struct {
	ID          json.Number `json:"id"`
	IssueNumber string      `json:"issue_number"`
	Name        string      `json:"name"`
	CoverDate   string      `json:"cover_date"`
}

type issueDetailPayload struct {
	issuePayload
	Description string `json:"description"`
	Rating      string `json:"rating"`
	SiteURL     string `json:"site_detail_url"`
	Volume      struct {
		Name      string `json:"name"`
		StartYear string `json:"start_year"`
		Publisher struct {
			Name string `json:"name"`
		} `json:"publisher"`
	} `json:"volume"`
	CharacterCredits []namedPayload  `json:"character_credits"`
	TeamCredits      []namedPayload  `json:"team_credits"`
	LocationCredits  []namedPayload  `json:"location_credits"`
	PersonCredits    []personPayload `json:"person_credits"`
	Image            struct {
		SuperURL string `json:"super_url"`
		ThumbURL string `json:"thumb_url"`
	} `json:"image"`
	AssociatedImages []struct {
		OriginalURL string `json:"original_url"`
	} `json:"associated_images"`
}

type namedPayload struct {
	Name string `json:"name"`
}

type personPayload struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type envelope[T any] struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Results    T      `json:"results"`
}

// SearchSeries implements Gateway.
func (c *Client) SearchSeries(ctx context.Context, terms string) ([]SeriesRef, error) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("query", terms)
	params.Set("resources", "volume")

	var payload envelope[[]seriesPayload]
	if err := c.get(ctx, "/search", params, &payload); err != nil {
		return nil, err
	}
	if err := checkEnvelope(payload.StatusCode, payload.Error); err != nil {
		return nil, err
	}

	refs := make([]SeriesRef, 0, len(payload.Results))
	for _, entry := range payload.Results {
		ref, err := NewSeriesRef(
			entry.ID.String(),
			entry.Name,
			entry.StartYear,
			entry.Publisher.Name,
			entry.CountOfIssues.String(),
			entry.Image.ThumbURL,
		)
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// ListIssues implements Gateway.
func (c *Client) ListIssues(ctx context.Context, seriesKey string) ([]IssueRef, error) {
	seriesKey = strings.TrimSpace(seriesKey)
	if seriesKey == "" {
		return nil, errors.New("series key must not be empty")
	}
	params := url.Values{}
	params.Set("filter", "volume:"+seriesKey)

	var payload envelope[[]issuePayload]
	if err := c.get(ctx, "/issues", params, &payload); err != nil {
		return nil, err
	}
	if err := checkEnvelope(payload.StatusCode, payload.Error); err != nil {
		return nil, err
	}

	refs := make([]IssueRef, 0, len(payload.Results))
	for _, entry := range payload.Results {
		ref, err := NewIssueRef(entry.ID.String(), entry.IssueNumber, entry.Name, coverYear(entry.CoverDate))
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// FetchIssue implements Gateway.
func (c *Client) FetchIssue(ctx context.Context, issueKey string) (*Issue, error) {
	issueKey = strings.TrimSpace(issueKey)
	if issueKey == "" {
		return nil, errors.New("issue key must not be empty")
	}

	var payload envelope[issueDetailPayload]
	if err := c.get(ctx, "/issue/"+url.PathEscape(issueKey), nil, &payload); err != nil {
		return nil, err
	}
	if err := checkEnvelope(payload.StatusCode, payload.Error); err != nil {
		return nil, err
	}

	detail := payload.Results
	issue := &Issue{
		IssueKey:        detail.ID.String(),
		IssueNumber:     strings.TrimSpace(detail.IssueNumber),
		Title:           strings.TrimSpace(detail.Name),
		SeriesName:      strings.TrimSpace(detail.Volume.Name),
		SeriesStartYear: normalizeYear(detail.Volume.StartYear),
		Publisher:       strings.TrimSpace(detail.Volume.Publisher.Name),
		Summary:         strings.TrimSpace(detail.Description),
		Webpage:         strings.TrimSpace(detail.SiteURL),
		Characters:      joinNames(detail.CharacterCredits),
		Teams:           joinNames(detail.TeamCredits),
		Locations:       joinNames(detail.LocationCredits),
	}
	if issue.IssueKey == "" {
		issue.IssueKey = issueKey
	}
	if len(detail.CoverDate) >= 4 {
		issue.Year = normalizeYear(detail.CoverDate[:4])
		if len(detail.CoverDate) >= 7 {
			issue.Month = strings.TrimLeft(detail.CoverDate[5:7], "0")
		}
	}
	if rating, err := strconv.ParseFloat(strings.TrimSpace(detail.Rating), 64); err == nil {
		issue.Rating = rating
	}
	applyPersonCredits(issue, detail.PersonCredits)
	if detail.Image.SuperURL != "" {
		issue.ImageURLs = append(issue.ImageURLs, detail.Image.SuperURL)
	} else if detail.Image.ThumbURL != "" {
		issue.ImageURLs = append(issue.ImageURLs, detail.Image.ThumbURL)
	}
	for _, img := range detail.AssociatedImages {
		if img.OriginalURL != "" {
			issue.ImageURLs = append(issue.ImageURLs, img.OriginalURL)
		}
	}
	return issue, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %w", ErrConnection, err)
		}
	}
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse comicdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("%w: execute request (latency=%v): %w", ErrConnection, latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: comicdb returned %d (latency=%v)", ErrConnection, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode comicdb response: %w", ErrConnection, err)
	}
	return nil
}

func checkEnvelope(statusCode int, message string) error {
	switch statusCode {
	case statusOK:
		return nil
	case statusObjectNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return fmt.Errorf("%w: remote status %d: %s", ErrConnection, statusCode, message)
	}
}

func coverYear(coverDate string) string {
	coverDate = strings.TrimSpace(coverDate)
	if len(coverDate) < 4 {
		return ""
	}
	return coverDate[:4]
}

func joinNames(entries []namedPayload) string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name := strings.TrimSpace(entry.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func applyPersonCredits(issue *Issue, credits []personPayload) {
	for _, credit := range credits {
		name := strings.TrimSpace(credit.Name)
		if name == "" {
			continue
		}
		for _, role := range strings.Split(strings.ToLower(credit.Role), ",") {
			switch strings.TrimSpace(role) {
			case "writer", "script":
				issue.Writer = appendName(issue.Writer, name)
			case "penciler", "penciller", "artist":
				issue.Penciller = appendName(issue.Penciller, name)
			case "inker":
				issue.Inker = appendName(issue.Inker, name)
			case "colorist", "colourist":
				issue.Colorist = appendName(issue.Colorist, name)
			case "letterer":
				issue.Letterer = appendName(issue.Letterer, name)
			case "cover":
				issue.CoverArtist = appendName(issue.CoverArtist, name)
			case "editor":
				issue.Editor = appendName(issue.Editor, name)
			}
		}
	}
}

func appendName(existing, name string) string {
	if existing == "" {
		return name
	}
	if strings.Contains(existing, name) {
		return existing
	}
	return existing + ", " + name
}
