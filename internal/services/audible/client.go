package audible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"shelfr/internal/asin"
	"shelfr/internal/services"
	"shelfr/internal/textutil"
)

// DefaultBaseURL is the public Audible catalog endpoint.
const DefaultBaseURL = "https://api.audible.com/1.0"

// Result is one ranked search result. Confidence is a 0..1 score combining
// title similarity with author agreement.
type Result struct {
	ASIN       string
	Title      string
	Authors    []string
	Confidence float64
}

// HTTPDoer describes the HTTP client used by the catalog client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Audible catalog search API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestsPerSecond overrides the default request throttle.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New creates a catalog client.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("audible base url required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type productAuthor struct {
	Name string `json:"name"`
}

type product struct {
	ASIN    string          `json:"asin"`
	Title   string          `json:"title"`
	Authors []productAuthor `json:"authors"`
}

type searchResponse struct {
	Products     []product `json:"products"`
	TotalResults int       `json:"total_results"`
}

// Search queries the catalog for editions matching the title/author pair
// and returns candidates ordered by descending confidence. Results whose
// ASIN fails validation are dropped rather than partially trusted.
func (c *Client) Search(ctx context.Context, title, author string) ([]Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrValidation, "audible", "search", "title is required", nil)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, services.Wrap(services.ErrTimeout, "audible", "search", "rate limit wait interrupted", err)
	}

	values := url.Values{}
	values.Set("title", title)
	if author = strings.TrimSpace(author); author != "" {
		values.Set("author", author)
	}
	values.Set("num_results", "10")
	values.Set("products_sort_by", "Relevance")

	endpoint := fmt.Sprintf("%s/catalog/products?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "audible", "search", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "audible", "search", "catalog request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrExternalTool, "audible", "search",
			fmt.Sprintf("catalog returned status %d", resp.StatusCode), nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "audible", "search", "decode catalog response", err)
	}

	return rankProducts(payload.Products, title, author), nil
}

// rankProducts scores and sorts catalog products locally: the API's
// relevance order is opaque, so the confidence the caller thresholds on is
// computed from token-fingerprint similarity we can reason about.
func rankProducts(products []product, queryTitle, queryAuthor string) []Result {
	queryTitleFP := textutil.NewFingerprint(queryTitle)
	queryAuthorFP := textutil.NewFingerprint(queryAuthor)

	results := make([]Result, 0, len(products))
	for _, p := range products {
		id := asin.Normalize(p.ASIN)
		if !asin.Valid(id) {
			continue
		}
		authors := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				authors = append(authors, name)
			}
		}

		titleSim := textutil.CosineSimilarity(queryTitleFP, textutil.NewFingerprint(p.Title))
		confidence := titleSim
		if queryAuthorFP != nil {
			var authorSim float64
			for _, name := range authors {
				if sim := textutil.CosineSimilarity(queryAuthorFP, textutil.NewFingerprint(name)); sim > authorSim {
					authorSim = sim
				}
			}
			confidence = 0.7*titleSim + 0.3*authorSim
		}

		results = append(results, Result{
			ASIN:       id,
			Title:      strings.TrimSpace(p.Title),
			Authors:    authors,
			Confidence: confidence,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results
}
