// Package recruitee implements the HTTP gateway client for the Recruitee
// REST API, along with the search filter builder and pagination helpers.
package recruitee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/recruitee-mcp/recruitee-mcp/internal/config"
	"github.com/recruitee-mcp/recruitee-mcp/internal/logging"
)

// Params holds optional query parameters. Entries with a nil value are
// dropped before URL encoding; slice values repeat the key.
type Params map[string]interface{}

// Client is a stateless HTTP client for the Recruitee API. Its configuration
// is read-only after construction, so a single instance is safe for
// concurrent use.
type Client struct {
	companyID  string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// New builds a client from config. When an API token is configured the
// bearer credential is attached by an oauth2 static token source; otherwise
// calls go out unauthenticated and the remote API decides whether to reject.
func New(cfg config.Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.APIToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIToken,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = cfg.Timeout
	}
	return &Client{
		companyID:  cfg.CompanyID,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListOffersOptions narrows an offer listing. Zero values mean "absent".
type ListOffersOptions struct {
	Scope              string // "archived", "active", "not_archived", "published"
	ViewMode           string // "brief" or "default"
	Limit              int
	Offset             int
	IncludeDescription bool
}

// ListOffers returns job offers for the configured company.
func (c *Client) ListOffers(ctx context.Context, opts ListOffersOptions) (map[string]interface{}, error) {
	params := Params{}
	if opts.Scope != "" {
		params["scope"] = opts.Scope
	}
	if opts.ViewMode != "" {
		params["view_mode"] = opts.ViewMode
	}
	if opts.Limit > 0 {
		params["limit"] = opts.Limit
	}
	if opts.Offset > 0 {
		params["offset"] = opts.Offset
	}
	if opts.IncludeDescription {
		params["include_description"] = "true"
	}
	return c.request(ctx, http.MethodGet, "offers", params, nil)
}

// GetOffer returns a single offer by identifier.
func (c *Client) GetOffer(ctx context.Context, offerID string) (map[string]interface{}, error) {
	return c.request(ctx, http.MethodGet, "offers/"+url.PathEscape(offerID), nil, nil)
}

// ListPipelines returns the recruiting pipelines and their stages.
func (c *Client) ListPipelines(ctx context.Context) (map[string]interface{}, error) {
	return c.request(ctx, http.MethodGet, "pipelines", nil, nil)
}

// ListCandidates returns candidates with plain offset pagination.
func (c *Client) ListCandidates(ctx context.Context, limit, offset int) (map[string]interface{}, error) {
	params := Params{}
	if limit > 0 {
		params["limit"] = limit
	}
	if offset > 0 {
		params["offset"] = offset
	}
	return c.request(ctx, http.MethodGet, "candidates", params, nil)
}

// SearchCandidates searches candidates by keyword query.
func (c *Client) SearchCandidates(ctx context.Context, query string, page, limit int) (map[string]interface{}, error) {
	params := Params{"query": query}
	if page > 0 {
		params["page"] = page
	}
	if limit > 0 {
		params["limit"] = limit
	}
	return c.request(ctx, http.MethodGet, "candidates", params, nil)
}

// SearchCandidatesAdvanced issues one call to the advanced search endpoint
// with a serialized filter array plus limit/offset.
func (c *Client) SearchCandidatesAdvanced(ctx context.Context, filters FilterSource, limit, offset int) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"filters": normalizeFilters(filters),
		"limit":   limit,
		"offset":  offset,
	}
	return c.request(ctx, http.MethodPost, "search/new/quick", nil, body)
}

// GetCandidate returns a single candidate by identifier.
func (c *Client) GetCandidate(ctx context.Context, candidateID string) (map[string]interface{}, error) {
	return c.request(ctx, http.MethodGet, "candidates/"+url.PathEscape(candidateID), nil, nil)
}

// NewCandidate is the payload for CreateCandidate. FirstName, LastName and
// Email are required; the rest is optional.
type NewCandidate struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Source       string
	OfferID      int
	PipelineID   int
	Notes        string
	CustomFields map[string]interface{}
}

// CreateCandidate creates a new candidate record.
func (c *Client) CreateCandidate(ctx context.Context, nc NewCandidate) (map[string]interface{}, error) {
	candidate := map[string]interface{}{
		"first_name": nc.FirstName,
		"last_name":  nc.LastName,
		"emails":     []string{nc.Email},
	}
	if nc.Phone != "" {
		candidate["phones"] = []string{nc.Phone}
	}
	if nc.Source != "" {
		candidate["source"] = nc.Source
	}
	if nc.OfferID != 0 {
		candidate["offer_id"] = nc.OfferID
	}
	if nc.PipelineID != 0 {
		candidate["pipeline_id"] = nc.PipelineID
	}
	if nc.Notes != "" {
		candidate["notes"] = nc.Notes
	}
	if len(nc.CustomFields) > 0 {
		candidate["custom_fields"] = nc.CustomFields
	}
	return c.request(ctx, http.MethodPost, "candidates", nil, map[string]interface{}{"candidate": candidate})
}

// request is the low-level primitive every operation funnels through: one
// attempt, no retries, no caching.
func (c *Client) request(ctx context.Context, method, path string, params Params, body interface{}) (map[string]interface{}, error) {
	reqURL := c.buildURL(path, params)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("recruitee request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Reason: err.Error(), URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Reason: err.Error(), URL: reqURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
			URL:        reqURL,
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.logger.Debug("invalid JSON payload", "url", reqURL)
		return nil, &ProtocolError{URL: reqURL, Err: err}
	}
	return decoded, nil
}

// buildURL assembles {baseURL}/c/{companyID}/{path} with the path's leading
// slash stripped and non-nil params URL encoded.
func (c *Client) buildURL(path string, params Params) string {
	u := fmt.Sprintf("%s/c/%s/%s", c.baseURL, c.companyID, strings.TrimLeft(path, "/"))
	if qs := encodeParams(params); qs != "" {
		u += "?" + qs
	}
	return u
}

func encodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, val := range params {
		if val == nil {
			continue
		}
		switch v := val.(type) {
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		case []interface{}:
			for _, item := range v {
				values.Add(key, formatParam(item))
			}
		default:
			values.Add(key, formatParam(v))
		}
	}
	return values.Encode()
}

func formatParam(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Duration:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
