package hh

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
)

const (
	defaultBaseURL   = "https://api.hh.ru/vacancies"
	defaultUserAgent = "HHAnalyst/0.1 (sweeetdozer@gmail.com)"
)

// NewClient instantiates an hh.ru API client.
// No timeout is set on the default HTTP client; cancel through ctx.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("hh: parse base url: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// Search requests the first page of vacancies matching criteria
func (c *Client) Search(ctx context.Context, criteria Criteria) (*ListingResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("hh: client is nil")
	}

	u, err := c.buildSearchURL(criteria)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("hh: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	return decodeListing(body)
}

func decodeListing(body []byte) (*ListingResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrDecode)
	}

	var listing ListingResponse
	if err := json.Unmarshal(trimmed, &listing); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	listing.Raw = append(json.RawMessage(nil), trimmed...)

	return &listing, nil
}

func (c *Client) buildSearchURL(criteria Criteria) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("hh: parse base url: %w", err)
	}

	values := u.Query()
	values.Set("text", fmt.Sprintf("NAME:(%s)", criteria.Text))
	if criteria.Experience != "" {
		values.Set("experience", string(criteria.Experience))
	}
	values.Set("area", strconv.Itoa(criteria.Area))
	values.Set("per_page", strconv.Itoa(criteria.PerPage))
	values.Set("page", "0")
	values.Set("only_with_salary", strconv.FormatBool(criteria.OnlyWithSalary))
	values.Set("period", strconv.Itoa(criteria.Period))
	if criteria.WorkFormat != "" {
		values.Set("work_format", criteria.WorkFormat)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}
