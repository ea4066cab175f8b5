package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		URL:        strings.TrimRight(baseURL, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Error is returned for any response with status >= 400
type Error struct {
	StatusCode int
	Code       string // PostgREST error code, e.g. "23505"
	Message    string
	Body       string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not a *Error
func StatusCode(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Body: string(body)}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Msg     string `json:"msg"` // GoTrue
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Code
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Msg
		}
	}
	return e
}

// request describes one REST call
type request struct {
	method string
	path   string
	query  map[string]interface{}
	body   interface{}
	prefer string
	token  string
}

// do executes r and returns the response body and headers
func (c *Client) do(ctx context.Context, r request) ([]byte, http.Header, error) {
	var reader io.Reader
	if r.body != nil {
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.URL+r.path, reader)
	if err != nil {
		return nil, nil, err
	}

	if len(r.query) > 0 {
		req.URL.RawQuery = encodeQuery(r.query)
	}

	token := r.token
	if token == "" {
		token = c.ServiceKey
	}
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.Header, newError(resp.StatusCode, body)
	}

	return body, resp.Header, nil
}

// encodeQuery builds PostgREST query parameters. A []string value adds the
// key once per element, which is how two filters on one column are expressed
// (e.g. date=gte.X and date=lte.Y).
func encodeQuery(query map[string]interface{}) string {
	q := url.Values{}
	for key, value := range query {
		switch v := value.(type) {
		case []string:
			for _, s := range v {
				q.Add(key, s)
			}
		default:
			q.Add(key, fmt.Sprintf("%v", v))
		}
	}
	return q.Encode()
}

func tablePath(table string) string {
	return "/rest/v1/" + table
}

// Query executes a query on a Supabase table
func (c *Client) Query(ctx context.Context, table string, query map[string]interface{}) ([]byte, error) {
	body, _, err := c.do(ctx, request{method: http.MethodGet, path: tablePath(table), query: query})
	return body, err
}

// Insert inserts a record into a Supabase table
func (c *Client) Insert(ctx context.Context, table string, data interface{}) ([]byte, error) {
	body, _, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table),
		body:   data,
		prefer: "return=representation",
	})
	return body, err
}

// Update updates a record in a Supabase table by id
func (c *Client) Update(ctx context.Context, table string, id string, data interface{}) ([]byte, error) {
	return c.UpdateWhere(ctx, table, map[string]interface{}{"id": "eq." + id}, data)
}

// UpdateWhere updates records matching a query
func (c *Client) UpdateWhere(ctx context.Context, table string, query map[string]interface{}, data interface{}) ([]byte, error) {
	body, _, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   tablePath(table),
		query:  query,
		body:   data,
		prefer: "return=representation",
	})
	return body, err
}

// Upsert inserts or updates a record in a Supabase table.
// onConflict specifies the columns to detect conflicts (e.g., "user_id,date")
func (c *Client) Upsert(ctx context.Context, table string, data interface{}, onConflict string) ([]byte, error) {
	body, _, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table),
		query:  map[string]interface{}{"on_conflict": onConflict},
		body:   data,
		// resolution=merge-duplicates will update existing rows
		prefer: "return=representation,resolution=merge-duplicates",
	})
	return body, err
}

// Delete deletes a record from a Supabase table by id
func (c *Client) Delete(ctx context.Context, table string, id string) error {
	return c.DeleteWhere(ctx, table, map[string]interface{}{"id": "eq." + id})
}

// DeleteWhere deletes records matching a query
func (c *Client) DeleteWhere(ctx context.Context, table string, query map[string]interface{}) error {
	_, _, err := c.do(ctx, request{method: http.MethodDelete, path: tablePath(table), query: query})
	return err
}

// Count returns the number of rows matching query without fetching them
func (c *Client) Count(ctx context.Context, table string, query map[string]interface{}) (int, error) {
	q := map[string]interface{}{"select": "id"}
	for k, v := range query {
		q[k] = v
	}

	_, header, err := c.do(ctx, request{
		method: http.MethodHead,
		path:   tablePath(table),
		query:  q,
		prefer: "count=exact",
	})
	if err != nil {
		return 0, err
	}
	return parseContentRange(header.Get("Content-Range"))
}

// parseContentRange reads the total from a PostgREST Content-Range header ("0-9/42" or "*/0")
func parseContentRange(v string) (int, error) {
	idx := strings.LastIndex(v, "/")
	if idx < 0 || idx == len(v)-1 {
		return 0, fmt.Errorf("invalid Content-Range %q", v)
	}
	total := v[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("count not provided in Content-Range %q", v)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("invalid Content-Range %q: %w", v, err)
	}
	return n, nil
}

// HealthCheck issues a head-only count against the goals table and reports the round-trip latency
func (c *Client) HealthCheck(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	_, _, err := c.do(ctx, request{
		method: http.MethodHead,
		path:   tablePath("goals"),
		query:  map[string]interface{}{"select": "id"},
		prefer: "count=exact",
	})
	latency := time.Since(start)
	if err != nil {
		return latency, fmt.Errorf("health check failed: %w", err)
	}
	return latency, nil
}

// VerifyToken verifies a JWT token with Supabase
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	body, _, err := c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("token verification returned no user")
	}

	return &user, nil
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
