package campussdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a small HTTP client for the campus API, used by integration
// tests and by anything else that wants typed access without hand-rolling
// requests. It remembers the session token from Login and presents it as a
// cookie on subsequent calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient creates a client for the given base URL (e.g. "http://host:8080").
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the session token captured from the last successful login.
func (c *Client) Token() string { return c.token }

// SetToken overrides the session token, mainly useful in tests exercising
// expired or forged tokens.
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken drops the session, making subsequent calls unauthenticated.
func (c *Client) ClearToken() { c.token = "" }

// Login authenticates with the admin credential and a subject uid. On
// success the session cookie is captured for later calls.
func (c *Client) Login(ctx context.Context, username, password, uid string) (*LoginResponse, error) {
	body, err := json.Marshal(LoginRequest{UID: uid})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			c.token = cookie.Value
		}
	}

	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFaculties returns all faculties.
func (c *Client) ListFaculties(ctx context.Context) ([]Faculty, error) {
	var out []Faculty
	if err := c.getResult(ctx, "/v1/faculties", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCollection lists a faculty sub-collection.
func (c *Client) ListCollection(ctx context.Context, facultyID, collection string) ([]Item, error) {
	var out []Item
	path := fmt.Sprintf("/v1/faculties/%s/%s", url.PathEscape(facultyID), url.PathEscape(collection))
	if err := c.getResult(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCollectionByField lists a sub-collection filtered by numeric equality
// on a named field.
func (c *Client) ListCollectionByField(
	ctx context.Context,
	facultyID, collection, field string,
	value int64,
) ([]Item, error) {
	var out []Item
	path := fmt.Sprintf("/v1/faculties/%s/%s?%s=%s",
		url.PathEscape(facultyID), url.PathEscape(collection),
		url.QueryEscape(field), strconv.FormatInt(value, 10))
	if err := c.getResult(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetItem fetches a single catalog document.
func (c *Client) GetItem(ctx context.Context, facultyID, collection, itemID string) (Item, error) {
	var out Item
	path := fmt.Sprintf("/v1/faculties/%s/%s/%s",
		url.PathEscape(facultyID), url.PathEscape(collection), url.PathEscape(itemID))
	if err := c.getResult(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PutItem creates or replaces a catalog document.
func (c *Client) PutItem(ctx context.Context, facultyID, collection, itemID string, fields map[string]any) error {
	path := fmt.Sprintf("/v1/faculties/%s/%s/%s",
		url.PathEscape(facultyID), url.PathEscape(collection), url.PathEscape(itemID))
	return c.do(ctx, http.MethodPut, path, fields, nil)
}

// SaveUser idempotently creates a profile for uid.
func (c *Client) SaveUser(ctx context.Context, uid string) (*SaveUserResult, error) {
	var out SaveUserResult
	if err := c.do(ctx, http.MethodPost, "/v1/users", LoginRequest{UID: uid}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a profile.
func (c *Client) GetUser(ctx context.Context, uid string) (*UserProfile, error) {
	var out UserProfile
	if err := c.getResult(ctx, "/v1/users/"+url.PathEscape(uid), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser partially updates a profile; non-allow-listed keys are dropped
// server-side.
func (c *Client) UpdateUser(ctx context.Context, uid string, updates map[string]any) error {
	return c.do(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(uid), updates, nil)
}

// DeleteUser removes a profile.
func (c *Client) DeleteUser(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(uid), nil, nil)
}

// VerifyUser requests email verification for a profile.
func (c *Client) VerifyUser(ctx context.Context, uid, email string) error {
	path := "/v1/users/" + url.PathEscape(uid) + "/verify"
	return c.do(ctx, http.MethodPost, path, VerifyUserRequest{Email: email}, nil)
}

// Livez checks the liveness endpoint.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/livez", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getResult(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// do performs an authenticated request and decodes the {"result": ...}
// envelope into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: c.token})
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Result, out)
}

func decodeAPIError(resp *http.Response) error {
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response status %d", resp.StatusCode),
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        body.Error,
		Description: body.ErrorDescription,
	}
}
