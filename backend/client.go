// Package backend is the HTTP client of the companion authentication backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-client/errmap"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// ErrorReporter surfaces a failed call to the user and returns the error.
type ErrorReporter interface {
	Report(ctx context.Context, err error) error
}

// Client calls the backend. Every failure is an *errmap.HTTPError passed
// through the reporter exactly once before being returned.
type Client struct {
	baseURL    string
	httpClient *http.Client
	reporter   ErrorReporter
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default client (which has a request timeout).
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient.Timeout = d
		}
	}
}

func NewClient(baseURL string, reporter ErrorReporter, options ...ClientOption) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Wrap(err, "[backend.NewClient] invalid base URL")
	}
	if reporter == nil {
		return nil, errors.New("[backend.NewClient] reporter is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		reporter:   reporter,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, PathLogin, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, PathRegister, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AuthURL asks the backend where to send the user for a social login.
func (c *Client) AuthURL(ctx context.Context, provider GrantType) (string, error) {
	query := url.Values{}
	if provider != "" {
		query.Set("provider", string(provider))
	}
	var resp authURLResponse
	if err := c.do(ctx, c.httpClient, http.MethodGet, PathAuthURL, query, nil, &resp); err != nil {
		return "", err
	}
	if resp.AuthURL == "" {
		return "", c.fail(ctx, &errmap.HTTPError{
			Method: http.MethodGet, Path: PathAuthURL, Status: http.StatusOK,
			Message: "Resposta sem URL de autenticação",
		})
	}
	return resp.AuthURL, nil
}

// ExchangeCode trades an authorization code for a token envelope.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, PathToken, nil, codeRequest{Code: code}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserInfo fetches the profile of the token's owner.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*sessions.UserInfo, error) {
	var info sessions.UserInfo
	if err := c.do(ctx, c.bearerClient(ctx, accessToken), http.MethodGet, PathUserInfo, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Logout ends the provider session. The returned URL may be empty.
func (c *Client) Logout(ctx context.Context, idToken string) (string, error) {
	var resp logoutResponse
	if err := c.do(ctx, c.httpClient, http.MethodPost, PathLogout, nil, logoutRequest{IDToken: idToken}, &resp); err != nil {
		return "", err
	}
	return resp.LogoutURL, nil
}

// UpdateCustomerInfo completes the profile of userID.
func (c *Client) UpdateCustomerInfo(ctx context.Context, accessToken, userID string, req UpdateCustomerInfoRequest) (*Customer, error) {
	var customer Customer
	path := PathUpdateCustomerInfo + url.PathEscape(userID)
	if err := c.do(ctx, c.bearerClient(ctx, accessToken), http.MethodPatch, path, nil, req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) bearerClient(ctx context.Context, accessToken string) *http.Client {
	if accessToken == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}))
	client.Timeout = c.httpClient.Timeout
	return client
}

func (c *Client) do(ctx context.Context, client *http.Client, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return c.fail(ctx, &errmap.HTTPError{Method: method, Path: path, ClientSide: true, Err: err})
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return c.fail(ctx, &errmap.HTTPError{Method: method, Path: path, ClientSide: true, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return c.fail(ctx, &errmap.HTTPError{Method: method, Path: path, Status: 0, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(ctx, &errmap.HTTPError{Method: method, Path: path, Status: 0, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(ctx, &errmap.HTTPError{
			Method:     method,
			Path:       path,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Message:    serverMessage(raw),
		})
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(ctx, &errmap.HTTPError{
			Method:     method,
			Path:       path,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Malformed:  true,
			Err:        err,
		})
	}
	return nil
}

func (c *Client) fail(ctx context.Context, err *errmap.HTTPError) error {
	return c.reporter.Report(ctx, err)
}

// serverMessage pulls the explanation out of an error body: a JSON object with
// "message" (or "error"), or a plain string.
func serverMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if raw[0] == '{' || raw[0] == '<' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}
