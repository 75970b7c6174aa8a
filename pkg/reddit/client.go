// Package reddit is a small OAuth2 client for the reddit REST API.
// It covers what the bot needs directly (search, listings, comments, reply, vote)
// and exposes Raw for everything else.
package reddit

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

	log "github.com/go-pkgz/lgr"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// default reddit endpoints
const (
	DefaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	DefaultAPIURL    = "https://oauth.reddit.com"
	DefaultPublicURL = "https://www.reddit.com"
	DefaultUserAgent = "redditbot/1.0"
)

// tokens are refreshed this long before reddit expires them
const tokenEarlyExpiry = 5 * time.Minute

// AuthMode is the way the client authenticates
type AuthMode int

// enum of auth modes
const (
	AuthAnonymous    AuthMode = iota // public .json endpoints, no writes
	AuthAppOnly                      // client credentials, read-only
	AuthRefreshToken                 // user context via refresh token
	AuthPassword                     // user context via password grant
)

func (m AuthMode) String() string {
	switch m {
	case AuthAppOnly:
		return "app-only"
	case AuthRefreshToken:
		return "refresh-token"
	case AuthPassword:
		return "password"
	default:
		return "anonymous"
	}
}

// Config defines client parameters. Mode selection is explicit: ReadOnly forces app-only auth,
// otherwise a refresh token wins over username/password. Without a client id the client is anonymous.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Username     string
	Password     string
	UserAgent    string
	ReadOnly     bool
	Timeout      time.Duration

	TokenURL  string
	APIURL    string
	PublicURL string
}

// Mode returns the auth mode the config selects
func (c Config) Mode() AuthMode {
	switch {
	case c.ClientID == "":
		return AuthAnonymous
	case c.ReadOnly:
		return AuthAppOnly
	case c.RefreshToken != "":
		return AuthRefreshToken
	case c.Username != "" && c.Password != "":
		return AuthPassword
	default:
		return AuthAppOnly
	}
}

// ErrReadOnly returned for write calls made without a user context
var ErrReadOnly = errors.New("reddit client is read-only")

// APIError is a non-successful reddit response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit api error, status %d: %s", e.StatusCode, e.Body)
}

// RateLimitError is returned when reddit throttles the client, either with 429 or a RATELIMIT api error
type RateLimitError struct {
	Message           string
	SecondsUntilReset int
}

func (e *RateLimitError) Error() string {
	if e.SecondsUntilReset > 0 {
		return fmt.Sprintf("RATELIMIT: %s, reset in %ds", e.Message, e.SecondsUntilReset)
	}
	return "RATELIMIT: " + e.Message
}

// IsRateLimit checks for a typed rate limit error or the RATELIMIT marker in the error text
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	return strings.Contains(err.Error(), "RATELIMIT")
}

// Client talks to reddit. Safe for concurrent use.
type Client struct {
	cfg        Config
	mode       AuthMode
	httpClient *http.Client
	token      oauth2.TokenSource // nil for anonymous
}

type userAgentRoundTripper struct {
	userAgent string
	next      http.RoundTripper
}

func (urt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", urt.userAgent)
	}
	return urt.next.RoundTrip(req)
}

// passwordTokenSource requests a fresh token with the password grant each time it is asked,
// reddit issues no refresh token for this grant
type passwordTokenSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (p *passwordTokenSource) Token() (*oauth2.Token, error) {
	return p.conf.PasswordCredentialsToken(p.ctx, p.username, p.password)
}

// New makes a client for the auth mode selected by cfg. Token acquisition is lazy,
// use Me to verify credentials.
func New(ctx context.Context, cfg Config) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = DefaultPublicURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	cfg.PublicURL = strings.TrimSuffix(cfg.PublicURL, "/")

	base := &userAgentRoundTripper{userAgent: cfg.UserAgent, next: http.DefaultTransport}
	res := &Client{cfg: cfg, mode: cfg.Mode()}

	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout, Transport: base})
	endpoint := oauth2.Endpoint{TokenURL: cfg.TokenURL, AuthStyle: oauth2.AuthStyleInHeader}

	var src oauth2.TokenSource
	switch res.mode {
	case AuthAppOnly:
		cc := &clientcredentials.Config{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret,
			TokenURL: cfg.TokenURL, AuthStyle: oauth2.AuthStyleInHeader}
		src = cc.TokenSource(tokenCtx)
	case AuthRefreshToken:
		conf := &oauth2.Config{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret, Endpoint: endpoint}
		src = conf.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	case AuthPassword:
		conf := &oauth2.Config{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret, Endpoint: endpoint}
		src = &passwordTokenSource{ctx: tokenCtx, conf: conf, username: cfg.Username, password: cfg.Password}
	}

	if src == nil {
		res.httpClient = &http.Client{Timeout: cfg.Timeout, Transport: base}
		return res
	}
	res.token = oauth2.ReuseTokenSourceWithExpiry(nil, src, tokenEarlyExpiry)
	res.httpClient = &http.Client{Timeout: cfg.Timeout, Transport: &oauth2.Transport{Source: res.token, Base: base}}
	return res
}

// Mode returns the auth mode in use
func (c *Client) Mode() AuthMode { return c.mode }

// ReadOnly reports whether the client has no user context and can't write
func (c *Client) ReadOnly() bool {
	return c.mode == AuthAnonymous || c.mode == AuthAppOnly
}

// Username returns the configured username, empty for non-password modes
func (c *Client) Username() string { return c.cfg.Username }

// Request is a reddit call. Path is relative to the API root, e.g. "/r/golang/new".
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

// Response is a raw reddit response
type Response struct {
	StatusCode int
	URL        string
	Body       []byte
}

// Do executes a request and returns the raw body. Non-2xx statuses are returned as *APIError,
// throttling as *RateLimitError. Write methods on a read-only client fail with ErrReadOnly.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	if r.Method != http.MethodGet && c.ReadOnly() {
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, ErrReadOnly)
	}

	u := c.endpoint(r.Path, r.Method)
	query := url.Values{}
	for k, v := range r.Query {
		query[k] = v
	}
	query.Set("raw_json", "1")
	u += "?" + query.Encode()

	var body io.Reader
	if r.Form != nil {
		body = strings.NewReader(r.Form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("make request: %w", err)
	}
	if r.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	res := &Response{StatusCode: resp.StatusCode, URL: u, Body: data}

	if resp.StatusCode == http.StatusTooManyRequests {
		rlErr := &RateLimitError{Message: "too many requests"}
		if reset := resp.Header.Get("X-Ratelimit-Reset"); reset != "" {
			if secs, convErr := strconv.ParseFloat(reset, 64); convErr == nil {
				rlErr.SecondsUntilReset = int(secs)
			}
		}
		return res, rlErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return res, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(data), 512)}
	}
	if err := checkJSONErrors(data); err != nil {
		return res, err
	}
	return res, nil
}

// Raw is a shortcut for Do returning the body only
func (c *Client) Raw(ctx context.Context, method, path string, query, form url.Values) ([]byte, error) {
	resp, err := c.Do(ctx, Request{Method: method, Path: path, Query: query, Form: form})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) endpoint(path, method string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if c.mode == AuthAnonymous && method == http.MethodGet {
		return c.cfg.PublicURL + path + ".json"
	}
	return c.cfg.APIURL + path
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.Raw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// checkJSONErrors looks for {"json":{"errors":[[code, message, field]]}} in write responses
func checkJSONErrors(data []byte) error {
	if !bytes.Contains(data, []byte(`"errors"`)) {
		return nil
	}
	var resp struct {
		JSON struct {
			Errors [][]any `json:"errors"`
		} `json:"json"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || len(resp.JSON.Errors) == 0 {
		return nil //nolint:nilerr // not an api errors envelope
	}
	msgs := make([]string, 0, len(resp.JSON.Errors))
	for _, e := range resp.JSON.Errors {
		parts := make([]string, 0, len(e))
		for _, p := range e {
			if s, ok := p.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		msgs = append(msgs, strings.Join(parts, ": "))
		if len(e) > 0 && e[0] == "RATELIMIT" {
			log.Printf("[WARN] reddit rate limit: %v", e)
			return &RateLimitError{Message: strings.Join(parts, ": ")}
		}
	}
	return &APIError{StatusCode: http.StatusOK, Body: strings.Join(msgs, "; ")}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
