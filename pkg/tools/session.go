package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/umputun/redditbot/pkg/reddit"
)

//go:generate moq -out mocks/requester.go -pkg mocks -skip-ensure -fmt goimports . Requester

// Requester executes reddit requests, implemented by reddit.Client
type Requester interface {
	Do(ctx context.Context, r reddit.Request) (*reddit.Response, error)
	Username() string
}

// RequestRecord is a single entry of the request history
type RequestRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Method      string    `json:"method"`
	URL         string    `json:"url"`
	Status      int       `json:"status"`
	ElapsedTime float64   `json:"elapsed_time"` // seconds
}

// SessionParams define history and cache limits
type SessionParams struct {
	HistorySize int           // default 100
	CacheTTL    time.Duration // default 30s
	CacheSize   int           // default 50
}

// Session owns the reddit client together with the request history and the GET response cache.
// Safe for concurrent use.
type Session struct {
	client      Requester
	cache       *expirable.LRU[string, []byte]
	historySize int

	mu      sync.Mutex
	history []RequestRecord
}

// NewSession makes a session for the client
func NewSession(client Requester, p SessionParams) *Session {
	if p.HistorySize <= 0 {
		p.HistorySize = 100
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = 30 * time.Second
	}
	if p.CacheSize <= 0 {
		p.CacheSize = 50
	}
	return &Session{
		client:      client,
		cache:       expirable.NewLRU[string, []byte](p.CacheSize, nil, p.CacheTTL),
		historySize: p.HistorySize,
	}
}

// Username of the account behind the session, empty if unknown
func (s *Session) Username() string {
	return s.client.Username()
}

// Get makes a GET request, fresh cached responses are returned without calling reddit
func (s *Session) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := path + "?" + query.Encode()
	if body, ok := s.cache.Get(key); ok {
		log.Printf("[DEBUG] cache hit for %s", key)
		return body, nil
	}
	body, err := s.do(ctx, reddit.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, body)
	return body, nil
}

// Post makes a form POST request
func (s *Session) Post(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return s.do(ctx, reddit.Request{Method: http.MethodPost, Path: path, Form: form})
}

// Patch makes a form PATCH request
func (s *Session) Patch(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return s.do(ctx, reddit.Request{Method: http.MethodPatch, Path: path, Form: form})
}

func (s *Session) do(ctx context.Context, r reddit.Request) ([]byte, error) {
	id := uuid.NewString()[:8]
	log.Printf("[DEBUG] api-%s: %s %s %v", id, r.Method, r.Path, r.Query)
	start := time.Now()
	resp, err := s.client.Do(ctx, r)
	elapsed := time.Since(start)

	rec := RequestRecord{ID: id, Timestamp: start.UTC(), Method: r.Method, URL: r.Path, ElapsedTime: elapsed.Seconds()}
	if resp != nil {
		rec.Status = resp.StatusCode
		rec.URL = resp.URL
	}
	s.remember(rec)

	if err != nil {
		var apiErr *reddit.APIError
		if errors.As(err, &apiErr) {
			log.Printf("[WARN] api-%s: status %d: %s", id, apiErr.StatusCode, apiErr.Body)
		}
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	log.Printf("[DEBUG] api-%s: status %d (%.2fs)", id, rec.Status, elapsed.Seconds())
	return resp.Body, nil
}

func (s *Session) remember(rec RequestRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, rec)
	if len(s.history) > s.historySize {
		s.history = s.history[len(s.history)-s.historySize:]
	}
}

// History returns a copy of the request history, oldest first
func (s *Session) History() []RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]RequestRecord, len(s.history))
	copy(res, s.history)
	return res
}
