package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/umputun/redditbot/pkg/reddit"
)

// Service implements the reddit tools on top of a session
type Service struct {
	session        *Session
	interactionLog string
	automation     Automation
}

// NewService makes a service. interactionLog is the bot's interaction log file read by get_interaction_log.
func NewService(session *Session, interactionLog string) *Service {
	return &Service{session: session, interactionLog: interactionLog}
}

// New makes a registry with every tool of the service
func New(session *Session, interactionLog string) *Registry {
	return NewRegistry(NewService(session, interactionLog).Tools()...)
}

// WithAutomation enables the bot-control tools backed by a
func (s *Service) WithAutomation(a Automation) *Service {
	s.automation = a
	return s
}

// Tools returns all tool definitions bound to the service
func (s *Service) Tools() []Tool {
	res := []Tool{}
	res = append(res, s.browseTools()...)
	res = append(res, s.contentTools()...)
	res = append(res, s.accountTools()...)
	res = append(res, s.statsTools()...)
	if s.automation != nil {
		res = append(res, s.botTools()...)
	}
	return res
}

// status is the result of write tools
type status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func success(format string, a ...any) status {
	return status{Status: "success", Message: fmt.Sprintf(format, a...)}
}

func (s *Service) listing(ctx context.Context, path string, query url.Values) (*reddit.Listing, error) {
	body, err := s.session.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return reddit.ParseListing(body)
}

func (s *Service) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := s.session.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// post sends a form and decodes the response into v if given. Empty or non-JSON bodies are fine.
func (s *Service) post(ctx context.Context, path string, form url.Values, v any) error {
	body, err := s.session.Post(ctx, path, form)
	if err != nil {
		return err
	}
	if v != nil && len(body) > 0 {
		_ = json.Unmarshal(body, v) // write endpoints often return {} or nothing
	}
	return nil
}

// username returns the session account name, asks reddit if the client doesn't know it
func (s *Service) username(ctx context.Context) (string, error) {
	if name := s.session.Username(); name != "" {
		return name, nil
	}
	var me struct {
		Name string `json:"name"`
	}
	if err := s.getJSON(ctx, "/api/v1/me", nil, &me); err != nil {
		return "", err
	}
	if me.Name == "" {
		return "", errorf("Can't determine the user name of the session.")
	}
	return me.Name, nil
}

func subPath(sub string, parts ...string) string {
	res := "/r/" + url.PathEscape(sub)
	for _, p := range parts {
		res += "/" + url.PathEscape(p)
	}
	return res
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func oneOf(v string, values ...string) bool {
	for _, s := range values {
		if v == s {
			return true
		}
	}
	return false
}
