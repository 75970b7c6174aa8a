package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/redditbot/pkg/domain"
	"github.com/umputun/redditbot/pkg/interaction"
)

func (s *Service) statsTools() []Tool {
	return []Tool{
		{
			Name:        "get_request_stats",
			Description: "Get statistics about recent Reddit API requests made by this server",
			Params: []Param{
				{Name: "limit", Type: TypeNumber, Description: "Number of recent requests to include (max 100)"},
			},
			Handler: s.getRequestStats,
		},
		{
			Name:        "get_interaction_log",
			Description: "Get the most recent interactions recorded by the engagement bot",
			Params: []Param{
				{Name: "limit", Type: TypeNumber, Description: "Number of recent interactions to return"},
			},
			Handler: s.getInteractionLog,
		},
	}
}

type requestView struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Method      string `json:"method"`
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ElapsedTime string `json:"elapsed_time"`
}

func (s *Service) getRequestStats(_ context.Context, a Args) (any, error) {
	history := s.session.History()
	limit := a.Limit("limit", 10, 100)
	recent := history
	if len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	statusCodes, methods := map[int]int{}, map[string]int{}
	total := 0.0
	views := make([]requestView, 0, len(recent))
	for _, r := range recent {
		statusCodes[r.Status]++
		methods[r.Method]++
		total += r.ElapsedTime
		views = append(views, requestView{ID: r.ID, Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
			Method: r.Method, URL: r.URL, Status: r.Status, ElapsedTime: fmt.Sprintf("%.2fs", r.ElapsedTime)})
	}
	avg := 0.0
	if len(recent) > 0 {
		avg = total / float64(len(recent))
	}

	return struct {
		TotalRequests       int            `json:"total_requests"`
		AverageResponseTime string         `json:"average_response_time"`
		StatusCodes         map[int]int    `json:"status_codes"`
		Methods             map[string]int `json:"methods"`
		RecentRequests      []requestView  `json:"recent_requests"`
	}{
		TotalRequests:       len(history),
		AverageResponseTime: fmt.Sprintf("%.2fs", avg),
		StatusCodes:         statusCodes,
		Methods:             methods,
		RecentRequests:      views,
	}, nil
}

func (s *Service) getInteractionLog(_ context.Context, a Args) (any, error) {
	records, err := interaction.Load(s.interactionLog)
	if err != nil {
		return nil, err
	}
	recent := interaction.Tail(records, max(a.Int("limit", 10), 1))
	return struct {
		Status            string               `json:"status"`
		Interactions      []domain.Interaction `json:"interactions"`
		Count             int                  `json:"count"`
		TotalInteractions int                  `json:"total_interactions"`
	}{Status: "success", Interactions: recent, Count: len(recent), TotalInteractions: len(records)}, nil
}
