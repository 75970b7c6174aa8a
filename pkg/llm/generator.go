// Package llm generates short supportive replies with an OpenAI-compatible completion API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math/rand/v2"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/redditbot/pkg/config"
)

// SkipSentinel is the completion meaning "do not reply to this post"
const SkipSentinel = "SKIP"

// default system prompt, used when a bot has no custom one
const defaultSystemPrompt = "You are a friendly, supportive Reddit user who loves giving positive advice on slime, " +
	"crafts, kids, parenting, home, and toys. Never be sarcastic or negative."

const (
	noQuotesRule = " IMPORTANT: NEVER use quotation marks in your responses."
	skipRule     = " If no positive, supportive reply fits the post, answer with exactly " + SkipSentinel + "."
)

// maximum post body length sent to the model
const maxBodyLen = 1500

// canned replies used when every attempt failed
var fallbackReplies = []string{
	"This looks great! Thanks for sharing your work!",
	"Love this, thanks so much for sharing it with everyone!",
	"What a wonderful post, thank you for sharing!",
	"Such a lovely thing to share, great job!",
}

// Acceptor decides whether a generated reply can be posted
type Acceptor interface {
	Accept(reply string) bool
}

// Request contains the post and the bot settings a reply is generated for
type Request struct {
	Title    string
	Body     string
	Prompt   string // custom system prompt, optional
	StyleTag string // tone label, optional
}

// Reply is the generation result. Skipped means the model declined to answer,
// Fallback means every attempt failed and Text is a canned reply.
type Reply struct {
	Text     string
	Skipped  bool
	Fallback bool
}

// Generator makes replies for posts
type Generator struct {
	client    *openai.Client
	config    config.LLMConfig
	filter    Acceptor
	sanitizer *bluemonday.Policy
	pick      func(n int) int
}

// NewGenerator creates a new reply generator. Replies not accepted by the filter are retried.
func NewGenerator(cfg config.LLMConfig, filter Acceptor) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 3
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		filter:    filter,
		sanitizer: bluemonday.StrictPolicy(),
		pick:      rand.IntN,
	}
}

// Generate makes a reply for the post. Completion errors and rejected replies are retried,
// after the last attempt a canned reply is returned. Only context cancellation is reported as error.
func (g *Generator) Generate(ctx context.Context, req Request) (Reply, error) {
	prompt := g.buildPrompt(req)
	systemMsg := g.systemPrompt(req.Prompt)

	for attempt := 1; attempt <= g.config.Attempts; attempt++ {
		text, err := g.complete(ctx, systemMsg, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return Reply{}, fmt.Errorf("generate reply: %w", ctx.Err())
			}
			log.Printf("[WARN] reply generation attempt %d/%d failed: %v", attempt, g.config.Attempts, err)
			continue
		}

		text = trimQuotes(text)
		if isSkip(text) {
			log.Printf("[INFO] model declined to reply to %q", req.Title)
			return Reply{Skipped: true}, nil
		}
		if text == "" {
			log.Printf("[WARN] empty reply on attempt %d/%d", attempt, g.config.Attempts)
			continue
		}
		// contractions must reach the filter intact, internal quotes go after the check
		if g.filter != nil && !g.filter.Accept(text) {
			continue
		}
		if text = stripQuotes(text); text == "" {
			continue
		}
		return Reply{Text: text}, nil
	}

	fallback := fallbackReplies[g.pick(len(fallbackReplies))]
	log.Printf("[INFO] using fallback reply after %d attempts: %s", g.config.Attempts, fallback)
	return Reply{Text: fallback, Fallback: true}, nil
}

func (g *Generator) complete(ctx context.Context, systemMsg, prompt string) (string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: float32(g.config.Temperature),
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// systemPrompt uses the bot's custom prompt if provided, otherwise the config one or the default
func (g *Generator) systemPrompt(custom string) string {
	switch {
	case custom != "":
		return custom + noQuotesRule + skipRule
	case g.config.SystemPrompt != "":
		return g.config.SystemPrompt + noQuotesRule + skipRule
	default:
		return defaultSystemPrompt + skipRule
	}
}

// buildPrompt creates the user message for the post
func (g *Generator) buildPrompt(req Request) string {
	body := html.UnescapeString(g.sanitizer.Sanitize(req.Body))
	body = strings.TrimSpace(body)
	if len([]rune(body)) > maxBodyLen {
		body = string([]rune(body)[:maxBodyLen]) + "..."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Post Title: %s\n\n", req.Title))
	sb.WriteString(fmt.Sprintf("Post Content: %s\n\n", body))
	sb.WriteString("Please write a brief, friendly, and supportive reply to this Reddit post. ")
	sb.WriteString("Keep it under 25 words. DO NOT use quotation marks in your response.")
	if req.StyleTag != "" {
		sb.WriteString(fmt.Sprintf("\nStyle: %s", req.StyleTag))
	}
	return sb.String()
}

var quoteReplacer = strings.NewReplacer(`"`, "", "'", "", "“", "", "”", "", "‘", "", "’", "")

// trimQuotes removes wrapping quotation marks only
func trimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "\"'“”‘’"))
}

// stripQuotes removes wrapping and internal quotation marks
func stripQuotes(s string) string {
	return strings.TrimSpace(quoteReplacer.Replace(trimQuotes(s)))
}

func isSkip(s string) bool {
	return strings.EqualFold(strings.TrimRight(s, ".! "), SkipSentinel)
}
