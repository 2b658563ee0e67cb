package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	openai "github.com/sashabaranov/go-openai"

	"lexidice/internal/domain"
)

// Client implements all three oracles against an OpenAI-compatible API.
type Client struct {
	api        *openai.Client
	model      string
	imageModel string
	logger     *slog.Logger
}

// NewClient creates an oracle client. Returns nil when no API key is
// configured; callers must treat a nil client as "features unavailable".
func NewClient(apiKey, baseURL, model, imageModel string, logger *slog.Logger) *Client {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		model:      model,
		imageModel: imageModel,
		logger:     logger,
	}
}

const proposeSystemPrompt = `You play a word-forming dice game. You get five community letter dice and three private letter dice. Build one English word as an ordered sequence of dice. Rules: each die may be used at most once, at least one private die must be used, and the dice letters concatenated in order must spell the word exactly. Some dice carry two letters. Respond with JSON only, shaped as {"word":"...","tiles":[{"origin":"community"|"private","index":<0-based>}]}. Prefer high-scoring words that satisfy the round modifier.`

// ProposeWord asks the model for a candidate word and tile assignment.
func (c *Client) ProposeWord(ctx context.Context, req ProposalRequest) (Proposal, error) {
	var user strings.Builder
	user.WriteString("Community dice: ")
	for i, t := range req.Community {
		fmt.Fprintf(&user, "[%d] %s(%d points) ", i, t.Letter, t.Points)
	}
	user.WriteString("\nPrivate dice: ")
	for i, t := range req.Private {
		fmt.Fprintf(&user, "[%d] %s(%d points) ", i, t.Letter, t.Points)
	}
	fmt.Fprintf(&user, "\nRound modifier: %s\n", req.Modifier)
	if len(req.Failures) > 0 {
		user.WriteString("Earlier attempts were rejected, do not repeat them:\n")
		for _, f := range req.Failures {
			fmt.Fprintf(&user, "- %q: %s\n", f.Word, f.Reason)
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: proposeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user.String()},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Debug("word proposal request failed", "error", err)
		return Proposal{}, ErrNoCandidate
	}
	if len(resp.Choices) == 0 {
		return Proposal{}, ErrNoCandidate
	}

	return ParseProposal(resp.Choices[0].Message.Content)
}

// ParseProposal sanitizes and decodes a raw model response. Anything
// malformed maps to ErrNoCandidate.
func ParseProposal(raw string) (Proposal, error) {
	cleaned := Sanitize(raw)

	var parsed struct {
		Word  string `json:"word"`
		Tiles []struct {
			Origin string `json:"origin"`
			Index  int    `json:"index"`
		} `json:"tiles"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return Proposal{}, ErrNoCandidate
	}
	if parsed.Word == "" || len(parsed.Tiles) == 0 {
		return Proposal{}, ErrNoCandidate
	}

	p := Proposal{Word: strings.ToLower(strings.TrimSpace(parsed.Word))}
	for _, t := range parsed.Tiles {
		switch domain.OriginKind(t.Origin) {
		case domain.OriginCommunity, domain.OriginPrivate:
			p.Refs = append(p.Refs, domain.TileRef{Origin: domain.OriginKind(t.Origin), Index: t.Index})
		default:
			return Proposal{}, ErrNoCandidate
		}
	}
	return p, nil
}

// Sanitize strips code fences and control tokens that models sometimes
// wrap around their output, leaving the JSON body.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}

// FunFact asks for one short fact about the round's valid words.
func (c *Client) FunFact(ctx context.Context, words []string) (string, error) {
	if len(words) == 0 {
		return "", ErrNoCandidate
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write one playful, true, single-sentence fun fact connecting the given words. Plain text only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Words: " + strings.Join(words, ", "),
			},
		},
	})
	if err != nil {
		c.logger.Debug("fun fact request failed", "error", err)
		return "", ErrNoCandidate
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoCandidate
	}

	fact := Sanitize(resp.Choices[0].Message.Content)
	if fact == "" {
		return "", ErrNoCandidate
	}
	return fact, nil
}

// Illustrate generates an image for the round's words and fact, returning
// its URL.
func (c *Client) Illustrate(ctx context.Context, words []string, funFact string) (string, error) {
	prompt := fmt.Sprintf("A whimsical illustration combining: %s. Inspired by: %s",
		strings.Join(words, ", "), funFact)

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		c.logger.Debug("illustration request failed", "error", err)
		return "", ErrNoCandidate
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrNoCandidate
	}
	return resp.Data[0].URL, nil
}
