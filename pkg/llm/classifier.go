// Package llm talks to an OpenAI-compatible endpoint to score news items.
// The model returns raw scores only; the accept/reject decision is recomputed
// locally by the caller, so its should_read suggestion is never trusted.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/calmfeed/calmfeed/pkg/config"
	"github.com/calmfeed/calmfeed/pkg/domain"
)

// prompt truncation limits, in runes
const (
	maxExcerptLen = 300
	maxTextLen    = 800
)

// Classifier scores item batches through the chat completions API
type Classifier struct {
	client *openai.Client
	config config.LLMConfig
}

// NewClassifier creates a classifier for the configured endpoint
func NewClassifier(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Classifier{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// ClassifyRequest contains one batch of items plus reader context
type ClassifyRequest struct {
	Items      []domain.UnscoredItem
	Profile    string
	Thresholds domain.Thresholds
}

// Assessment is one scored row as returned by the model
type Assessment struct {
	ItemID         int64    `json:"item_id"`
	Relevance      int      `json:"relevance"`
	Ragebait       int      `json:"ragebait"`
	CultureWar     int      `json:"culture_war"`
	Novelty        int      `json:"novelty"`
	Topics         []string `json:"topics"`
	ClusterKey     string   `json:"cluster_key"`
	ChallengeValue int      `json:"challenge_value"`
	Perspective    string   `json:"perspective"`
	Tone           string   `json:"tone"`
	ShouldRead     bool     `json:"should_read"` // model suggestion, discarded downstream
	CalmReason     string   `json:"calm_reason"`
}

// itemBundle is the per-item payload embedded in the prompt
type itemBundle struct {
	ItemID  int64  `json:"item_id"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
	Text    string `json:"text"`
}

// responseSchema is the structured-output contract sent with every request.
// Every field is required; a response missing any of them fails the batch.
var responseSchema = &jsonschema.Definition{
	Type:                 jsonschema.Object,
	AdditionalProperties: false,
	Properties: map[string]jsonschema.Definition{
		"items": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type:                 jsonschema.Object,
				AdditionalProperties: false,
				Properties: map[string]jsonschema.Definition{
					"item_id":         {Type: jsonschema.Integer},
					"relevance":       {Type: jsonschema.Integer},
					"ragebait":        {Type: jsonschema.Integer},
					"culture_war":     {Type: jsonschema.Integer},
					"novelty":         {Type: jsonschema.Integer},
					"topics":          {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
					"cluster_key":     {Type: jsonschema.String},
					"challenge_value": {Type: jsonschema.Integer},
					"perspective":     {Type: jsonschema.String},
					"tone":            {Type: jsonschema.String},
					"should_read":     {Type: jsonschema.Boolean},
					"calm_reason":     {Type: jsonschema.String},
				},
				Required: []string{"item_id", "relevance", "ragebait", "culture_war", "novelty", "topics",
					"cluster_key", "challenge_value", "perspective", "tone", "should_read", "calm_reason"},
			},
		},
	},
	Required: []string{"items"},
}

// Classify scores a batch of items. Returned assessments cover only item IDs
// present in the request; rows for unknown IDs are dropped. Any transport
// failure, non-success status or contract violation fails the whole batch.
func (c *Classifier) Classify(ctx context.Context, req ClassifyRequest) ([]Assessment, error) {
	if len(req.Items) == 0 {
		return []Assessment{}, nil
	}

	prompt, err := c.buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "news_classification",
				Schema: responseSchema,
				Strict: true,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from llm")
	}

	return c.parseResponse(resp.Choices[0].Message.Content, req.Items)
}

// buildPrompt renders the scoring instructions with the reader profile,
// active thresholds and the JSON-encoded item bundles
func (c *Classifier) buildPrompt(req ClassifyRequest) (string, error) {
	bundles := make([]itemBundle, len(req.Items))
	for i, item := range req.Items {
		bundles[i] = itemBundle{
			ItemID:  item.ID,
			Title:   item.Title,
			Source:  item.SourceName,
			Excerpt: truncateRunes(item.Excerpt, maxExcerptLen),
			Text:    truncateRunes(item.RawText, maxTextLen),
		}
	}

	itemsJSON, err := json.Marshal(bundles)
	if err != nil {
		return "", fmt.Errorf("marshal item bundles: %w", err)
	}

	th := req.Thresholds
	var sb strings.Builder
	sb.WriteString("You are filtering news for one person. Score each item.\n\n")
	sb.WriteString("User profile:\n")
	sb.WriteString(req.Profile)
	sb.WriteString("\n\nFor each item return:\n")
	sb.WriteString("- relevance (0-100): match to user interests\n")
	sb.WriteString("- ragebait (0-100): outrage bait, dunking, tribal, sensational\n")
	sb.WriteString("- culture_war (0-100): partisan/identity framing\n")
	sb.WriteString("- novelty (0-100): new vs churn\n")
	sb.WriteString("- tone: neutral|analysis|opinion|outrage\n")
	sb.WriteString("- challenge_value (0-100): constructively challenges user's view\n")
	sb.WriteString("- perspective: neutral|aligned|adjacent|oppositional|mixed\n")
	sb.WriteString("- cluster_key: short topic ID (e.g. \"ai/releases\", \"world/ukraine\", \"tech/layoffs\")\n")
	sb.WriteString("- topics: array of topic tags\n")
	sb.WriteString(fmt.Sprintf("- should_read: true if worth reading (relevance>=%d AND ragebait<=%d AND culture_war<=%d), "+
		"OR major world news, OR high challenge_value with moderate rage/cw\n",
		th.Relevance, th.Ragebait, th.CultureWar))
	sb.WriteString("- calm_reason: brief explanation (max 200 chars)\n")
	sb.WriteString("\nItems:\n")
	sb.Write(itemsJSON)

	return sb.String(), nil
}

// assessmentJSON mirrors Assessment with pointer fields so missing keys are
// detectable after unmarshal
type assessmentJSON struct {
	ItemID         *int64    `json:"item_id"`
	Relevance      *int      `json:"relevance"`
	Ragebait       *int      `json:"ragebait"`
	CultureWar     *int      `json:"culture_war"`
	Novelty        *int      `json:"novelty"`
	Topics         *[]string `json:"topics"`
	ClusterKey     *string   `json:"cluster_key"`
	ChallengeValue *int      `json:"challenge_value"`
	Perspective    *string   `json:"perspective"`
	Tone           *string   `json:"tone"`
	ShouldRead     *bool     `json:"should_read"`
	CalmReason     *string   `json:"calm_reason"`
}

func (a *assessmentJSON) validate() error {
	switch {
	case a.ItemID == nil:
		return fmt.Errorf("missing item_id")
	case a.Relevance == nil:
		return fmt.Errorf("missing relevance")
	case a.Ragebait == nil:
		return fmt.Errorf("missing ragebait")
	case a.CultureWar == nil:
		return fmt.Errorf("missing culture_war")
	case a.Novelty == nil:
		return fmt.Errorf("missing novelty")
	case a.Topics == nil:
		return fmt.Errorf("missing topics")
	case a.ClusterKey == nil:
		return fmt.Errorf("missing cluster_key")
	case a.ChallengeValue == nil:
		return fmt.Errorf("missing challenge_value")
	case a.Perspective == nil:
		return fmt.Errorf("missing perspective")
	case a.Tone == nil:
		return fmt.Errorf("missing tone")
	case a.ShouldRead == nil:
		return fmt.Errorf("missing should_read")
	case a.CalmReason == nil:
		return fmt.Errorf("missing calm_reason")
	}
	return nil
}

// parseResponse decodes and validates the model output. A single row missing
// a required field fails the whole batch; rows for item IDs that were not in
// the request are silently dropped.
func (c *Classifier) parseResponse(content string, items []domain.UnscoredItem) ([]Assessment, error) {
	var resp struct {
		Items *[]assessmentJSON `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("response has no items array")
	}

	known := make(map[int64]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}

	assessments := make([]Assessment, 0, len(*resp.Items))
	for i, row := range *resp.Items {
		if err := row.validate(); err != nil {
			return nil, fmt.Errorf("response row %d: %w", i, err)
		}
		if !known[*row.ItemID] {
			continue
		}
		assessments = append(assessments, Assessment{
			ItemID:         *row.ItemID,
			Relevance:      clampScore(*row.Relevance),
			Ragebait:       clampScore(*row.Ragebait),
			CultureWar:     clampScore(*row.CultureWar),
			Novelty:        clampScore(*row.Novelty),
			Topics:         *row.Topics,
			ClusterKey:     *row.ClusterKey,
			ChallengeValue: clampScore(*row.ChallengeValue),
			Perspective:    *row.Perspective,
			Tone:           *row.Tone,
			ShouldRead:     *row.ShouldRead,
			CalmReason:     truncateRunes(*row.CalmReason, 280),
		})
	}
	return assessments, nil
}

// clampScore bounds a model score to 0..100
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// truncateRunes cuts s to at most n runes
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
