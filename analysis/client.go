// Package analysis turns scraped product data into a structured
// research report through one chat-completion request against an
// OpenAI-compatible endpoint.
package analysis

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.uber.org/zap"

	"github.com/Ruscigno/argus/model"
)

const maxReportTokens = 4096

// Client is the analysis client. The base URL decides which hosted
// model family answers; the prompt and parse policy stay the same.
type Client struct {
	api   openai.Client
	model string
}

// NewClient creates an analysis client for the given endpoint.
func NewClient(apiKey, baseURL, modelName string) *Client {
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: modelName,
	}
}

// Analyze sends one completion request over the full product batch and
// parses the JSON reply. A reply that cannot be parsed as the report
// schema is fatal for the run; there is no repair or retry here.
func (c *Client) Analyze(ctx context.Context, products []model.ProductWithReviews, query string) (*model.AnalysisReport, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(c.model),
		MaxTokens: openai.Int(maxReportTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildUserPrompt(products, query)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %v", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("analysis returned no choices")
	}

	report, err := ParseReport(completion.Choices[0].Message.Content)
	if err != nil {
		zap.L().Error("analysis reply was not valid report JSON", zap.Error(err))
		return nil, err
	}
	return report, nil
}
