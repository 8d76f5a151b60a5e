package openai

import (
	"context"
	"fmt"

	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClassifier interface using OpenAI
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `You are a job application email analyzer. Analyze the following email from a job seeker's inbox.
Respond with a JSON object containing:
- status: one of "applied", "interviewing", "offered", "rejected", "ghosted"
- company: string or null (the hiring company's name, null if you cannot tell)
- job_title: string or null (the position applied for, null if you cannot tell)
- confidence: number between 0 and 1 (how confident you are in your assessment)
- reasoning: string (brief explanation of your assessment)

Email:
From: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`,
	}
}

// ClassifyEmail analyzes an email to determine its application status
func (c *OpenAIClient) ClassifyEmail(ctx context.Context, email *core.EmailRecord) (*core.AIClassification, error) {
	body := c.textProcessor.ProcessText(email.Content, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, email.From, email.Subject, body)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a job application email analyzer. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	classification, err := core.ParseAIClassification(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	classification.Model = c.modelName

	c.logger.Debug("OpenAI classification complete",
		zap.String("status", string(classification.Status)),
		zap.Float64("confidence", classification.Confidence),
		zap.String("request_id", resp.ID))

	return classification, nil
}
