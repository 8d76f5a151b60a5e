package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient is an implementation of the LLMClassifier interface using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
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
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ClassifyEmail analyzes an email to determine its application status
func (c *GeminiClient) ClassifyEmail(ctx context.Context, email *core.EmailRecord) (*core.AIClassification, error) {
	body := c.textProcessor.ProcessText(email.Content, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, email.From, email.Subject, body)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	classification, err := core.ParseAIClassification(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	classification.Model = c.modelName

	c.logger.Debug("Gemini classification complete",
		zap.String("status", string(classification.Status)),
		zap.Float64("confidence", classification.Confidence))

	return classification, nil
}
