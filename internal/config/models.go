package config

import "time"

// LLMConfig holds provider selection for the classifier.
type LLMConfig struct {
	Provider        string
	MinAIConfidence float64
}

// OpenAIConfig holds the OpenAI provider settings.
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// GeminiConfig holds the Google Gemini provider settings.
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// BedrockConfig holds the AWS Bedrock provider settings.
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// ClassifierConfig holds classification thresholds.
type ClassifierConfig struct {
	RetainThreshold float64
}

// BatchConfig holds batch recategorization settings.
type BatchConfig struct {
	StaleAfter time.Duration
	AIDelay    time.Duration
}

// StoreConfig holds the job store settings.
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// ServerConfig holds the transport settings.
type ServerConfig struct {
	HTTPEnabled         bool
	HTTPAddress         string
	SMTPEnabled         bool
	SMTPAddress         string
	SMTPDomain          string
	SMTPMaxMessageBytes int
}

// IngestConfig holds the mailbox import settings.
type IngestConfig struct {
	Maildir      string
	Lookback     time.Duration
	DefaultOwner string
}

// LLM returns the LLM provider configuration.
func (c *Config) LLM() LLMConfig {
	return LLMConfig{
		Provider:        c.GetString("llm.provider"),
		MinAIConfidence: c.GetFloat64("llm.min_ai_confidence"),
	}
}

// OpenAI returns the OpenAI provider configuration.
func (c *Config) OpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: c.GetFloat64("openai.temperature"),
		TopP:        c.GetFloat64("openai.top_p"),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// Gemini returns the Gemini provider configuration.
func (c *Config) Gemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: c.GetFloat64("gemini.temperature"),
		TopP:        c.GetFloat64("gemini.top_p"),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// Bedrock returns the Bedrock provider configuration.
func (c *Config) Bedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: c.GetFloat64("bedrock.temperature"),
		TopP:        c.GetFloat64("bedrock.top_p"),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// Classifier returns the classification threshold configuration.
func (c *Config) Classifier() ClassifierConfig {
	return ClassifierConfig{
		RetainThreshold: c.GetFloat64("classifier.retain_threshold"),
	}
}

// Batch returns the batch recategorization configuration.
func (c *Config) Batch() (BatchConfig, error) {
	staleAfter, err := c.GetDuration("batch.stale_after")
	if err != nil {
		return BatchConfig{}, err
	}
	aiDelay, err := c.GetDuration("batch.ai_delay")
	if err != nil {
		return BatchConfig{}, err
	}
	return BatchConfig{StaleAfter: staleAfter, AIDelay: aiDelay}, nil
}

// Store returns the job store configuration.
func (c *Config) Store() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// Server returns the transport configuration.
func (c *Config) Server() ServerConfig {
	return ServerConfig{
		HTTPEnabled:         c.GetBool("server.http_enabled"),
		HTTPAddress:         c.GetString("server.http_address"),
		SMTPEnabled:         c.GetBool("server.smtp_enabled"),
		SMTPAddress:         c.GetString("server.smtp_address"),
		SMTPDomain:          c.GetString("server.smtp_domain"),
		SMTPMaxMessageBytes: c.GetInt("server.smtp_max_message_bytes"),
	}
}

// Ingest returns the mailbox import configuration.
func (c *Config) Ingest() (IngestConfig, error) {
	lookback, err := c.GetDuration("ingest.lookback")
	if err != nil {
		return IngestConfig{}, err
	}
	return IngestConfig{
		Maildir:      c.GetString("ingest.maildir"),
		Lookback:     lookback,
		DefaultOwner: c.GetString("ingest.default_owner"),
	}, nil
}
