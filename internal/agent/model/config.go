package model

import "time"

// ================ Config ================
type ConversationConfig struct {
	TTL      time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`
	MaxTurns int           `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
	Tools    struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"5"`
	}
}

type ResponseModelConfig struct {
	Model          string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature    float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.7"`
	ThinkingBudget int32   `envconfig:"RESPONSE_THINKING_BUDGET" default:"1024"`
}

type ResponsePromptConfig struct {
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"STUDIO 101"`
}
