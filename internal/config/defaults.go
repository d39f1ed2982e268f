package config

const (
	defaultOpenAIBaseURL   = "https://api.openai.com/v1"
	defaultTranscribeModel = "gpt-4o-transcribe"
	defaultChatModel       = "gpt-4o-mini"
	defaultTimeoutSeconds  = 120
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		OpenAI: OpenAI{
			BaseURL:         defaultOpenAIBaseURL,
			TranscribeModel: defaultTranscribeModel,
			ChatModel:       defaultChatModel,
			TimeoutSeconds:  defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
