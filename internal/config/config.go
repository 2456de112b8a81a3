package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
	Image  ImageConfig  `mapstructure:"image" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins lists browser origins permitted by CORS. Empty means
	// same-origin only.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig contains generator integration settings. The API key is the
// single credential the whole system depends on; it is read once at process
// start and its absence blocks all generator calls.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"`
}

// ImageConfig contains flashcard illustration lookup settings.
type ImageConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Width   int    `mapstructure:"width"    validate:"required,gt=0"`
	Height  int    `mapstructure:"height"   validate:"required,gt=0"`
}
