package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool           `mapstructure:"verbose"`
	Config  string         `mapstructure:"config"`
	Project ProjectConfig  `mapstructure:"project" validate:"required"`
	Data    DataConfig     `mapstructure:"data" validate:"required"`
	LLM     LLMConfig      `mapstructure:"llm" validate:"omitempty"`
	Server  ServerConfig   `mapstructure:"server" validate:"omitempty"`
	Remind  ReminderConfig `mapstructure:"remind" validate:"omitempty"`
}

// ProjectConfig holds the data directory layout
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds blob storage configuration. File names are resolved
// relative to the project root directory.
type DataConfig struct {
	TasksFile   string `mapstructure:"tasksFile" validate:"required"`
	JournalFile string `mapstructure:"journalFile" validate:"required"`
	TagsFile    string `mapstructure:"tagsFile" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LLMConfig holds configuration for the AI reflection and breakdown features
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// RequestTimeoutSeconds controls the HTTP client timeout for LLM calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables extra request/response logging within the LLM provider (generally tied to --verbose)
	Debug bool `mapstructure:"debug"`
}

// ServerConfig holds settings for the local HTTP API
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// ReminderConfig holds settings for the reminder scanner
type ReminderConfig struct {
	IntervalSeconds int `mapstructure:"intervalSeconds" validate:"omitempty,min=1,max=3600"`
}
