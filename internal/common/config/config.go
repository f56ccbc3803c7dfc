// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Crosswalk  CrosswalkConfig  `mapstructure:"crosswalk"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ExtractionConfig holds settings for the document extractor.
type ExtractionConfig struct {
	OCREnabled    bool   `mapstructure:"ocr_enabled"`
	OCRLanguage   string `mapstructure:"ocr_language"`
	MinTextLength int    `mapstructure:"min_text_length"`
}

// CrosswalkConfig holds settings for the alignment engine.
type CrosswalkConfig struct {
	CorpusPath  string `mapstructure:"corpus_path"`
	MaxFeatures int    `mapstructure:"max_features"`
}

// MetricsConfig holds settings for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// TracingConfig holds settings for trace export.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
