package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment.
type Config struct {
	// Currency of new markets.
	Currency string `env:"REIT_CURRENCY" envDefault:"REIT"`
	// Model used by the assist subcommand.
	Model string `env:"REIT_ASSIST_MODEL" envDefault:"gemini-2.5-flash"`
	// APIKey of the Gemini API. The genai client also reads it on its own.
	APIKey string `env:"GEMINI_API_KEY"`
	// Style is a glamour standard style, or "auto".
	Style string `env:"REIT_STYLE" envDefault:"auto"`
	// Width of the rendered markdown.
	Width int `env:"REIT_WRAP" envDefault:"100"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var conf Config
	if err := env.Parse(&conf); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if conf.Currency == "" {
		return Config{}, fmt.Errorf("parse env: REIT_CURRENCY is empty")
	}
	if conf.Width <= 0 {
		return Config{}, fmt.Errorf("parse env: REIT_WRAP must be positive, got %d", conf.Width)
	}
	return conf, nil
}
