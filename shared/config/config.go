package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	YouTube YouTubeConfig `yaml:"youtube"`
	AI      AIConfig      `yaml:"ai"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"SERVER_HOST"`
	Port int    `yaml:"port" env:"SERVER_PORT"`
}

type YouTubeConfig struct {
	ClientID     string `yaml:"client_id" env:"YOUTUBE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"YOUTUBE_CLIENT_SECRET"`
	Token        string `yaml:"token" env:"YOUTUBE_TOKEN"`
	RefreshToken string `yaml:"refresh_token" env:"YOUTUBE_REFRESH_TOKEN"`
	TokenURI     string `yaml:"token_uri" env:"YOUTUBE_TOKEN_URI"`
}

type AIConfig struct {
	GeminiAPIKey string  `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string  `yaml:"model"`
	Temperature  float64 `yaml:"temperature"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	// The config file is optional; everything can come from the environment.
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = os.Getenv("SERVER_HOST")
	}
	if cfg.Server.Port == 0 {
		if port := os.Getenv("SERVER_PORT"); port != "" {
			p, err := strconv.Atoi(port)
			if err != nil {
				return nil, fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
			}
			cfg.Server.Port = p
		}
	}
	if cfg.YouTube.ClientID == "" {
		cfg.YouTube.ClientID = os.Getenv("YOUTUBE_CLIENT_ID")
	}
	if cfg.YouTube.ClientSecret == "" {
		cfg.YouTube.ClientSecret = os.Getenv("YOUTUBE_CLIENT_SECRET")
	}
	if cfg.YouTube.Token == "" {
		cfg.YouTube.Token = os.Getenv("YOUTUBE_TOKEN")
	}
	if cfg.YouTube.RefreshToken == "" {
		cfg.YouTube.RefreshToken = os.Getenv("YOUTUBE_REFRESH_TOKEN")
	}
	if cfg.YouTube.TokenURI == "" {
		cfg.YouTube.TokenURI = os.Getenv("YOUTUBE_TOKEN_URI")
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.YouTube.TokenURI == "" {
		cfg.YouTube.TokenURI = "https://oauth2.googleapis.com/token"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.Temperature == 0 {
		// Low temperature keeps the educational scoring repeatable.
		cfg.AI.Temperature = 0.3
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.YouTube.ClientID == "" {
		return fmt.Errorf("YouTube client ID is required (set YOUTUBE_CLIENT_ID or youtube.client_id)")
	}
	if c.YouTube.ClientSecret == "" {
		return fmt.Errorf("YouTube client secret is required (set YOUTUBE_CLIENT_SECRET or youtube.client_secret)")
	}
	if c.YouTube.Token == "" && c.YouTube.RefreshToken == "" {
		return fmt.Errorf("a YouTube access token or refresh token is required (set YOUTUBE_TOKEN or YOUTUBE_REFRESH_TOKEN)")
	}
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	return nil
}
