package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"shopmate.db"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Generative chat. Missing key degrades /chat instead of aborting startup.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Hosted sentiment classifier (HF-inference-style endpoint).
	SentimentAPIURL   string `env:"SENTIMENT_API_URL" envDefault:"https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"`
	SentimentAPIToken string `env:"SENTIMENT_API_TOKEN"`

	// Image feature extractor (TF-Serving-style predict endpoint).
	FeatureExtractorURL string `env:"FEATURE_EXTRACTOR_URL" envDefault:"http://localhost:8501/v1/models/resnet50:predict"`

	// Static product dataset.
	CatalogPath string `env:"CATALOG_PATH" envDefault:"data/products.csv"`

	// Carried from the environment but unused beyond storage.
	SecretKey string `env:"SECRET_KEY"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
