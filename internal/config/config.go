package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all runtime configuration resolved from environment variables.
// It is built once at startup and read-only afterwards.
type Config struct {
	Port string
	Env  string // EnvDevelopment or EnvProduction

	SupabaseURL     string
	SupabaseAnonKey string

	WhatsDishBaseURL string

	AllowedOrigins []string // CORS allowed origins
}

// Load resolves configuration from the environment. NODE_ENV selects which
// of the DEV_/PROD_ variable pairs is active. A missing required variable is
// a startup failure: the caller is expected to exit rather than serve
// requests without a valid upstream target.
func Load() (*Config, error) {
	env := EnvDevelopment
	prefix := "DEV_"
	if os.Getenv("NODE_ENV") == EnvProduction {
		env = EnvProduction
		prefix = "PROD_"
	}

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            env,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	var err error
	if cfg.SupabaseURL, err = requireEnv(prefix + "SUPABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.SupabaseAnonKey, err = requireEnv(prefix + "SUPABASE_ANON_KEY"); err != nil {
		return nil, err
	}
	if cfg.WhatsDishBaseURL, err = requireEnv(prefix + "WHATS_DISH_BASE_URL"); err != nil {
		return nil, err
	}
	cfg.WhatsDishBaseURL = strings.TrimRight(cfg.WhatsDishBaseURL, "/")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return v, nil
}
