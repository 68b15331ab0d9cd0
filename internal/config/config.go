// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves scholarsynth configuration from the config
// file, environment, and secrets directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholarsynth/internal/secrets"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

// Init wires viper: optional .env file, explicit config file or the
// scholarsynth.yaml search paths, and SCHOLARSYNTH_ environment
// overrides. Called once from the CLI before commands run.
func Init(cfgFile string) {
	// Load .env if present; absence is the normal case in production.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholarsynth")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholarsynth"))
		}
	}

	viper.SetEnvPrefix("SCHOLARSYNTH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.max_retries", 5)
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.user_agent", "scholarsynth/0.1")
	viper.SetDefault("llm.model", "llama-3.3-70b-versatile")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.timeout", "90s")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("store.path", "")
	viper.SetDefault("agents_file", "")
}

// Load materializes the configuration from viper's resolved state.
func Load() types.Config {
	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			MaxResults: viper.GetInt("search.max_results"),
			MaxRetries: viper.GetInt("search.max_retries"),
		},
		LLM: types.LLMConfig{
			Model:       viper.GetString("llm.model"),
			APIKey:      viper.GetString("llm.api_key"),
			BaseURL:     viper.GetString("llm.base_url"),
			Temperature: viper.GetFloat64("llm.temperature"),
			Timeout:     viper.GetDuration("llm.timeout"),
		},
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
		Store: types.StoreConfig{
			Path: viper.GetString("store.path"),
		},
		AgentsFile: viper.GetString("agents_file"),
	}
}

// ResolveAPIKey fills cfg.LLM.APIKey from, in priority order: the value
// already configured, the GROQ_API_KEY environment variable, and the
// secrets directory. It reports whether a key was found; callers fail
// fast before any network call when it was not.
func ResolveAPIKey(cfg *types.Config, loaded map[string]string) bool {
	if strings.TrimSpace(cfg.LLM.APIKey) != "" {
		cfg.LLM.APIKey = strings.TrimSpace(cfg.LLM.APIKey)
		return true
	}
	if key := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); key != "" {
		cfg.LLM.APIKey = key
		return true
	}
	if key := strings.TrimSpace(loaded[secrets.GroqAPIKey]); key != "" {
		cfg.LLM.APIKey = key
		return true
	}
	return false
}
