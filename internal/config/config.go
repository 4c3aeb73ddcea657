package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	APIURL        string
	DBPath        string
	TokenPath     string
	Timeout       time.Duration
	UpcomingLimit int
	LogLevel      string
	LogFile       string
	AuthTokens    []string
}

// Dir is where geraapp keeps its token, cache database and serve tokens.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".geraapp"
	}
	return filepath.Join(home, ".geraapp")
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://127.0.0.1:8000")
	v.SetDefault("database_path", filepath.Join(Dir(), "dashboard.db"))
	v.SetDefault("token_path", filepath.Join(Dir(), "token"))
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("upcoming_limit", 5)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration from v, layered over .env and GERAAPP_*
// environment variables.
func LoadFrom(v *viper.Viper) (*Config, error) {
	godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix("geraapp")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("api_url", "GERAAPP_API_URL")
	v.BindEnv("database_path", "GERAAPP_DATABASE_PATH", "DATABASE_PATH")
	v.BindEnv("auth_tokens", "GERAAPP_AUTH_TOKENS")

	cfg := &Config{
		APIURL:        strings.TrimRight(v.GetString("api_url"), "/"),
		DBPath:        v.GetString("database_path"),
		TokenPath:     v.GetString("token_path"),
		Timeout:       v.GetDuration("timeout"),
		UpcomingLimit: v.GetInt("upcoming_limit"),
		LogLevel:      v.GetString("log_level"),
		LogFile:       v.GetString("log_file"),
		AuthTokens:    loadAuthTokens(v.GetString("auth_tokens")),
	}

	return cfg, nil
}

// loadAuthTokens merges comma separated tokens from the environment with the
// ones saved by "geraapp token generate --save".
func loadAuthTokens(env string) []string {
	var tokens []string
	seen := make(map[string]bool)
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		tokens = append(tokens, t)
	}

	for _, t := range strings.Split(env, ",") {
		add(t)
	}

	if data, err := os.ReadFile(ServeTokensPath()); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			add(line)
		}
	}

	return tokens
}

func ServeTokensPath() string {
	return filepath.Join(Dir(), "serve_tokens")
}
