package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings for the application, resolved once at startup.
// Secrets (DB password, JWT secret, LLM API keys) come from the environment
// or the config file, never from source.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	LLM    LLMConfig
	Quiz   QuizConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MaxUploadSize int // bytes; cap on PDF uploads
}

type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool // apply pending migrations at API startup
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type LLMConfig struct {
	Source string // "gemini" or "ollama"
	Gemini GeminiConfig
	Ollama OllamaConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

type QuizConfig struct {
	NumQuestions     int           // generator target per quiz
	DefaultTimeLimit int           // minutes
	ListCacheTTL     time.Duration // TTL for cached quiz listings
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml plus environment overrides into a Config.
// A missing config file is not fatal as long as the required values are
// present in the environment.
func LoadConfig() (*Config, error) {
	// Load .env if present; containers can rely on real env vars instead.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	bindEnvAliases()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          viper.GetInt("server.port"),
			ReadTimeout:   viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout:  viper.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:   viper.GetDuration("server.idle_timeout") * time.Second,
			MaxUploadSize: viper.GetInt("server.max_upload_size"),
		},
		DB: DBConfig{
			Host:        viper.GetString("db.host"),
			Port:        viper.GetInt("db.port"),
			User:        viper.GetString("db.user"),
			Password:    viper.GetString("db.password"),
			DBName:      viper.GetString("db.name"),
			SSLMode:     viper.GetString("db.sslmode"),
			AutoMigrate: viper.GetBool("db.auto_migrate"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
			TokenTTL:  viper.GetDuration("auth.token_ttl_hours") * time.Hour,
		},
		LLM: LLMConfig{
			Source: viper.GetString("llm.source"),
			Gemini: GeminiConfig{
				APIKey: viper.GetString("llm.gemini.api_key"),
				Model:  viper.GetString("llm.gemini.model"),
			},
			Ollama: OllamaConfig{
				ServerURL: viper.GetString("llm.ollama.server_url"),
				Model:     viper.GetString("llm.ollama.model"),
			},
		},
		Quiz: QuizConfig{
			NumQuestions:     viper.GetInt("quiz.num_questions"),
			DefaultTimeLimit: viper.GetInt("quiz.default_time_limit"),
			ListCacheTTL:     viper.GetDuration("quiz.list_cache_ttl") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (JWT_SECRET) is required")
	}

	return cfg, nil
}

// bindEnvAliases maps conventional environment variable names onto config keys.
func bindEnvAliases() {
	aliases := map[string]string{
		"server.port":           "SERVER_PORT",
		"db.host":               "DB_HOST",
		"db.port":               "DB_PORT",
		"db.user":               "DB_USER",
		"db.password":           "DB_PASSWORD",
		"db.name":               "DB_NAME",
		"redis.address":         "REDIS_ADDRESS",
		"redis.password":        "REDIS_PASSWORD",
		"auth.jwt_secret":       "JWT_SECRET",
		"llm.source":            "LLM_SOURCE",
		"llm.gemini.api_key":    "GEMINI_API_KEY",
		"llm.ollama.server_url": "OLLAMA_SERVER_URL",
		"logger.env":            "ENV",
	}
	for key, env := range aliases {
		_ = viper.BindEnv(key, env)
	}
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.idle_timeout", 20)
	viper.SetDefault("server.max_upload_size", 5*1024*1024)
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.auto_migrate", false)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("llm.source", "gemini")
	viper.SetDefault("llm.gemini.model", "gemini-1.5-pro")
	viper.SetDefault("llm.ollama.model", "qwen3:0.6b")
	viper.SetDefault("quiz.num_questions", 5)
	viper.SetDefault("quiz.default_time_limit", 15)
	viper.SetDefault("quiz.list_cache_ttl", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}

// GetDSN returns the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
