package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	AI       AIConfig
	Video    VideoConfig
	Offline  OfflineConfig
}

type AppConfig struct {
	Port         string
	Env          string
	LogLevel     string
	SeedDefaults bool
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type SecurityConfig struct {
	BcryptCost         int
	PrescriptionSecret string
}

// AIConfig points at an OpenAI-compatible chat completion endpoint.
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type VideoConfig struct {
	ICEServers   []string
	VoiceAgentID string
}

type OfflineConfig struct {
	CacheName string
	AssetDir  string
}

const (
	DefaultAIBaseURL      = "https://api.groq.com/openai/v1"
	DefaultAIModel        = "llama-3.3-70b-versatile"
	DefaultVoiceAgentID   = "agent_8301kagt7x3mfx7t515njgbvzrx7"
	DefaultOfflineCache   = "swasthyabandhu-v1"
	defaultAITemperature  = 0.7
	defaultAIMaxTokens    = 2048
	defaultBcryptCost     = 10
	defaultICEServersList = "stun:stun.l.google.com:19302,stun:stun1.l.google.com:19302"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEED_DEFAULTS", true)
	viper.SetDefault("BCRYPT_COST", defaultBcryptCost)
	viper.SetDefault("AI_BASE_URL", DefaultAIBaseURL)
	viper.SetDefault("AI_MODEL", DefaultAIModel)
	viper.SetDefault("AI_TEMPERATURE", defaultAITemperature)
	viper.SetDefault("AI_MAX_TOKENS", defaultAIMaxTokens)
	viper.SetDefault("ICE_SERVERS", defaultICEServersList)
	viper.SetDefault("VOICE_AGENT_ID", DefaultVoiceAgentID)
	viper.SetDefault("OFFLINE_CACHE_NAME", DefaultOfflineCache)
	viper.SetDefault("OFFLINE_ASSET_DIR", "./web")

	// The .env file is optional; plain environment variables are enough in containers.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	aiTimeout, err := time.ParseDuration(viper.GetString("AI_TIMEOUT"))
	if err != nil {
		aiTimeout = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:         viper.GetString("APP_PORT"),
			Env:          viper.GetString("APP_ENV"),
			LogLevel:     viper.GetString("LOG_LEVEL"),
			SeedDefaults: viper.GetBool("SEED_DEFAULTS"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Security: SecurityConfig{
			BcryptCost:         viper.GetInt("BCRYPT_COST"),
			PrescriptionSecret: viper.GetString("PRESCRIPTION_SECRET"),
		},
		AI: AIConfig{
			APIKey:      viper.GetString("AI_API_KEY"),
			BaseURL:     viper.GetString("AI_BASE_URL"),
			Model:       viper.GetString("AI_MODEL"),
			Temperature: float32(viper.GetFloat64("AI_TEMPERATURE")),
			MaxTokens:   viper.GetInt("AI_MAX_TOKENS"),
			Timeout:     aiTimeout,
		},
		Video: VideoConfig{
			ICEServers:   splitList(viper.GetString("ICE_SERVERS")),
			VoiceAgentID: viper.GetString("VOICE_AGENT_ID"),
		},
		Offline: OfflineConfig{
			CacheName: viper.GetString("OFFLINE_CACHE_NAME"),
			AssetDir:  viper.GetString("OFFLINE_ASSET_DIR"),
		},
	}

	return config, nil
}

// WatchOfflineCacheName calls onChange with OFFLINE_CACHE_NAME each time the
// .env file is rewritten. It returns false when there is no file to watch.
func WatchOfflineCacheName(onChange func(cacheName string)) bool {
	if _, err := os.Stat(viper.ConfigFileUsed()); err != nil {
		return false
	}

	viper.OnConfigChange(func(fsnotify.Event) {
		onChange(viper.GetString("OFFLINE_CACHE_NAME"))
	})
	viper.WatchConfig()
	return true
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
