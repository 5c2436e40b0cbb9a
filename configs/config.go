package configs

import (
	"errors"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App            `mapstructure:"app"`
	Postgres       `mapstructure:"postgres"`
	Redis          `mapstructure:"redis"`
	Assistant      `mapstructure:"assistant"`
	Gemini         `mapstructure:"gemini"`
	Session        `mapstructure:"session"`
	Recommendation `mapstructure:"recommendation"`
	Checkout       `mapstructure:"checkout"`
	Speech         `mapstructure:"speech"`
	Log            `mapstructure:"log"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
	// Storage selects the catalog and cart backend: postgres or memory
	Storage string `mapstructure:"storage"`
}

// Postgres struct
type Postgres struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DbName       string `mapstructure:"database"`
	SSLMode      bool   `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// Redis struct
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Assistant struct - text (RAG) and voice endpoints
type Assistant struct {
	TextURL        string `mapstructure:"text_url"`
	VoiceURL       string `mapstructure:"voice_url"`
	Timeout        int    `mapstructure:"timeout"`         // seconds
	CaptureCeiling int    `mapstructure:"capture_ceiling"` // seconds
	ContextTurns   int    `mapstructure:"context_turns"`
	MinAudioBytes  int    `mapstructure:"min_audio_bytes"`
}

// Gemini struct
type Gemini struct {
	APIKey         string `mapstructure:"api_key"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// Session struct
type Session struct {
	Store    string `mapstructure:"store"`     // memory or redis
	Timeout  int    `mapstructure:"timeout"`   // minutes
	MaxTurns int    `mapstructure:"max_turns"` // 0 keeps every turn
	Cookie   string `mapstructure:"cookie"`
	MaxAge   int    `mapstructure:"max_age"` // days
}

// Recommendation struct
type Recommendation struct {
	MatchThreshold float64 `mapstructure:"match_threshold"`
	MatchCount     int     `mapstructure:"match_count"`
	BackfillBatch  int     `mapstructure:"backfill_batch"`
}

// Checkout struct
type Checkout struct {
	ProcessingDelay int `mapstructure:"processing_delay"` // milliseconds
}

// Speech struct
type Speech struct {
	Lang   string  `mapstructure:"lang"`
	Rate   float64 `mapstructure:"rate"`
	Pitch  float64 `mapstructure:"pitch"`
	Volume float64 `mapstructure:"volume"`
}

// Log struct
type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func setDefaults(env string) {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", env)
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.storage", "postgres")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.username", "postgres")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "storefront")
	viper.SetDefault("postgres.sslmode", false)
	viper.SetDefault("postgres.max_open_conns", 0)
	viper.SetDefault("postgres.max_idle_conns", 0)
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("assistant.text_url", "http://localhost:8501/api/query")
	viper.SetDefault("assistant.voice_url", "http://localhost:8502/api/voice/chat")
	viper.SetDefault("assistant.timeout", 0)
	viper.SetDefault("assistant.capture_ceiling", 0)
	viper.SetDefault("assistant.context_turns", 0)
	viper.SetDefault("assistant.min_audio_bytes", 0)
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.embedding_model", "text-embedding-004")
	viper.SetDefault("session.store", "memory")
	viper.SetDefault("session.timeout", 0)
	viper.SetDefault("session.max_turns", 0)
	viper.SetDefault("session.cookie", "cart_session_id")
	viper.SetDefault("session.max_age", 365)
	viper.SetDefault("recommendation.match_threshold", 0)
	viper.SetDefault("recommendation.match_count", 0)
	viper.SetDefault("recommendation.backfill_batch", 0)
	viper.SetDefault("checkout.processing_delay", 2000)
	viper.SetDefault("speech.lang", "es-ES")
	viper.SetDefault("speech.rate", 0.85)
	viper.SetDefault("speech.pitch", 1.0)
	viper.SetDefault("speech.volume", 0.9)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	if env != "" {
		viper.SetConfigName("config." + env)
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(env)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && errors.As(err, &notFound) && env != "" {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}
	switch {
	case err == nil:
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			logrus.Infoln("Config file has changed: ", e.Name)
		})
	case errors.As(err, &notFound):
		logrus.Warnln("No config file found, using defaults and environment")
	default:
		panic(err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Fatalln(err)
	}
}
