package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	Redis     RedisConfig
	Telegram  TelegramConfig
	Speech    SpeechConfig
	Scheduler SchedulerConfig
	Pipeline  PipelineConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
	// SendRate caps outbound messages per second across the whole bot.
	SendRate float64
}

type SpeechConfig struct {
	CredentialsPath string
	Language        string
	SampleRateHertz int
	FFmpegPath      string
}

type SchedulerConfig struct {
	Interval   time.Duration
	SendWindow time.Duration
	RetryDelay time.Duration
	Expiry     time.Duration
}

type PipelineConfig struct {
	WorkersPerQueue int
	RetryBackoff    time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	if redisAddr := viper.GetString("redis_addr"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SendRate = viper.GetFloat64("telegram.send_rate")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.Speech.CredentialsPath = viper.GetString("speech.credentials_path")
	cfg.Speech.Language = viper.GetString("speech.language")
	cfg.Speech.SampleRateHertz = viper.GetInt("speech.sample_rate_hertz")
	cfg.Speech.FFmpegPath = viper.GetString("speech.ffmpeg_path")
	if speechCreds := viper.GetString("speech_credentials"); speechCreds != "" {
		cfg.Speech.CredentialsPath = speechCreds
	}

	cfg.Scheduler.Interval = viper.GetDuration("scheduler.interval")
	cfg.Scheduler.SendWindow = viper.GetDuration("scheduler.send_window")
	cfg.Scheduler.RetryDelay = viper.GetDuration("scheduler.retry_delay")
	cfg.Scheduler.Expiry = viper.GetDuration("scheduler.expiry")

	cfg.Pipeline.WorkersPerQueue = viper.GetInt("pipeline.workers_per_queue")
	cfg.Pipeline.RetryBackoff = viper.GetDuration("pipeline.retry_backoff")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("telegram.send_rate", 25.0)

	viper.SetDefault("speech.language", "ru-RU")
	viper.SetDefault("speech.sample_rate_hertz", 48000)
	viper.SetDefault("speech.ffmpeg_path", "ffmpeg")

	viper.SetDefault("scheduler.interval", "5s")
	viper.SetDefault("scheduler.send_window", "120s")
	viper.SetDefault("scheduler.retry_delay", "300s")
	viper.SetDefault("scheduler.expiry", "200s")

	viper.SetDefault("pipeline.workers_per_queue", 5)
	viper.SetDefault("pipeline.retry_backoff", "10s")
}
