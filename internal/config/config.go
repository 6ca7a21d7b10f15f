package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPlaceholderURL 随 web/static 一起发布的占位缩略图
const DefaultPlaceholderURL = "/static/placeholder.svg"

// Config 对应 config.yaml 的结构，所有字段都可以用环境变量覆盖，
// 例如 llm.token -> LLM_TOKEN
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Vote      VoteConfig      `mapstructure:"vote"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Generate  GenerateConfig  `mapstructure:"generate"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port          string   `mapstructure:"port"`
	Mode          string   `mapstructure:"mode"`
	CorsOrigins   []string `mapstructure:"cors_origins"`
	TemplatesDir  string   `mapstructure:"templates_dir"`
	StaticDir     string   `mapstructure:"static_dir"`
	SessionSecret string   `mapstructure:"session_secret"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite
	URL    string `mapstructure:"url"`
}

type LLMConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Token           string        `mapstructure:"token"`
	Model           string        `mapstructure:"model"`
	ImageModel      string        `mapstructure:"image_model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CodeTemperature float64       `mapstructure:"code_temperature"`
	StrictMatch     bool          `mapstructure:"strict_match"`
}

type StorageConfig struct {
	BucketURL      string `mapstructure:"bucket_url"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	PlaceholderURL string `mapstructure:"placeholder_url"`
}

type VoteConfig struct {
	Salt string `mapstructure:"salt"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"` // 为空时使用进程内事件总线
}

type SchedulerConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	Retry         time.Duration `mapstructure:"retry"`
	Poll          time.Duration `mapstructure:"poll"` // 0 表示不在进程内轮询
	CronTokenHash string        `mapstructure:"cron_token_hash"`
}

type GenerateConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.templates_dir", "./web/templates")
	v.SetDefault("server.static_dir", "./web/static")
	v.SetDefault("server.session_secret", "secret_key_change_me")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "host=localhost user=postgres password=postgres dbname=gameforge port=5432 sslmode=disable TimeZone=UTC")

	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.token", "")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.image_model", "dall-e-3")
	v.SetDefault("llm.timeout", 2*time.Minute)
	v.SetDefault("llm.code_temperature", 0.7)
	v.SetDefault("llm.strict_match", true)

	v.SetDefault("storage.bucket_url", "file://./data/thumbnails")
	v.SetDefault("storage.public_base_url", "/thumbnails")
	v.SetDefault("storage.placeholder_url", DefaultPlaceholderURL)

	v.SetDefault("vote.salt", "salt_for_privacy")

	v.SetDefault("redis.url", "")

	v.SetDefault("scheduler.interval", 3*time.Hour)
	v.SetDefault("scheduler.retry", 30*time.Minute)
	v.SetDefault("scheduler.poll", time.Duration(0))
	v.SetDefault("scheduler.cron_token_hash", "")

	v.SetDefault("generate.timeout", 2*time.Minute)

	v.SetDefault("log.file", "")
}

// Load 读取 config.yaml（可选）与环境变量。找不到配置文件不算错误。
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
