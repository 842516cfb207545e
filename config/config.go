package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体，Load 之后不可变
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Server ServerConfig `mapstructure:"server"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Search SearchConfig `mapstructure:"search"`
	Agent  AgentConfig  `mapstructure:"agent"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig 对外展示的API元信息
type APIConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Host string `mapstructure:"host"`
	Mode string `mapstructure:"mode"`
}

// OpenAIConfig LLM提供方配置
type OpenAIConfig struct {
	APIKey          string   `mapstructure:"api_key"`
	BaseURL         string   `mapstructure:"base_url"`
	Model           string   `mapstructure:"model"`
	AvailableModels []string `mapstructure:"available_models"`
}

// SearchConfig 可选的搜索提供方配置
type SearchConfig struct {
	SerpAPIKey string `mapstructure:"serpapi_api_key"`
}

// AgentConfig agent运行配置
type AgentConfig struct {
	MaxIterations int           `mapstructure:"max_iterations"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load 初始化配置：.env -> 环境变量(APP_前缀) -> config.toml -> 默认值。
// 必填项缺失时直接返回错误，进程不应继续启动。
func Load() (*Config, error) {
	// .env 存在时先加载，保持和原有部署方式兼容
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 兼容不带前缀的密钥变量
	_ = v.BindEnv("openai.api_key", "APP_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("search.serpapi_api_key", "APP_SERPAPI_API_KEY", "SERPAPI_API_KEY")

	// 配置文件可选，读不到时退回默认值+环境变量
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required but not set")
	}

	return cfg, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// API元信息默认值
	v.SetDefault("api.title", "LLM Agent Server")
	v.SetDefault("api.description", "A simple API for interacting with LLM agents")
	v.SetDefault("api.version", "0.1.0")

	// 服务器默认配置
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.mode", "release")

	// LLM默认配置
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.available_models", []string{"gpt-3.5-turbo", "gpt-4o", "gpt-4-turbo"})

	// agent默认配置，timeout为0表示不限制单次请求时长
	v.SetDefault("agent.max_iterations", 10)
	v.SetDefault("agent.timeout", "0s")

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
}

// GetServerAddr 获取服务器监听地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// ModelAvailable 判断模型名是否在允许列表内
func (c *Config) ModelAvailable(model string) bool {
	for _, m := range c.OpenAI.AvailableModels {
		if m == model {
			return true
		}
	}
	return false
}
