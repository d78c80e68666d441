package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// 密钥来源
const (
	KeySourceEnv     = "env"     // 环境变量 / 配置文件
	KeySourceKeyring = "keyring" // 系统钥匙串
	KeySourceStatic  = "static"  // 显式注入（测试）
)

// Config 应用配置根结构
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Log    LogConfig    `mapstructure:"log"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Swagger      bool          `mapstructure:"swagger"`
}

// GeminiConfig 上游生成 API 配置
type GeminiConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	APIKey    string        `mapstructure:"api_key"`
	KeySource string        `mapstructure:"key_source"` // env, keyring, static
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string      `mapstructure:"allow_origins"`
	MaxAge       time.Duration `mapstructure:"max_age"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	validSources := map[string]bool{KeySourceEnv: true, KeySourceKeyring: true, KeySourceStatic: true}
	if !validSources[c.Gemini.KeySource] {
		return fmt.Errorf("invalid gemini key source %q, must be env/keyring/static", c.Gemini.KeySource)
	}

	if c.Gemini.Model == "" {
		return errors.New("gemini model is required")
	}
	if c.Gemini.Timeout <= 0 {
		return errors.New("gemini timeout must be positive")
	}

	if len(c.CORS.AllowOrigins) == 0 {
		return errors.New("cors allow_origins must not be empty")
	}
	for _, origin := range c.CORS.AllowOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid cors origin %q, must start with http:// or https://", origin)
		}
	}

	return nil
}
