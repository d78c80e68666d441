package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "QUILL"

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.swagger", true)

	// Gemini
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.key_source", KeySourceEnv)
	v.SetDefault("gemini.timeout", "30s")

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.time_format", "RFC3339")

	// CORS
	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173", "http://localhost:5174"})
	v.SetDefault("cors.max_age", "1h")
}

// BindEnv 绑定环境变量
// 除 QUILL_ 前缀外，兼容部署环境常用的 HOST、PORT、GEMINI_API_KEY
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("server.host", envPrefix+"_SERVER_HOST", "HOST")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
}

// Load 读取配置文件与环境变量并反序列化
// cfgFile 为空时在默认路径查找 config.yaml，找不到则仅使用默认值和环境变量
func Load(cfgFile string) (*Config, error) {
	return LoadWith(viper.New(), cfgFile)
}

// LoadWith 使用指定 viper 实例加载配置（命令行参数已绑定到该实例）
func LoadWith(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.quill")
	}

	BindEnv(v)
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
