package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "GEMINI_API_KEY",
		"QUILL_SERVER_HOST", "QUILL_SERVER_PORT", "QUILL_GEMINI_API_KEY",
		"QUILL_GEMINI_MODEL", "QUILL_GEMINI_KEY_SOURCE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	Convey("Load 加载配置", t, func() {
		clearEnv(t)
		dir := t.TempDir()

		Convey("无配置文件时使用默认值", func() {
			cfg, err := LoadWith(viper.New(), "")
			So(err, ShouldBeNil)
			So(cfg.Server.Host, ShouldEqual, "127.0.0.1")
			So(cfg.Server.Port, ShouldEqual, 8080)
			So(cfg.Server.Mode, ShouldEqual, "release")
			So(cfg.Gemini.Model, ShouldEqual, "gemini-2.0-flash")
			So(cfg.Gemini.BaseURL, ShouldEqual, "https://generativelanguage.googleapis.com")
			So(cfg.Gemini.KeySource, ShouldEqual, KeySourceEnv)
			So(cfg.Gemini.Timeout, ShouldEqual, 30*time.Second)
			So(cfg.Gemini.APIKey, ShouldBeEmpty)
			So(cfg.CORS.MaxAge, ShouldEqual, time.Hour)
			So(cfg.CORS.AllowOrigins, ShouldResemble, []string{"http://localhost:5173", "http://localhost:5174"})
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("从 YAML 文件读取", func() {
			path := filepath.Join(dir, "config.yaml")
			content := `server:
  host: 0.0.0.0
  port: 9090
  mode: debug
gemini:
  model: gemini-1.5-pro
  key_source: keyring
  timeout: 10s
cors:
  allow_origins:
    - https://paraphrase.example.com
  max_age: 30m
`
			So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)

			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Server.Addr(), ShouldEqual, "0.0.0.0:9090")
			So(cfg.Server.Mode, ShouldEqual, "debug")
			So(cfg.Gemini.Model, ShouldEqual, "gemini-1.5-pro")
			So(cfg.Gemini.KeySource, ShouldEqual, KeySourceKeyring)
			So(cfg.Gemini.Timeout, ShouldEqual, 10*time.Second)
			So(cfg.CORS.AllowOrigins, ShouldResemble, []string{"https://paraphrase.example.com"})
			So(cfg.CORS.MaxAge, ShouldEqual, 30*time.Minute)
		})

		Convey("兼容 HOST、PORT、GEMINI_API_KEY 环境变量", func() {
			t.Setenv("HOST", "10.0.0.1")
			t.Setenv("PORT", "7000")
			t.Setenv("GEMINI_API_KEY", "env-key")

			cfg, err := LoadWith(viper.New(), "")
			So(err, ShouldBeNil)
			So(cfg.Server.Host, ShouldEqual, "10.0.0.1")
			So(cfg.Server.Port, ShouldEqual, 7000)
			So(cfg.Gemini.APIKey, ShouldEqual, "env-key")
		})

		Convey("QUILL_ 前缀环境变量优先", func() {
			t.Setenv("PORT", "7000")
			t.Setenv("QUILL_SERVER_PORT", "7100")
			t.Setenv("QUILL_GEMINI_MODEL", "gemini-2.5-flash")

			cfg, err := LoadWith(viper.New(), "")
			So(err, ShouldBeNil)
			So(cfg.Server.Port, ShouldEqual, 7100)
			So(cfg.Gemini.Model, ShouldEqual, "gemini-2.5-flash")
		})

		Convey("配置文件不存在时报错", func() {
			_, err := Load(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})

		Convey("配置文件格式错误时报错", func() {
			path := filepath.Join(dir, "bad.yaml")
			So(os.WriteFile(path, []byte("server: [unclosed"), 0o644), ShouldBeNil)

			_, err := Load(path)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: "release"},
			Gemini: GeminiConfig{Model: "gemini-2.0-flash", KeySource: KeySourceEnv, Timeout: 30 * time.Second},
			CORS:   CORSConfig{AllowOrigins: []string{"http://localhost:5173"}, MaxAge: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, true},
		{"bad key source", func(c *Config) { c.Gemini.KeySource = "vault" }, true},
		{"keyring source", func(c *Config) { c.Gemini.KeySource = KeySourceKeyring }, false},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }, true},
		{"zero timeout", func(c *Config) { c.Gemini.Timeout = 0 }, true},
		{"no cors origins", func(c *Config) { c.CORS.AllowOrigins = nil }, true},
		{"bad cors origin", func(c *Config) { c.CORS.AllowOrigins = []string{"localhost:5173"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
