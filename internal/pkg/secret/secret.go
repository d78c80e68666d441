package secret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"quill/internal/config"
	"quill/internal/pkg/apperr"
)

// 系统钥匙串中的服务名与账户名
const (
	ServiceName   = "quill"
	GeminiAccount = "gemini-api-key"
)

// API Key 缺失时返回给调用方的消息
const notConfiguredMessage = "API key not configured"

// Source API Key 来源
type Source interface {
	Name() string
	APIKey(ctx context.Context) (string, error)
}

// EnvSource 环境变量 / 配置文件中的 API Key（已由 viper 解析）
type EnvSource struct {
	Value string
}

func (s EnvSource) Name() string { return "environment" }

func (s EnvSource) APIKey(ctx context.Context) (string, error) {
	return s.Value, nil
}

// KeyringSource 系统钥匙串（macOS Keychain / Secret Service / Windows Credential Manager）
type KeyringSource struct {
	Service string
	Account string
}

// NewKeyringSource 创建默认服务名和账户的钥匙串来源
func NewKeyringSource() KeyringSource {
	return KeyringSource{Service: ServiceName, Account: GeminiAccount}
}

func (s KeyringSource) Name() string { return "keyring" }

func (s KeyringSource) APIKey(ctx context.Context) (string, error) {
	key, err := keyring.Get(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s/%s: %w", s.Service, s.Account, err)
	}
	return key, nil
}

// Save 写入钥匙串
func (s KeyringSource) Save(key string) error {
	return keyring.Set(s.Service, s.Account, strings.TrimSpace(key))
}

// Delete 从钥匙串删除
func (s KeyringSource) Delete() error {
	return keyring.Delete(s.Service, s.Account)
}

// StaticSource 显式注入的 API Key
type StaticSource string

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) APIKey(ctx context.Context) (string, error) {
	return string(s), nil
}

// FromConfig 根据 gemini.key_source 选择来源
func FromConfig(cfg *config.GeminiConfig) (Source, error) {
	switch cfg.KeySource {
	case config.KeySourceEnv, "":
		return EnvSource{Value: cfg.APIKey}, nil
	case config.KeySourceKeyring:
		return NewKeyringSource(), nil
	case config.KeySourceStatic:
		return StaticSource(cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown key source %q", cfg.KeySource)
	}
}

// Resolve 读取并校验 API Key，缺失时返回配置错误
func Resolve(ctx context.Context, src Source) (string, error) {
	key, err := src.APIKey(ctx)
	if err != nil {
		return "", apperr.New(apperr.KindConfiguration, notConfiguredMessage, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", apperr.New(apperr.KindConfiguration, notConfiguredMessage,
			fmt.Errorf("no API key found in %s", src.Name()))
	}
	return key, nil
}
