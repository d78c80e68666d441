package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quill/internal/config"
	"quill/internal/metrics"
	"quill/internal/pkg/apperr"
	"quill/internal/pkg/ctxutil"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 30 * time.Second

	// 上游响应体读取上限
	maxResponseBytes = 8 << 20
)

// Client generateContent 接口客户端
// 创建后只读，可被并发请求共享
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client（测试或自定义 Transport）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 创建客户端
func NewClient(cfg *config.GeminiConfig, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  apiKey,
		timeout: cfg.Timeout,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	c.httpClient = &http.Client{Timeout: c.timeout}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model 模型名称
func (c *Client) Model() string {
	return c.model
}

// endpoint 返回请求地址；withKey 为 false 时用于日志
func (c *Client) endpoint(withKey bool) string {
	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	if withKey {
		u += "?key=" + url.QueryEscape(c.apiKey)
	}
	return u
}

// Generate 发送 prompt 并返回第一个 candidate 的文本
// 失败时返回 *apperr.Error，Kind 对应失败类型
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	logger := c.logger(ctx)

	if c.apiKey == "" {
		logger.Error().Msg("gemini API key not configured")
		return "", apperr.New(apperr.KindConfiguration, "API key not configured", nil)
	}

	body, err := json.Marshal(NewGenerateRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(true), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug().
		Str("url", c.endpoint(false)).
		Int("prompt_chars", len(prompt)).
		RawJSON("request", body).
		Msg("sending request to gemini")

	start := time.Now()
	status, respBody, err := c.do(req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.UpstreamDuration.WithLabelValues(c.model, string(apperr.KindUpstreamUnavailable)).Observe(elapsed.Seconds())
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("gemini request failed")
		return "", transportError(err)
	}

	logger.Debug().
		Int("status", status).
		Dur("elapsed", elapsed).
		Str("body", string(respBody)).
		Msg("received response from gemini")

	text, err := c.interpret(logger, respBody)
	outcome := "success"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	metrics.UpstreamDuration.WithLabelValues(c.model, outcome).Observe(elapsed.Seconds())

	return text, err
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error 中带有完整 URL，去掉 key 再向上返回
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.endpoint(false)
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) interpret(logger zerolog.Logger, body []byte) (string, error) {
	outcome, err := Decode(body)
	if err != nil {
		logger.Error().Err(err).Str("body", string(body)).Msg("failed to parse gemini response")
		return "", apperr.New(apperr.KindUpstreamParse, "Failed to parse API response", err).WithBody(body)
	}

	switch o := outcome.(type) {
	case APIFailure:
		logger.Error().
			Int("code", o.Code).
			Str("status", o.Status).
			Str("message", o.Message).
			Msg("gemini API error")
		return "", apperr.New(apperr.KindUpstreamAPI, o.Message,
			fmt.Errorf("gemini API error %d %s", o.Code, o.Status))
	case Generated:
		event := logger.Debug().
			Str("finish_reason", o.FinishReason).
			Str("model_version", o.ModelVersion)
		if o.Usage != nil {
			event = event.
				Int("prompt_tokens", o.Usage.PromptTokenCount).
				Int("output_tokens", o.Usage.CandidatesTokenCount)
		}
		event.Msg("gemini generation completed")
		return o.Text, nil
	case NoContent:
		logger.Error().Str("body", string(body)).Msg("gemini response has no content")
		return "", apperr.New(apperr.KindEmptyUpstream, "No valid response content from upstream API", nil).WithBody(body)
	default:
		return "", fmt.Errorf("gemini: unexpected outcome %T", outcome)
	}
}

func (c *Client) logger(ctx context.Context) zerolog.Logger {
	lc := log.With().Str("model", c.model)
	if rid, ok := ctxutil.GetRequestID(ctx); ok {
		lc = lc.Str("request_id", rid)
	}
	return lc.Logger()
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperr.New(apperr.KindUpstreamUnavailable, "Upstream API request timed out", err)
	}
	return apperr.New(apperr.KindUpstreamUnavailable, "Upstream API request failed", err)
}
