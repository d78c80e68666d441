package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"quill/internal/metrics"
	"quill/internal/pkg/apperr"
	"quill/internal/pkg/ctxutil"
)

const promptPrefix = "Paraphrase the following text while preserving its meaning and tone. " +
	"Do not add any additional text, explanations, or formatting - just return the paraphrased version:\n\n"

// Generator 文本生成能力（由 gemini.Client 实现）
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ParaphraseService 文本改写服务
// 只持有不可变依赖，可被并发请求共享
type ParaphraseService struct {
	generator Generator
}

// NewParaphraseService 创建文本改写服务
func NewParaphraseService(generator Generator) *ParaphraseService {
	return &ParaphraseService{
		generator: generator,
	}
}

// BuildPrompt 构建改写提示词，原样嵌入用户文本
func BuildPrompt(text string) string {
	return promptPrefix + text
}

// Paraphrase 执行文本改写
// 空文本直接返回校验错误，不调用上游；上游结果原样返回
func (s *ParaphraseService) Paraphrase(ctx context.Context, text string) (string, error) {
	lc := log.With()
	if rid, ok := ctxutil.GetRequestID(ctx); ok {
		lc = lc.Str("request_id", rid)
	}
	logger := lc.Logger()

	if strings.TrimSpace(text) == "" {
		metrics.ParaphraseTotal.WithLabelValues(string(apperr.KindValidation)).Inc()
		return "", apperr.New(apperr.KindValidation, "Text cannot be empty", nil)
	}

	chars := utf8.RuneCountInString(text)
	metrics.InputChars.Observe(float64(chars))

	paraphrased, err := s.generator.Generate(ctx, BuildPrompt(text))
	if err != nil {
		kind := apperr.KindOf(err)
		metrics.ParaphraseTotal.WithLabelValues(outcomeLabel(kind)).Inc()
		logger.Error().Err(err).Str("kind", string(kind)).Int("input_chars", chars).Msg("paraphrase failed")
		return "", err
	}

	metrics.ParaphraseTotal.WithLabelValues("success").Inc()
	logger.Info().
		Int("input_chars", chars).
		Int("output_chars", utf8.RuneCountInString(paraphrased)).
		Msg("paraphrase completed")

	return paraphrased, nil
}

func outcomeLabel(kind apperr.Kind) string {
	if kind == "" {
		return "internal"
	}
	return string(kind)
}
