package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/pkg/apperr"
)

// fakeGenerator 记录调用并返回预设结果
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.reply(prompt)
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func TestBuildPrompt(t *testing.T) {
	Convey("BuildPrompt 原样嵌入文本", t, func() {
		text := "  Hello,\nworld!  "
		prompt := BuildPrompt(text)
		So(prompt, ShouldStartWith, "Paraphrase the following text while preserving its meaning and tone.")
		So(prompt, ShouldContainSubstring, "just return the paraphrased version:\n\n")
		So(strings.HasSuffix(prompt, ":\n\n"+text), ShouldBeTrue)
	})
}

func TestParaphraseService_Paraphrase(t *testing.T) {
	Convey("Paraphrase", t, func() {
		ctx := context.Background()
		gen := &fakeGenerator{reply: func(string) (string, error) { return " Rephrased. ", nil }}
		svc := NewParaphraseService(gen)

		Convey("成功时原样返回上游文本", func() {
			got, err := svc.Paraphrase(ctx, "Original text.")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, " Rephrased. ")
			So(gen.calls(), ShouldEqual, 1)
			So(gen.prompts[0], ShouldEqual, BuildPrompt("Original text."))
		})

		Convey("空文本和纯空白不调用上游", func() {
			for _, text := range []string{"", "   ", "\n\t "} {
				_, err := svc.Paraphrase(ctx, text)
				So(apperr.Is(err, apperr.KindValidation), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "Text cannot be empty")
			}
			So(gen.calls(), ShouldEqual, 0)
		})

		Convey("上游错误原样传递", func() {
			gen.reply = func(string) (string, error) {
				return "", apperr.New(apperr.KindUpstreamAPI, "quota exceeded", nil)
			}
			_, err := svc.Paraphrase(ctx, "text")
			So(apperr.Is(err, apperr.KindUpstreamAPI), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "quota exceeded")
			So(gen.calls(), ShouldEqual, 1)
		})

		Convey("未分类错误同样返回", func() {
			boom := errors.New("boom")
			gen.reply = func(string) (string, error) { return "", boom }
			_, err := svc.Paraphrase(ctx, "text")
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}

func TestOutcomeLabel(t *testing.T) {
	if got := outcomeLabel(""); got != "internal" {
		t.Errorf("outcomeLabel(\"\") = %q, want internal", got)
	}
	if got := outcomeLabel(apperr.KindEmptyUpstream); got != "empty_upstream" {
		t.Errorf("outcomeLabel(empty) = %q", got)
	}
}
