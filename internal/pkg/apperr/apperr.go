package apperr

import (
	"errors"
	"net/http"
)

// Kind 错误分类
type Kind string

const (
	KindValidation          Kind = "validation"           // 调用方输入不合法
	KindConfiguration       Kind = "configuration"        // 缺少必要配置（如 API Key）
	KindUpstreamUnavailable Kind = "upstream_unavailable" // 无法连接上游（网络错误、超时）
	KindUpstreamParse       Kind = "upstream_parse"       // 上游响应结构无法解析
	KindUpstreamAPI         Kind = "upstream_api"         // 上游返回结构化错误
	KindEmptyUpstream       Kind = "empty_upstream"       // 上游响应中没有可用内容
)

// Error 带分类的应用错误
// Message 可以返回给调用方；Cause 和 Body 只用于日志排查
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New 创建应用错误
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithBody 附带上游原始响应
func (e *Error) WithBody(body []byte) *Error {
	e.Body = string(body)
	return e
}

// KindOf 提取错误分类，非应用错误返回空
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Is 判断错误是否属于指定分类
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus 错误分类对应的 HTTP 状态码
func HTTPStatus(err error) int {
	if KindOf(err) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
