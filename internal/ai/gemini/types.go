package gemini

// GenerateRequest generateContent 请求体
// 固定为单个 content、单个 part
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Content 请求内容
type Content struct {
	Parts []Part `json:"parts"`
}

// Part 文本片段
type Part struct {
	Text string `json:"text"`
}

// NewGenerateRequest 用 prompt 构建请求体
func NewGenerateRequest(prompt string) *GenerateRequest {
	return &GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
}

// UsageMetadata Token 使用统计（仅用于日志）
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// rawResponse generateContent 响应的宽松结构，只在 Decode 内部使用
type rawResponse struct {
	Candidates    []rawCandidate `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata"`
	ModelVersion  string         `json:"modelVersion"`
	Error         *rawError      `json:"error"`
}

type rawCandidate struct {
	Content      rawCandidateContent `json:"content"`
	FinishReason string              `json:"finishReason"`
}

type rawCandidateContent struct {
	Parts []rawPart `json:"parts"`
	Role  string    `json:"role"`
}

type rawPart struct {
	Text *string `json:"text"`
}

type rawError struct {
	Code    *int    `json:"code"`
	Message *string `json:"message"`
	Status  *string `json:"status"`
}

// Outcome 解析后的上游响应，取值只能是 Generated、APIFailure、NoContent 之一
type Outcome interface {
	outcome()
}

// Generated 第一个 candidate 的第一个 part
type Generated struct {
	Text         string
	FinishReason string
	ModelVersion string
	Usage        *UsageMetadata
}

// APIFailure 上游返回的结构化错误
type APIFailure struct {
	Code    int
	Message string
	Status  string
}

// NoContent 结构合法但没有可用文本
type NoContent struct {
	ModelVersion string
}

func (Generated) outcome()  {}
func (APIFailure) outcome() {}
func (NoContent) outcome()  {}
