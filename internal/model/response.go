package model

// ParaphraseResponse 改写结果
type ParaphraseResponse struct {
	Paraphrased string `json:"paraphrased"` // 上游返回的文本，不做任何处理
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}
