package model

// ParaphraseRequest 改写请求
// text 可以是任意长度，去除首尾空白后不能为空
type ParaphraseRequest struct {
	Text string `json:"text" example:"The quick brown fox jumps over the lazy dog."` // 待改写文本
}
