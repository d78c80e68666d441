package gemini

import (
	"encoding/json"
)

const unknownAPIError = "Unknown API error"

// Decode 将上游响应体解析为 Outcome
// error 字段优先于 candidates；返回的 error 只表示结构无法解析
func Decode(body []byte) (Outcome, error) {
	var resp rawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	if resp.Error != nil {
		failure := APIFailure{Message: unknownAPIError}
		if resp.Error.Message != nil && *resp.Error.Message != "" {
			failure.Message = *resp.Error.Message
		}
		if resp.Error.Code != nil {
			failure.Code = *resp.Error.Code
		}
		if resp.Error.Status != nil {
			failure.Status = *resp.Error.Status
		}
		return failure, nil
	}

	if len(resp.Candidates) > 0 {
		candidate := resp.Candidates[0]
		if len(candidate.Content.Parts) > 0 && candidate.Content.Parts[0].Text != nil {
			return Generated{
				Text:         *candidate.Content.Parts[0].Text,
				FinishReason: candidate.FinishReason,
				ModelVersion: resp.ModelVersion,
				Usage:        resp.UsageMetadata,
			}, nil
		}
	}

	return NoContent{ModelVersion: resp.ModelVersion}, nil
}
