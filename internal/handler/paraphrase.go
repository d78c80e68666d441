package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/model"
	"quill/internal/pkg/apperr"
)

const failurePrefix = "Failed to paraphrase text: "

// Paraphraser 文本改写能力（由 service.ParaphraseService 实现）
type Paraphraser interface {
	Paraphrase(ctx context.Context, text string) (string, error)
}

// ParaphraseHandler 文本改写处理器
type ParaphraseHandler struct {
	paraphraser Paraphraser
}

// NewParaphraseHandler 创建文本改写处理器
func NewParaphraseHandler(paraphraser Paraphraser) *ParaphraseHandler {
	return &ParaphraseHandler{
		paraphraser: paraphraser,
	}
}

// Paraphrase 文本改写
// @Summary      文本改写
// @Description  调用生成式语言 API 改写文本，保留原意和语气
// @Tags         改写
// @Accept       json
// @Produce      json
// @Param        request  body      model.ParaphraseRequest  true  "改写请求"
// @Success      200      {object}  model.ParaphraseResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /api/paraphrase [post]
func (h *ParaphraseHandler) Paraphrase(c *gin.Context) {
	var req model.ParaphraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request body"})
		return
	}

	paraphrased, err := h.paraphraser.Paraphrase(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), model.ErrorResponse{Error: errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, model.ParaphraseResponse{Paraphrased: paraphrased})
}

// errorMessage 返回给调用方的错误文案，只包含简短说明
func errorMessage(err error) string {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return failurePrefix + "internal error"
	}
	switch appErr.Kind {
	case apperr.KindValidation, apperr.KindConfiguration:
		return appErr.Error()
	default:
		return failurePrefix + appErr.Error()
	}
}
