package shared

import (
	"errors"

	"github.com/salon-next/internal/http/response"
	"github.com/salon-next/internal/logger"
	"github.com/salon-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, kind, msg string, err error) {
	appErr := response.WrapError(code, kind, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"kind", appErr.Kind,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr)
}

// RespondBindError 请求体无法解析
func RespondBindError(c *gin.Context, err error) {
	RequestLog(c).Debugw("handler_bind_failed", "error", err)
	response.BadRequest(c, "Invalid request body")
}

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Kind   string
}

// CommonErrorRules 所有资源共用的错误映射
var CommonErrorRules = []MappedError{
	{Target: service.ErrVoucherNotFound, Code: response.CodeNotFound, Kind: response.KindNotFound},
	{Target: service.ErrServiceNotFound, Code: response.CodeNotFound, Kind: response.KindNotFound},
	{Target: service.ErrVoucherCodeDuplicate, Code: response.CodeConflict, Kind: response.KindDuplicate},
	{Target: service.ErrServiceNameDuplicate, Code: response.CodeConflict, Kind: response.KindDuplicate},
}

// RedeemErrorRules 核销/试算拒绝原因
var RedeemErrorRules = []MappedError{
	{Target: service.ErrVoucherInactive, Code: response.CodeConflict, Kind: response.KindVoucherInactive},
	{Target: service.ErrVoucherNotStarted, Code: response.CodeConflict, Kind: response.KindVoucherNotStart},
	{Target: service.ErrVoucherExpired, Code: response.CodeConflict, Kind: response.KindVoucherExpired},
	{Target: service.ErrVoucherExhausted, Code: response.CodeConflict, Kind: response.KindVoucherExhausted},
	{Target: service.ErrVoucherMinSpend, Code: response.CodeConflict, Kind: response.KindVoucherMinSpend},
}

// RespondMappedError 按规则表输出错误；校验错误带字段信息，未命中时按存储/内部错误处理。
func RespondMappedError(c *gin.Context, err error, rules ...[]MappedError) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.Error(c, response.WrapError(response.CodeBadRequest, response.KindValidation, verr.Message, nil).WithField(verr.Field))
		return
	}
	for _, group := range rules {
		for _, rule := range group {
			if errors.Is(err, rule.Target) {
				RespondError(c, rule.Code, rule.Kind, rule.Target.Error(), nil)
				return
			}
		}
	}
	if errors.Is(err, service.ErrStorage) {
		RespondError(c, response.CodeInternal, response.KindInternal, "Storage failure", err)
		return
	}
	RespondError(c, response.CodeInternal, response.KindInternal, "Internal server error", err)
}
