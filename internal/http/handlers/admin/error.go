package admin

import (
	handlershared "github.com/salon-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.CommonErrorRules)
}
