package public

import (
	handlershared "github.com/salon-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.CommonErrorRules)
}

// respondRedeemError 核销与试算的拒绝原因映射为 409
func respondRedeemError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.CommonErrorRules, handlershared.RedeemErrorRules)
}
