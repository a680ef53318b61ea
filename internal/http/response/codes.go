package response

import "net/http"

const (
	CodeOK              = http.StatusOK
	CodeCreated         = http.StatusCreated
	CodeBadRequest      = http.StatusBadRequest
	CodeNotFound        = http.StatusNotFound
	CodeConflict        = http.StatusConflict
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternal        = http.StatusInternalServerError
)

// 错误类别
const (
	KindBadRequest       = "bad_request"
	KindValidation       = "validation_error"
	KindNotFound         = "not_found"
	KindDuplicate        = "duplicate"
	KindVoucherInactive  = "voucher_inactive"
	KindVoucherNotStart  = "voucher_not_started"
	KindVoucherExpired   = "voucher_expired"
	KindVoucherExhausted = "voucher_exhausted"
	KindVoucherMinSpend  = "voucher_min_spend"
	KindRateLimited      = "rate_limited"
	KindInternal         = "internal_error"
)
