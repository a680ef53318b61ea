package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Success   bool   `json:"success"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination Pagination  `json:"pagination"`
	Data       interface{} `json:"data"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, count int, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Success:    true,
		Count:      count,
		Pagination: pagination,
		Data:       data,
	})
}

// Error 错误响应，状态码不会是 2xx
func Error(c *gin.Context, appErr *AppError) {
	code := appErr.Code
	if code < http.StatusBadRequest {
		code = http.StatusInternalServerError
	}
	c.JSON(code, ErrorBody{
		Success:   false,
		Kind:      appErr.Kind,
		Message:   appErr.Message,
		Field:     appErr.Field,
		RequestID: requestID(c),
	})
}

// Abort 错误响应并终止后续处理
func Abort(c *gin.Context, appErr *AppError) {
	Error(c, appErr)
	c.Abort()
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, WrapError(CodeNotFound, KindNotFound, msg, nil))
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, WrapError(CodeBadRequest, KindBadRequest, msg, nil))
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
