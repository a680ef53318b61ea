package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryBool 读取可选布尔查询参数，缺省或非法时返回 nil。
func QueryBool(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// QueryInt 读取整数查询参数，非法时返回 0。
func QueryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination 读取 page/page_size，越界时回落到默认值或上限
func Pagination(c *gin.Context) (page int, pageSize int) {
	page = QueryInt(c, "page")
	if page < 1 {
		page = 1
	}
	pageSize = QueryInt(c, "page_size")
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}
