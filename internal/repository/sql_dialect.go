package repository

import (
	"strings"

	"gorm.io/gorm"
)

const likeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dialectOf 数据库方言名称，未知时按 sqlite 处理
func dialectOf(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	if name := strings.ToLower(strings.TrimSpace(db.Dialector.Name())); name != "" {
		return name
	}
	return "sqlite"
}

// likeOperator postgres 使用 ILIKE；sqlite 的 LIKE 对 ASCII 不区分大小写
func likeOperator(dialect string) string {
	if dialect == "postgres" || dialect == "postgresql" {
		return "ILIKE"
	}
	return "LIKE"
}

// escapeLike 转义通配符，使搜索词按字面匹配
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// buildSearchCondition 多列 OR 模糊匹配，返回条件与参数
func buildSearchCondition(dialect, term string, columns ...string) (string, []interface{}) {
	pattern := "%" + escapeLike(term) + "%"
	operator := likeOperator(dialect)
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		parts = append(parts, column+" "+operator+" ? ESCAPE '"+likeEscapeChar+"'")
		args = append(args, pattern)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// searchScope 关键字为空时不追加条件
func searchScope(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		condition, args := buildSearchCondition(dialectOf(db), term, columns...)
		if condition == "" {
			return db
		}
		return db.Where(condition, args...)
	}
}
