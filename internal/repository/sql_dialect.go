package repository

import (
	"fmt"
	"strings"

	"github.com/furniture-shop/internal/constants"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// periodKeyExprByDialect 构建按日/月/年截断时间的分组表达式。
// 返回的 key 格式统一为 YYYY-MM-DD / YYYY-MM / YYYY。
func periodKeyExprByDialect(dialect, column, period string) (string, error) {
	var sqliteFormat, postgresFormat, mysqlFormat string
	switch period {
	case constants.PeriodDay:
		sqliteFormat, postgresFormat, mysqlFormat = "%Y-%m-%d", "YYYY-MM-DD", "%Y-%m-%d"
	case constants.PeriodMonth:
		sqliteFormat, postgresFormat, mysqlFormat = "%Y-%m", "YYYY-MM", "%Y-%m"
	case constants.PeriodYear:
		sqliteFormat, postgresFormat, mysqlFormat = "%Y", "YYYY", "%Y"
	default:
		return "", fmt.Errorf("unsupported period: %s", period)
	}

	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("to_char(%s, '%s')", column, postgresFormat), nil
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%s')", column, mysqlFormat), nil
	default:
		return fmt.Sprintf("strftime('%s', %s)", sqliteFormat, column), nil
	}
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// likeEscapeChar 与 escapeLike 配套，写作 `LIKE ? ESCAPE '!'`
const likeEscapeChar = "!"

// escapeLike 转义 LIKE 通配符
func escapeLike(raw string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return replacer.Replace(raw)
}
