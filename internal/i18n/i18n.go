package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleEN   = "en"
	LocaleZhCN = "zh-CN"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleEN
)

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 按 lang 查询参数与 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	return MatchLocale(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// MatchLocale 返回最匹配的受支持语言
func MatchLocale(candidates ...string) string {
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(raw)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, index, confidence := matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return localeForIndex(index)
	}
	return DefaultLocale
}

func localeForIndex(index int) string {
	if index == 1 {
		return LocaleZhCN
	}
	return LocaleEN
}

// T 翻译消息键，缺失时回退英文，再回退键本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}
