package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLang(t *testing.T) {
	l := NewLocalizer("zh-CN", "en")

	assert.Equal(t, "Invalid JSON-LD: Content must be valid JSON", l.Get("en", ERROR_INVALID_JSONLD))
	assert.Equal(t, "创建知识资产失败", l.Get("zh-CN", ERROR_CREATE_ASSET_FAILED))
}

func TestLiteralMessagePassesThrough(t *testing.T) {
	l := Default()

	assert.Equal(t, "connection refused", l.Get("en", "connection refused"))
	assert.Equal(t, ERROR_INTERNAL, l.Get("fr", ERROR_INTERNAL))
}

func TestLiteralMessageKeepsTemplateText(t *testing.T) {
	l := NewLocalizer("en", "zh-CN")

	assert.Equal(t, "bad input {{.x}} here", l.Get("en", "bad input {{.x}} here"))
	assert.Equal(t, "bad input {{.x}} here", l.Get("zh-CN", "bad input {{.x}} here"))
}
