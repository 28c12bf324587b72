package utils

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestReverseString(t *testing.T) {
	cases := []string{"", "a", "abc", "héllo wörld", "知识资产", "🎉ok🎉"}
	for _, s := range cases {
		r := ReverseString(s)
		assert.Equal(t, utf8.RuneCountInString(s), utf8.RuneCountInString(r))
		assert.Equal(t, s, ReverseString(r))
	}
	assert.Equal(t, "cba", ReverseString("abc"))
	assert.Equal(t, "产资识知", ReverseString("知识资产"))
}

func TestISOTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("CET", 3600))
	assert.Equal(t, "2025-03-04T04:06:07.890Z", ISOTimestamp(ts))

	_, err := time.Parse(time.RFC3339Nano, NowISO())
	assert.NoError(t, err)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "250ms", HumanDuration(250*time.Millisecond))
	assert.Equal(t, "1m5s", HumanDuration(65*time.Second+300*time.Millisecond))
}

func TestGenUniqIDStr(t *testing.T) {
	a, b := GenUniqIDStr(), GenUniqIDStr()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
