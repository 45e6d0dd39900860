package search

import (
	"strings"
	"unicode/utf8"
)

// ExtractSnippet 以首次大小写不敏感命中为中心，截取不超过 maxLen 个字符的片段，
// 并收敛到文本边界；正文为空时回退到标题。按 rune 截取，不会劈开多字节字符。
func ExtractSnippet(body, title, query string, maxLen int) string {
	if strings.TrimSpace(body) == "" {
		return title
	}

	runes := []rune(body)
	if len(runes) <= maxLen {
		return body
	}

	// 定位首次命中（字节偏移 → rune 偏移）
	hit := strings.Index(strings.ToLower(body), strings.ToLower(query))
	center := 0
	if hit >= 0 {
		center = utf8.RuneCountInString(body[:hit])
	}

	start := center - maxLen/2
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(runes) {
		end = len(runes)
		start = end - maxLen
		if start < 0 {
			start = 0
		}
	}

	return strings.TrimSpace(string(runes[start:end]))
}
