package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("**粗体** and [link](https://example.com)")
	assert.Contains(t, html, "<strong>粗体</strong>")
	assert.Contains(t, html, `href="https://example.com"`)
	// 外链强制新窗口打开
	assert.Contains(t, html, `target="_blank"`)
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := RenderMarkdown("hello <script>alert(1)</script> world")
	assert.False(t, strings.Contains(html, "<script>"))
	assert.Contains(t, html, "hello")

	html = RenderMarkdown(`<img src=x onerror="alert(1)">`)
	assert.False(t, strings.Contains(html, "onerror"))
}
