package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**Hacktoberfest** winners")
	assert.Contains(t, result, "<strong>Hacktoberfest</strong>")
}

func TestRenderMarkdown_Link(t *testing.T) {
	result := RenderMarkdown("[CBIT OSC](https://cbitosc.github.io)")
	assert.Contains(t, result, `<a href="https://cbitosc.github.io"`)
	assert.Contains(t, result, "CBIT OSC</a>")
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRenderMarkdown_GFMStrikethrough(t *testing.T) {
	result := RenderMarkdown("~~postponed~~")
	assert.Contains(t, result, "<del>postponed</del>")
}
